package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"banking-user-service/internal/core/auth"
	"banking-user-service/internal/transport/http/handler"
	mdw "banking-user-service/internal/transport/http/middleware"
)

type Deps struct {
	Log     *zap.Logger
	Users   *handler.UserHandler
	Profile *handler.ProfileHandler
	History *handler.HistoryHandler
	Health  *handler.HealthHandler
	JWTer   *auth.JWTer // Secret 为空则不挂鉴权
}

func NewAPIEngine(d Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		mdw.Recovery(d.Log),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	// 探针与指标不挂业务前缀
	d.Health.Mount(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	if d.JWTer != nil && len(d.JWTer.Secret) > 0 {
		api.Use(mdw.AuthJWT(d.JWTer))
	}

	d.Users.Mount(api)
	d.Profile.Mount(api)
	d.History.Mount(api)

	return r
}
