package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"banking-user-service/internal/core/auth"
	"banking-user-service/internal/transport/http/response"
)

const (
	CtxAuthSubject = "authSubject"
	CtxActor       = "actor"
)

// AuthJWT 可选鉴权：认证本身在上游完成，这里只解令牌，
// 把 subject / actor 放进上下文供审计字段（changedBy）取用
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Body{
				Success: false, Message: "missing token",
			})
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Body{
				Success: false, Message: "invalid token",
			})
			return
		}
		c.Set(CtxAuthSubject, claims.Subject)
		actor := claims.Actor
		if actor == "" {
			actor = claims.Subject
		}
		c.Set(CtxActor, actor)
		c.Next()
	}
}
