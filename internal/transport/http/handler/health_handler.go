package handler

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const serviceName = "user-service"

// HealthHandler 存活/就绪两个探针分开：
// /health 只看进程；/ready 额外看 DB 连通 + 是否已宣布接流
type HealthHandler struct {
	db    *gorm.DB
	ready atomic.Bool
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// SetReady 监听器起来后由 main 翻转
func (h *HealthHandler) SetReady(v bool) { h.ready.Store(v) }

func (h *HealthHandler) Mount(r gin.IRoutes) {
	r.GET("/health", h.health)
	r.GET("/ready", h.readiness)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "UP",
		"service":  serviceName,
		"liveness": "UP",
	})
}

func (h *HealthHandler) readiness(c *gin.Context) {
	dbUp := h.pingDB(c.Request.Context())
	accepting := h.ready.Load()

	out := gin.H{
		"service":   serviceName,
		"database":  upDown(dbUp),
		"readiness": upDown(accepting),
	}
	if dbUp && accepting {
		out["status"] = "UP"
		c.JSON(http.StatusOK, out)
		return
	}
	out["status"] = "DOWN"
	c.JSON(http.StatusServiceUnavailable, out)
}

func (h *HealthHandler) pingDB(ctx context.Context) bool {
	if h.db == nil {
		return false
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return sqlDB.PingContext(ctx) == nil
}

func upDown(up bool) string {
	if up {
		return "UP"
	}
	return "DOWN"
}
