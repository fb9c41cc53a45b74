package middleware

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// AccessLog 结构化访问日志，带上请求 ID 方便串链路
func AccessLog(l *zap.Logger) gin.HandlerFunc {
	return ginzap.GinzapWithConfig(l, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Context: func(c *gin.Context) []zapcore.Field {
			return []zapcore.Field{
				zap.String("rid", c.GetString(HeaderRequestID)),
			}
		},
	})
}
