package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"banking-user-service/internal/transport/http/response"
)

// Recovery panic 全量进日志，对外只给通用错误
func Recovery(l *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				l.Error("panic recovered",
					zap.Any("panic", rec),
					zap.String("path", c.Request.URL.Path),
					zap.Stack("stack"),
				)
				c.AbortWithStatusJSON(http.StatusInternalServerError, response.Body{
					Success: false,
					Message: "An unexpected error occurred",
					Errors:  map[string]string{"code": "INTERNAL_ERROR"},
				})
			}
		}()
		c.Next()
	}
}
