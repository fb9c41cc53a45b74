package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"banking-user-service/internal/domain"
)

// Body 统一响应信封（与上游消费方约定的结构，勿改字段名）
type Body struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Path    string            `json:"path,omitempty"`
}

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

func OKMsg(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusOK, Body{Success: true, Message: msg, Data: data})
}

func Created(c *gin.Context, msg string, data any) {
	c.JSON(http.StatusCreated, Body{Success: true, Message: msg, Data: data})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// ValidationFailed 一次性返回全部字段级错误
func ValidationFailed(c *gin.Context, fields map[string]string) {
	c.JSON(http.StatusBadRequest, Body{
		Success: false,
		Message: "Validation failed",
		Errors:  fields,
		Path:    c.Request.URL.Path,
	})
}

// Fail 集中错误映射：
//   - 业务错误 → 约定状态码 + 稳定错误码
//   - 绑定校验错误 → 400 + 字段错误表
//   - 其余 → 500，细节只进日志不出站
func Fail(c *gin.Context, log *zap.Logger, err error) {
	if de, ok := domain.AsError(err); ok {
		log.Warn("request failed",
			zap.String("code", de.Code),
			zap.String("path", c.Request.URL.Path),
			zap.String("msg", de.Message),
		)
		c.JSON(de.Status, Body{
			Success: false,
			Message: de.Message,
			Errors:  map[string]string{"code": de.Code},
			Path:    c.Request.URL.Path,
		})
		return
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		ValidationFailed(c, FieldErrors(verrs))
		return
	}

	log.Error("unexpected error", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusInternalServerError, Body{
		Success: false,
		Message: "An unexpected error occurred",
		Errors:  map[string]string{"code": "INTERNAL_ERROR"},
		Path:    c.Request.URL.Path,
	})
}

// BadRequest 非 validator 来源的绑定失败（JSON 语法错等）
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Body{
		Success: false,
		Message: msg,
		Errors:  map[string]string{"code": "BAD_REQUEST"},
		Path:    c.Request.URL.Path,
	})
}
