package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"banking-user-service/internal/domain"
	"banking-user-service/internal/transport/http/response"
)

const dateLayout = "2006-01-02"

// bindJSON 绑定失败时就地写响应：字段校验错误给全量字段表，语法错误给 400
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.ValidationFailed(c, response.FieldErrors(verrs))
		} else {
			response.BadRequest(c, "invalid request body: "+err.Error())
		}
		return false
	}
	return true
}

// parseDOB 解析出生日期并校验必须是过去的日期；错误写进字段表
func parseDOB(s string, fields map[string]string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		fields["dateOfBirth"] = "must be a date in " + dateLayout + " format"
		return nil
	}
	if !t.Before(time.Now()) {
		fields["dateOfBirth"] = "must be a past date"
		return nil
	}
	return &t
}

func pageFromQuery(c *gin.Context) domain.PageRequest {
	return domain.PageRequest{
		Page: atoiDefault(c.Query("page"), 1),
		Size: atoiDefault(c.Query("size"), 20),
		Sort: c.Query("sort"),
	}.Normalize()
}

func atoiDefault(s string, def int) int {
	if v, err := strconv.Atoi(s); err == nil && v > 0 {
		return v
	}
	return def
}
