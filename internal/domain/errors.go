package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Error 业务错误：稳定错误码 + 对外 HTTP 语义
// code 与上游约定固定，不要改动
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

func ErrUserNotFound() *Error {
	return &Error{Code: "USER_001", Status: http.StatusNotFound, Message: "User not found"}
}

func ErrUserNotFoundByAuthID() *Error {
	return &Error{Code: "USER_002", Status: http.StatusNotFound, Message: "User not found for the given auth ID"}
}

func ErrEmailExists() *Error {
	return &Error{Code: "USER_003", Status: http.StatusConflict, Message: "Email already registered"}
}

func ErrPhoneExists() *Error {
	return &Error{Code: "USER_004", Status: http.StatusConflict, Message: "Phone number already registered"}
}

func ErrAuthIDExists() *Error {
	return &Error{Code: "USER_005", Status: http.StatusConflict, Message: "User already exists for this auth ID"}
}

func ErrProfileNotFound() *Error {
	return &Error{Code: "USER_006", Status: http.StatusNotFound, Message: "User profile not found"}
}

func ErrInvalidStatusTransition(from, to UserStatus) *Error {
	return &Error{
		Code:    "USER_007",
		Status:  http.StatusBadRequest,
		Message: fmt.Sprintf("Invalid status transition from %s to %s", from, to),
	}
}

// ErrUserInactive 预留给需要活跃账户的写路径（当前核心操作未使用）
func ErrUserInactive() *Error {
	return &Error{Code: "USER_008", Status: http.StatusForbidden, Message: "User account is not active"}
}

func ErrConcurrentModification() *Error {
	return &Error{Code: "USER_009", Status: http.StatusConflict, Message: "User was modified concurrently, retry the request"}
}
