package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Error is a domain error carrying the HTTP status and a stable code that
// clients can branch on. It is constructed at the point of detection and
// propagated unchanged to the response envelope.
type Error struct {
	Status  int    `json:"-"`
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

func Validation(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Auth(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func Forbidden(code, message string) *Error {
	return New(http.StatusForbidden, code, message)
}

func NotFound(code, message string) *Error {
	return New(http.StatusNotFound, code, message)
}

func Conflict(code, message string) *Error {
	return New(http.StatusConflict, code, message)
}

func Internal(message string) *Error {
	return New(http.StatusInternalServerError, "INTERNAL_ERROR", message)
}

// From translates any error into an *Error. Persistence-layer errors are
// mapped at this boundary rather than leaked raw.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return NotFound("NOT_FOUND", "resource not found")
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return Conflict("DUPLICATE", "resource already exists")
	}
	return Internal(err.Error())
}

// Is reports whether err is an *Error with the given code.
func Is(err error, code string) bool {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code == code
	}
	return false
}
