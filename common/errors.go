package common

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/AkashAman27/cuddly-nest-blog/logger"
	"github.com/sirupsen/logrus"
)

// Stable machine-readable error codes returned on the wire.
const (
	CodeValidation   = "validation_error"
	CodeUnauthorized = "unauthorized"
	CodeForbidden    = "forbidden"
	CodeRateLimited  = "rate_limited"
	CodeNotFound     = "not_found"
	CodeConflict     = "conflict"
	CodeInternal     = "internal_error"
)

// ValidationFailure describes a single violated field rule. A 400 response
// carries every failure the request produced, so clients can render form
// errors in one round trip.
type ValidationFailure struct {
	Field   string `json:"field"`
	Section string `json:"section"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// AppError is the single wire shape for every failure response:
// {"error": ..., "code": ..., "details": [...]}. Status and the internal
// cause are never serialized.
type AppError struct {
	Status  int                 `json:"-"`
	Message string              `json:"error"`
	Code    string              `json:"code,omitempty"`
	Details []ValidationFailure `json:"details,omitempty"`
	Err     error               `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(status int, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Message: message,
		Err:     err,
	}
}

func NewValidationError(failures []ValidationFailure) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Message: "Request validation failed",
		Code:    CodeValidation,
		Details: failures,
	}
}

func NewAuthenticationError(message string, err error) *AppError {
	if message == "" {
		message = "Authentication required"
	}
	return &AppError{Status: http.StatusUnauthorized, Message: message, Code: CodeUnauthorized, Err: err}
}

func NewAuthorizationError(message string) *AppError {
	if message == "" {
		message = "Access denied"
	}
	return &AppError{Status: http.StatusForbidden, Message: message, Code: CodeForbidden}
}

func NewRateLimitError() *AppError {
	return &AppError{Status: http.StatusTooManyRequests, Message: "Too many requests", Code: CodeRateLimited}
}

func NewNotFoundError(message string) *AppError {
	return &AppError{Status: http.StatusNotFound, Message: message, Code: CodeNotFound}
}

func NewConflictError(message string) *AppError {
	return &AppError{Status: http.StatusConflict, Message: message, Code: CodeConflict}
}

func NewInternalError(err error) *AppError {
	return &AppError{
		Status:  http.StatusInternalServerError,
		Message: "Internal server error",
		Code:    CodeInternal,
		Err:     err,
	}
}

// Normalize maps any error to the stable response shape. Recognized domain
// errors keep their declared status; everything else becomes a 500 whose
// internal detail is logged, never echoed.
func Normalize(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return NewInternalError(err)
}

func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Status,
			"error_code":     e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(e.Status)
	json.NewEncoder(w).Encode(e)
}
