package apperror

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBadRequest         = errors.New("bad request")
	ErrInternal           = errors.New("internal server error")
	ErrInvalidInput       = errors.New("invalid input")
	ErrRateLimitExceeded  = errors.New("rate limit exceeded")
	ErrConflict           = errors.New("resource already exists")
	ErrPendingApproval    = errors.New("account pending approval")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProfileRequired    = errors.New("profile required")
	ErrInvalidTransition  = errors.New("invalid status transition")
)

// Kind is the stable, machine-checkable error class returned to clients.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindDuplicate          Kind = "DuplicateResource"
	KindNotFound           Kind = "NotFound"
	KindForbidden          Kind = "Forbidden"
	KindPendingApproval    Kind = "PendingApproval"
	KindInvalidCredentials Kind = "InvalidCredentials"
	KindUnauthorized       Kind = "Unauthorized"
	KindProfileRequired    Kind = "ProfileRequired"
	KindInvalidTransition  Kind = "InvalidTransition"
	KindRateLimited        Kind = "RateLimited"
	KindServerFault        Kind = "ServerFault"
)

// AppError is a custom error type that can hold an HTTP status code
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError
func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation wraps a human readable message as an invalid input error.
func Validation(message string) *AppError {
	return New(http.StatusBadRequest, message, ErrInvalidInput)
}

// KindOf classifies err into one of the public error kinds.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	case errors.Is(err, ErrPendingApproval):
		return KindPendingApproval
	case errors.Is(err, ErrProfileRequired):
		return KindProfileRequired
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrConflict):
		return KindDuplicate
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrBadRequest), errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrRateLimitExceeded):
		return KindRateLimited
	}
	return KindServerFault
}

// MapErrorToStatus maps common errors to HTTP status codes
func MapErrorToStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindDuplicate, KindInvalidTransition:
		return http.StatusConflict
	case KindNotFound, KindProfileRequired:
		return http.StatusNotFound
	case KindForbidden, KindPendingApproval:
		return http.StatusForbidden
	case KindUnauthorized, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindRateLimited:
		return http.StatusTooManyRequests
	}
	// Default to internal server error
	return http.StatusInternalServerError
}
