// Package errors defines the application error type shared by the domain and
// the router. An AppError carries a client-safe message; the wrapped Err is for
// logs and errors.Is matching only.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeUnauthorized        = "UNAUTHORIZED"
	ErrorTypeForbidden           = "FORBIDDEN"
	ErrorTypeConflict            = "CONFLICT"
	ErrorTypeTooManyRequests     = "TOO_MANY_REQUESTS"
	ErrorTypeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorTypeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

type AppError struct {
	Type    string
	Message string
	Err     error
	// Details carries client-facing context such as per-field validation errors.
	Details any
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Type, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewInvalidRequestError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, err)
}

// NewValidationError is an invalid-request error with per-field details. Empty
// details are dropped so the response omits the key.
func NewValidationError(message string, details []ValidationErrorResponse, err error) *AppError {
	appErr := NewInvalidRequestError(message, err)
	if len(details) > 0 {
		appErr.Details = details
	}
	return appErr
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

func NewConflictError(message string, err error) *AppError {
	return NewAppError(ErrorTypeConflict, message, err)
}

func NewUnauthorizedError(message string, err error) *AppError {
	return NewAppError(ErrorTypeUnauthorized, message, err)
}

func NewForbiddenError(message string, err error) *AppError {
	return NewAppError(ErrorTypeForbidden, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if err == nil || !errors.As(err, &appErr) {
		return nil, false
	}
	return appErr, true
}

// GetErrorType returns "" for nil and ErrorTypeUnknown for foreign errors.
func GetErrorType(err error) string {
	if err == nil {
		return ""
	}
	if appErr, ok := asAppError(err); ok {
		return appErr.Type
	}
	return ErrorTypeUnknown
}

// GetErrorDetails returns the details attached to an AppError, or nil.
func GetErrorDetails(err error) any {
	if appErr, ok := asAppError(err); ok {
		return appErr.Details
	}
	return nil
}

// Driver messages for unique-constraint violations: Postgres (SQLSTATE 23505)
// and SQLite.
var duplicateKeyPatterns = []string{
	"duplicate key",
	"sqlstate 23505",
	"unique constraint failed",
	"violates unique constraint",
}

func IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if GetErrorType(err) == ErrorTypeConflict {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range duplicateKeyPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
