package errors

import "net/http"

const (
	StatusOK                  = http.StatusOK
	StatusCreated             = http.StatusCreated
	StatusNoContent           = http.StatusNoContent
	StatusBadRequest          = http.StatusBadRequest
	StatusUnauthorized        = http.StatusUnauthorized
	StatusForbidden           = http.StatusForbidden
	StatusNotFound            = http.StatusNotFound
	StatusMethodNotAllowed    = http.StatusMethodNotAllowed
	StatusRequestTimeout      = http.StatusRequestTimeout
	StatusConflict            = http.StatusConflict
	StatusTooManyRequests     = http.StatusTooManyRequests
	StatusInternalServerError = http.StatusInternalServerError
)

const msgUnexpected = "An unexpected error occurred"

var statusByType = map[string]int{
	ErrorTypeNotFound:         StatusNotFound,
	ErrorTypeInvalidRequest:   StatusBadRequest,
	ErrorTypeConflict:         StatusConflict,
	ErrorTypeUnauthorized:     StatusUnauthorized,
	ErrorTypeForbidden:        StatusForbidden,
	ErrorTypeTooManyRequests:  StatusTooManyRequests,
	ErrorTypeRequestTimeout:   StatusRequestTimeout,
	ErrorTypeMethodNotAllowed: StatusMethodNotAllowed,
}

// HTTPStatusCode maps an error to a response status. Database, internal and
// foreign errors are all 500.
func HTTPStatusCode(err error) int {
	if status, ok := statusByType[GetErrorType(err)]; ok {
		return status
	}
	return StatusInternalServerError
}

// GetHumanReadableMessage returns the AppError message. Foreign errors get a
// generic message so driver and stack text never reach a client.
func GetHumanReadableMessage(err error) string {
	if appErr, ok := asAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return msgUnexpected
}
