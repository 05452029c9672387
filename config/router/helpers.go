package router

import (
	"net/http"
	"strings"

	"github.com/akeren/interest-waitlist/internal/log"
	apperrors "github.com/akeren/interest-waitlist/pkg/errors"
	"github.com/google/uuid"
)

// GetLogger returns the request-scoped logger injected by the router, or a
// correlated JSON logger for contexts that bypassed the middleware.
func GetLogger(ctx *RequestContext) *log.Logger {
	if l, ok := ctx.Request.Context().Value(log.LoggerKeyForContext).(*log.Logger); ok {
		return l
	}
	return log.NewLoggerWithJSONOutput().WithCorrelationID(ctx.Request.Context())
}

func ErrorResult(statusCode int, message string, details any) *ServiceResult {
	return &ServiceResult{StatusCode: statusCode, Message: message, Details: details}
}

func OKResult(data any) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusOK, Data: data}
}

func CreatedResult(data any) *ServiceResult {
	return &ServiceResult{StatusCode: http.StatusCreated, Data: data}
}

func BadRequestResult(message string, details any) *ServiceResult {
	return ErrorResult(http.StatusBadRequest, message, details)
}

func UnauthorizedResult(message string) *ServiceResult {
	return ErrorResult(http.StatusUnauthorized, message, nil)
}

func NotFoundResult(message string) *ServiceResult {
	return ErrorResult(http.StatusNotFound, message, nil)
}

func ConflictResult(message string) *ServiceResult {
	return ErrorResult(http.StatusConflict, message, nil)
}

func InternalServerErrorResult(message string) *ServiceResult {
	return ErrorResult(http.StatusInternalServerError, message, nil)
}

func MethodNotAllowedResult() *ServiceResult {
	return ErrorResult(http.StatusMethodNotAllowed, "Method not allowed", nil)
}

func TooManyRequestsResult(details RateLimitResponse) *ServiceResult {
	return ErrorResult(http.StatusTooManyRequests, "Too many requests", details)
}

// ErrorResultFromError maps an AppError to its status, client message and
// details. Internal error text never reaches the response.
func ErrorResultFromError(err error) *ServiceResult {
	return ErrorResult(
		apperrors.HTTPStatusCode(err),
		apperrors.GetHumanReadableMessage(err),
		apperrors.GetErrorDetails(err),
	)
}

// ParseUUIDParam returns the canonical form of a UUID path parameter, or a 400
// result.
func ParseUUIDParam(ctx *RequestContext, paramName string) (string, *ServiceResult) {
	raw := strings.TrimSpace(ctx.Param(paramName))
	id, err := uuid.Parse(raw)
	if err != nil {
		GetLogger(ctx).Warn("Invalid ID parameter", "param", paramName, "value", raw)
		return "", BadRequestResult("Invalid ID parameter", nil)
	}
	return id.String(), nil
}
