package router

import (
	"github.com/gin-gonic/gin"
)

type RequestContext = gin.Context

type MiddlewareFunc = gin.HandlerFunc

// ServiceResult is what every handler returns. Message is the client-facing
// error text and is only rendered for non-2xx results.
type ServiceResult struct {
	StatusCode int    `json:"-"`
	Data       any    `json:"data,omitempty"`
	Message    string `json:"error,omitempty"`
	Details    any    `json:"details,omitempty"`
}

type RateLimitResponse struct {
	Limit      int    `json:"limit"`
	Window     string `json:"window"`
	RetryAfter string `json:"retry_after"`
}

type HandlerFunction func(*RequestContext) *ServiceResult

type RESTController struct {
	name         string
	mountPoint   string
	version      string
	handlerCount int
	prepare      func(*RouterService, *RESTController)
}

// ToJSON renders {"success": true, "data": ...} for 2xx results and
// {"success": false, "error": ..., "details": ...} otherwise. details is
// omitted when nil.
func (result *ServiceResult) ToJSON() gin.H {
	if result.IsSuccess() {
		return gin.H{
			"success": true,
			"data":    result.Data,
		}
	}

	body := gin.H{
		"success": false,
		"error":   result.Message,
	}
	if result.Details != nil {
		body["details"] = result.Details
	}

	return body
}

func (result *ServiceResult) IsSuccess() bool {
	return result.StatusCode >= 200 && result.StatusCode < 300
}

func (result *ServiceResult) IsError() bool {
	return result.StatusCode >= 400
}
