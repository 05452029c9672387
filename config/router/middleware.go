package router

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/gin-gonic/gin"
)

const (
	corsAllowHeaders = "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Cache-Control, Origin, X-Requested-With, X-Correlation-ID"
	corsAllowMethods = "GET, POST, DELETE, OPTIONS"
)

func (routerService *RouterService) correlationIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(log.CorrelationIDHeader)
		if id == "" {
			id = log.GenerateCorrelationID()
		}
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), log.CorrelatedIDKey, id))
		c.Header(log.CorrelationIDHeader, id)
		c.Next()
	}
}

func (routerService *RouterService) loggerInjectionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), log.LoggerKeyForContext, routerService.GetLogger(c))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func (routerService *RouterService) requestLoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		routerService.GetLogger(c).Info("HTTP request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"remote_addr", c.ClientIP(),
		)
	}
}

func (routerService *RouterService) securityHeadersMiddleware() gin.HandlerFunc {
	hsts := routerService.settings.hsts

	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")

		if hsts != "" && isHTTPS(c) {
			h.Set("Strict-Transport-Security", hsts)
		}
		c.Next()
	}
}

// isHTTPS also honours X-Forwarded-Proto for TLS terminated at a proxy.
func isHTTPS(c *gin.Context) bool {
	if c.Request.TLS != nil {
		return true
	}
	return strings.EqualFold(strings.TrimSpace(c.GetHeader("X-Forwarded-Proto")), "https")
}

func (routerService *RouterService) maxBodySizeMiddleware() gin.HandlerFunc {
	maxBytes := routerService.settings.maxBodyBytes

	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			AbortWithResult(c, ErrorResult(http.StatusRequestEntityTooLarge, "Request payload too large", nil))
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

// corsMiddleware answers preflights for allowed origins. Requests from other
// origins get no CORS headers and are left to the browser to block.
func (routerService *RouterService) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if !routerService.settings.originAllowed(origin) {
			if origin != "" && len(routerService.settings.corsOrigins) > 0 {
				routerService.logger.Warn("CORS origin not allowed", "origin", origin)
			}
			c.Next()
			return
		}

		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", origin)
		h.Set("Access-Control-Allow-Credentials", "true")
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
		h.Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// timeoutMiddleware bounds the request context. The chain runs on this
// goroutine; a 408 is written only if the deadline passed and nothing was
// written yet.
func (routerService *RouterService) timeoutMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), routerService.requestTimeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			routerService.GetLogger(c).Warn("Request timeout", "path", c.Request.URL.Path)
			AbortWithResult(c, ErrorResult(http.StatusRequestTimeout, "Request timeout", nil))
		}
	}
}
