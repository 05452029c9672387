package router

import (
	"context"
	"math"
	"strconv"

	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"github.com/gin-gonic/gin"
)

func (routerService *RouterService) initRateLimiting() {
	client := routerService.redisClient
	if client != nil {
		if err := client.Ping(context.Background()).Err(); err != nil {
			routerService.logger.Warn("Redis unavailable for rate limiting, using in-memory limiter", "error", err)
			client = nil
		}
	}

	routerService.rateLimiter = ratelimit.NewRateLimiter(&ratelimit.RateLimitConfig{
		Requests: routerService.rateLimitRequests,
		Window:   routerService.rateLimitWindow,
		Redis:    client,
		Logger:   routerService.logger,
	})

	backend := "memory"
	if client != nil {
		backend = "redis"
	}
	routerService.logger.Info("Rate limiting initialized",
		"backend", backend,
		"requests", routerService.rateLimitRequests,
		"window", routerService.rateLimitWindow,
	)
}

func rateLimitKey(scope, clientIP string) string {
	if scope == "" {
		return "ratelimit:" + clientIP
	}
	return "ratelimit:" + scope + ":" + clientIP
}

func retryAfterSeconds(limiter ratelimit.RateLimiter) int {
	_, window := limiter.GetLimitDetails()
	return max(1, int(math.Ceil(window.Seconds())))
}

// rateLimitMiddleware applies the most specific limiter for the matched route.
// Limiter errors fail open.
func (routerService *RouterService) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter, scope := routerService.limiterFor(c.FullPath(), c.Request.Method)
		if limiter == nil {
			c.Next()
			return
		}

		clientIP := c.ClientIP()
		limit, window := limiter.GetLimitDetails()
		c.Header("X-RateLimit-Limit", strconv.Itoa(limit))
		c.Header("X-RateLimit-Window", window.String())

		limited, err := limiter.IsLimited(rateLimitKey(scope, clientIP))
		if err != nil {
			routerService.GetLogger(c).Error("Rate limiter error", "error", err, "client_ip", clientIP)
			c.Next()
			return
		}
		if !limited {
			c.Next()
			return
		}

		routerService.GetLogger(c).Warn("Rate limit exceeded", "client_ip", clientIP, "scope", scope)
		routerService.metrics.observeRateLimited(scope)

		retryAfter := strconv.Itoa(retryAfterSeconds(limiter))
		c.Header("Retry-After", retryAfter)
		AbortWithResult(c, TooManyRequestsResult(RateLimitResponse{
			Limit:      limit,
			Window:     window.String(),
			RetryAfter: retryAfter,
		}))
	}
}

// limiterFor resolves handler override, then controller override, then the
// router default. Unmatched routes use the default so 404 and 405 still run.
func (routerService *RouterService) limiterFor(fullPath, method string) (ratelimit.RateLimiter, string) {
	if fullPath == "" {
		return routerService.rateLimiter, ""
	}

	key := handlerKey(fullPath, method)
	if override, ok := routerService.rateLimitOverrides[key]; ok {
		return override, key
	}

	if controller := routerService.handlerToControllerMap[key]; controller != nil {
		if override, ok := routerService.rateLimitOverrides[controller.mountPoint]; ok {
			return override, controller.mountPoint
		}
	}

	return routerService.rateLimiter, ""
}
