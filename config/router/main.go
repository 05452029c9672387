package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const DefaultTimeoutDuration = 30 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

// RedisClientProvider is implemented by caches that can share their client
// with the distributed rate limiters.
type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RouterConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration
}

type RouterService struct {
	engine   *gin.Engine
	server   *http.Server
	logger   *log.Logger
	settings httpSettings
	metrics  *metrics

	requestTimeout    time.Duration
	rateLimiter       ratelimit.RateLimiter
	rateLimitRequests int
	rateLimitWindow   time.Duration
	redisClient       *redis.Client

	handlerToControllerMap map[string]*RESTController
	rateLimitOverrides     map[string]ratelimit.RateLimiter
}

func CreateRouterService(logger *log.Logger, cache Cache, routerConfig *RouterConfig) *RouterService {
	cfg := RouterConfig{}
	if routerConfig != nil {
		cfg = *routerConfig
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultTimeoutDuration
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	rs := &RouterService{
		engine:                 gin.New(),
		logger:                 logger,
		settings:               loadHTTPSettings(),
		requestTimeout:         cfg.RequestTimeout,
		rateLimitRequests:      cfg.RateLimitRequests,
		rateLimitWindow:        cfg.RateLimitWindow,
		redisClient:            redisClientOf(cache),
		rateLimitOverrides:     make(map[string]ratelimit.RateLimiter),
		handlerToControllerMap: make(map[string]*RESTController),
	}

	rs.configureEngine()
	rs.initRateLimiting()
	rs.mountMetrics()
	rs.useMiddleware()

	rs.server = &http.Server{
		Addr:    ":" + rs.settings.port,
		Handler: rs.engine,
		// Handlers run on the request goroutine, so time limits are enforced
		// by the server rather than the timeout middleware.
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.RequestTimeout,
		WriteTimeout:      cfg.RequestTimeout,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Router service initialized", "addr", rs.server.Addr, "request_timeout", cfg.RequestTimeout)
	return rs
}

func redisClientOf(cache Cache) *redis.Client {
	if provider, ok := cache.(RedisClientProvider); ok {
		return provider.GetClient()
	}
	return nil
}

func (routerService *RouterService) configureEngine() {
	engine := routerService.engine
	engine.Use(gin.Recovery())
	engine.HandleMethodNotAllowed = true
	engine.RedirectTrailingSlash = true

	if utils.IsTracingEnabled() {
		engine.Use(otelgin.Middleware(utils.OTelServiceName()))
		routerService.logger.Info("Tracing middleware enabled")
	}

	if err := engine.SetTrustedProxies(routerService.settings.trustedProxies); err != nil {
		routerService.logger.Error("Invalid TRUSTED_PROXIES; disabling trusted proxies", "error", err)
		_ = engine.SetTrustedProxies(nil)
	}

	if len(routerService.settings.corsOrigins) == 0 {
		routerService.logger.Warn("CORS_ALLOWED_ORIGIN not set; cross-origin requests get no CORS headers")
	}

	engine.NoRoute(func(c *gin.Context) {
		routerService.GetLogger(c).Warn("Route not found", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusNotFound, NotFoundResult("Route not found").ToJSON())
	})
	engine.NoMethod(func(c *gin.Context) {
		routerService.GetLogger(c).Warn("Method not allowed", "method", c.Request.Method, "path", c.Request.URL.Path)
		c.JSON(http.StatusMethodNotAllowed, MethodNotAllowedResult().ToJSON())
	})
}

func (routerService *RouterService) useMiddleware() {
	routerService.engine.Use(
		routerService.correlationIDMiddleware(),
		routerService.loggerInjectionMiddleware(),
		routerService.securityHeadersMiddleware(),
		routerService.maxBodySizeMiddleware(),
		routerService.corsMiddleware(),
		routerService.rateLimitMiddleware(),
		routerService.timeoutMiddleware(),
		routerService.requestLoggingMiddleware(),
	)
}

func (routerService *RouterService) GetDefaultRateLimitConfig() (int, time.Duration) {
	return routerService.rateLimitRequests, routerService.rateLimitWindow
}

func (routerService *RouterService) GetEngine() *gin.Engine {
	return routerService.engine
}

func (routerService *RouterService) GetLogger(c *RequestContext) *log.Logger {
	return routerService.logger.WithCorrelationID(c.Request.Context())
}

func (routerService *RouterService) MountController(controller *RESTController) {
	controller.prepare(routerService, controller)

	routerService.logger.Info("Controller mounted",
		"name", controller.name,
		"path", controller.mountPoint,
		"version", controller.version,
		"handlers", controller.handlerCount,
	)
}

func (routerService *RouterService) RunHTTPServer() error {
	routerService.logger.Info("Starting HTTP server", "addr", routerService.server.Addr)

	if err := routerService.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start HTTP server: %w", err)
	}
	return nil
}

func (routerService *RouterService) Shutdown(ctx context.Context) error {
	routerService.logger.Info("Shutting down HTTP server")
	return routerService.server.Shutdown(ctx)
}

// Cleanup closes every distinct limiter once.
func (routerService *RouterService) Cleanup() {
	closed := make(map[ratelimit.RateLimiter]bool)
	closeOnce := func(limiter ratelimit.RateLimiter) {
		if limiter == nil || closed[limiter] {
			return
		}
		closed[limiter] = true
		if err := limiter.Close(); err != nil {
			routerService.logger.Error("Failed to close rate limiter", "error", err)
		}
	}

	closeOnce(routerService.rateLimiter)
	for _, limiter := range routerService.rateLimitOverrides {
		closeOnce(limiter)
	}
}
