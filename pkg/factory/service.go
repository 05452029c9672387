package factory

import (
	"context"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"github.com/go-redis/redis/v8"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RedisClientProvider interface {
	GetClient() *redis.Client
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Strategy ratelimit.Strategy
	Logger   ratelimit.Logger
}

type RateLimiterFactory interface {
	CreateRateLimiter() ratelimit.RateLimiter
}

// DefaultRateLimiterFactory builds limiters that share the cache's Redis
// client when one is available and fall back to process-local state otherwise.
type DefaultRateLimiterFactory struct {
	config *ratelimit.RateLimitConfig
}

func NewDefaultRateLimiterFactory(cfg *RateLimitConfig, cache Cache) *DefaultRateLimiterFactory {
	var redisClient *redis.Client
	if cache != nil {
		if provider, ok := cache.(RedisClientProvider); ok {
			redisClient = provider.GetClient()
		}
	}

	return &DefaultRateLimiterFactory{
		config: &ratelimit.RateLimitConfig{
			Requests: cfg.Requests,
			Window:   cfg.Window,
			Strategy: cfg.Strategy,
			Redis:    redisClient,
			Logger:   cfg.Logger,
		},
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(f.config)
}

// Per-client budgets for the monitoring and admin routes.
const (
	MonitoringRequestsPerMinute = 10
	AdminRequestsPerMinute      = 60
)

type FactoryContainer struct {
	// SubmissionRateLimiterFactory builds the fixed-window limiter injected
	// into POST /submit-interest.
	SubmissionRateLimiterFactory RateLimiterFactory
	// MonitoringRateLimiterFactory builds the token bucket shared by the
	// monitoring routes.
	MonitoringRateLimiterFactory RateLimiterFactory
	// AdminRateLimiterFactory builds the controller-wide limiter for /admin.
	AdminRateLimiterFactory RateLimiterFactory
}

func NewFactoryContainer(logger *log.Logger, submissionLimit *RateLimitConfig, cache Cache) *FactoryContainer {
	var limiterLogger ratelimit.Logger
	if logger != nil {
		limiterLogger = logger
	}

	submission := *submissionLimit
	submission.Strategy = ratelimit.StrategyFixedWindow
	if submission.Logger == nil {
		submission.Logger = limiterLogger
	}

	monitoring := RateLimitConfig{
		Requests: MonitoringRequestsPerMinute,
		Window:   time.Minute,
		Strategy: ratelimit.StrategyTokenBucket,
		Logger:   limiterLogger,
	}

	admin := monitoring
	admin.Requests = AdminRequestsPerMinute

	return &FactoryContainer{
		SubmissionRateLimiterFactory: NewDefaultRateLimiterFactory(&submission, cache),
		MonitoringRateLimiterFactory: NewDefaultRateLimiterFactory(&monitoring, cache),
		AdminRateLimiterFactory:      NewDefaultRateLimiterFactory(&admin, cache),
	}
}
