package config

import (
	"context"
	"strings"
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/internal/models"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/factory"
	"github.com/akeren/interest-waitlist/pkg/utils"
	"gorm.io/gorm"
)

type ApplicationConfig struct {
	DB              *gorm.DB
	RouterService   *router.RouterService
	Logger          *log.Logger
	Cache           Cache
	Config          *AppConfig
	Factories       *factory.FactoryContainer
	TracingShutdown func(context.Context) error
}

type AppConfig struct {
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RequestTimeout    time.Duration

	// POST /submit-interest has its own fixed-window limit per client IP.
	SubmissionRateLimitRequests int
	SubmissionRateLimitWindow   time.Duration

	CountCacheTTL time.Duration

	// AdminJWTSecret enables the /admin endpoints when non-empty.
	AdminJWTSecret string

	DBConnectAttempts int
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		RateLimitRequests: utils.GetEnvIntOrDefault("RATE_LIMIT_REQUESTS", constants.DefaultRateLimitRequests),
		RateLimitWindow:   utils.GetEnvDurationOrDefault("RATE_LIMIT_WINDOW", constants.DefaultRateLimitWindow()),
		RequestTimeout:    utils.GetEnvDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),

		SubmissionRateLimitRequests: utils.GetEnvIntOrDefault("SUBMISSION_RATE_LIMIT_REQUESTS", constants.DefaultSubmissionRateLimitRequests),
		SubmissionRateLimitWindow:   utils.GetEnvDurationOrDefault("SUBMISSION_RATE_LIMIT_WINDOW", constants.DefaultSubmissionRateLimitWindow),

		CountCacheTTL: utils.GetEnvDurationOrDefault("INTEREST_COUNT_CACHE_TTL", constants.DefaultInterestCountCacheTTL),

		AdminJWTSecret: strings.TrimSpace(GetValueFromEnvironmentVariable("ADMIN_JWT_SECRET", "")),

		DBConnectAttempts: utils.GetEnvIntOrDefault("DB_CONNECT_ATTEMPTS", constants.DefaultDBConnectAttempts),
	}
}

func (ac *ApplicationConfig) Cleanup() {
	if ac.TracingShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := ac.TracingShutdown(ctx); err != nil {
			ac.Logger.Error("Failed to shutdown tracer provider", "error", err)
		}
	}

	if ac.DB != nil {
		CloseDatabase(ac.DB, ac.Logger)
	}

	if ac.RouterService != nil {
		ac.RouterService.Cleanup()
	}

	if ac.Cache != nil {
		CloseCache(ac.Cache, ac.Logger)
	}

	ac.Logger.Info("Application cleanup completed")
}

func LoadApplicationConfiguration(logger *log.Logger, autoMigrate bool) (*ApplicationConfig, error) {
	InitializeEnvFile(logger)

	if autoMigrate {
		appEnv := GetAppEnv()
		if err := ValidateAutoMigrateAllowed(appEnv); err != nil {
			return nil, err
		}
		if appEnv == "" {
			logger.Warn("APP_ENV not set; allowing --auto-migrate as development")
		}
	}

	tracingShutdown, err := SetupTracing(logger)
	if err != nil {
		return nil, err
	}

	appConfig := NewAppConfig()

	db, err := NewDatabase(logger, &DBConfig{ConnectAttempts: appConfig.DBConnectAttempts})
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		if err := AutoMigrate(logger, db, models.ModelRegistry...); err != nil {
			return nil, err
		}
	}

	cache := NewCacheConfig().NewCacheOrNil(logger)

	return NewApplicationConfig(logger, db, cache, appConfig, tracingShutdown), nil
}

// NewApplicationConfig assembles the router and factories around an already
// connected database. cache may be nil.
func NewApplicationConfig(
	logger *log.Logger,
	db *gorm.DB,
	cache Cache,
	appConfig *AppConfig,
	tracingShutdown func(context.Context) error,
) *ApplicationConfig {
	if appConfig == nil {
		appConfig = NewAppConfig()
	}

	var routerCache router.Cache
	var factoryCache factory.Cache
	if cache != nil {
		routerCache = cache
		factoryCache = cache
	}

	routerService := router.CreateRouterService(logger, routerCache, &router.RouterConfig{
		RateLimitRequests: appConfig.RateLimitRequests,
		RateLimitWindow:   appConfig.RateLimitWindow,
		RequestTimeout:    appConfig.RequestTimeout,
	})

	factories := factory.NewFactoryContainer(logger, &factory.RateLimitConfig{
		Requests: appConfig.SubmissionRateLimitRequests,
		Window:   appConfig.SubmissionRateLimitWindow,
	}, factoryCache)

	logger.Info("Application configuration loaded successfully",
		"submission_limit", appConfig.SubmissionRateLimitRequests,
		"submission_window", appConfig.SubmissionRateLimitWindow.String(),
		"admin_enabled", appConfig.AdminJWTSecret != "",
	)

	return &ApplicationConfig{
		DB:              db,
		RouterService:   routerService,
		Logger:          logger,
		Cache:           cache,
		Config:          appConfig,
		Factories:       factories,
		TracingShutdown: tracingShutdown,
	}
}
