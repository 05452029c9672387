package domain

import (
	"github.com/akeren/interest-waitlist/config"
	"github.com/akeren/interest-waitlist/domain/interest"
	"github.com/akeren/interest-waitlist/domain/monitoring"
	"github.com/akeren/interest-waitlist/pkg/auth"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
)

func SetupCoreDomain(appConfig *config.ApplicationConfig) {
	if appConfig.Config == nil {
		appConfig.Config = config.NewAppConfig()
	}

	var monitoringCache monitoring.Cache
	var interestCache interest.Cache
	if appConfig.Cache != nil {
		monitoringCache = appConfig.Cache
		interestCache = appConfig.Cache
	}

	var monitoringLimiter, submissionLimiter, adminLimiter ratelimit.RateLimiter
	if f := appConfig.Factories; f != nil {
		monitoringLimiter = f.MonitoringRateLimiterFactory.CreateRateLimiter()
		submissionLimiter = f.SubmissionRateLimiterFactory.CreateRateLimiter()
		adminLimiter = f.AdminRateLimiterFactory.CreateRateLimiter()
	}

	appConfig.RouterService.MountController(
		monitoring.NewMonitoringControllerFactory(appConfig.DB, appConfig.Logger, monitoringCache).CreateController(monitoringLimiter),
	)

	interestFactory := interest.NewInterestServiceFactory(appConfig.DB, appConfig.Logger, interestCache, appConfig.Config.CountCacheTTL)
	appConfig.RouterService.MountController(interestFactory.CreateController(submissionLimiter))

	if secret := appConfig.Config.AdminJWTSecret; secret != "" {
		tokens, err := auth.NewAdminTokens(secret)
		if err != nil {
			appConfig.Logger.Error("Admin endpoints disabled", "error", err)
			return
		}
		appConfig.RouterService.MountController(interestFactory.CreateAdminController(tokens, adminLimiter))
		appConfig.Logger.Info("Admin endpoints mounted", "path", "/admin")
	} else {
		appConfig.Logger.Info("ADMIN_JWT_SECRET not set; admin endpoints disabled")
	}
}
