package monitoring

import (
	"context"
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/constants"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"gorm.io/gorm"
)

const healthCheckTimeout = 2 * time.Second

type Cache interface {
	Ping(ctx context.Context) error
}

type HealthStatus struct {
	Database int `json:"database"` // 1 = healthy, 0 = unhealthy
	Cache    int `json:"cache"`    // 1 = healthy, 0 = unhealthy/not configured
	Uptime   int `json:"uptime"`   // uptime in seconds
}

type ServiceInfo struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

type MonitoringController struct {
	db        *gorm.DB
	logger    *log.Logger
	cache     Cache
	startTime time.Time
}

func NewMonitoringController(db *gorm.DB, logger *log.Logger, cache Cache, limiter ratelimit.RateLimiter) *router.RESTController {
	ctrl := &MonitoringController{
		db:        db,
		logger:    logger,
		cache:     cache,
		startTime: time.Now(),
	}

	return router.NewRESTController(
		"MonitoringController",
		"/",
		func(routerService *router.RouterService, controller *router.RESTController) {
			routerService.AddGetHandler(controller, limiter, "", func(c *router.RequestContext) *router.ServiceResult {
				return router.OKResult(ServiceInfo{Service: constants.ServiceName, Status: "operational"})
			})
			routerService.AddGetHandler(controller, limiter, "health", ctrl.healthCheck)
		},
	)
}

func (ctrl *MonitoringController) healthCheck(c *router.RequestContext) *router.ServiceResult {
	logger := router.GetLogger(c)

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	return router.OKResult(ctrl.performHealthChecks(ctx, logger))
}

func (ctrl *MonitoringController) performHealthChecks(ctx context.Context, logger *log.Logger) HealthStatus {
	status := HealthStatus{
		Uptime: int(time.Since(ctrl.startTime).Seconds()),
	}

	if ctrl.checkDatabase(ctx) {
		status.Database = 1
	} else {
		logger.Error("Database health check failed")
	}

	switch {
	case ctrl.cache == nil:
		logger.Debug("Cache not configured, cache health check skipped")
	case ctrl.cache.Ping(ctx) == nil:
		status.Cache = 1
	default:
		logger.Error("Cache health check failed")
	}

	return status
}

func (ctrl *MonitoringController) checkDatabase(ctx context.Context) bool {
	if ctrl.db == nil {
		return false
	}

	sqlDB, err := ctrl.db.DB()
	if err != nil {
		return false
	}

	return sqlDB.PingContext(ctx) == nil
}
