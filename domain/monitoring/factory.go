package monitoring

import (
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/factory"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"gorm.io/gorm"
)

type ControllerFactory struct {
	db     *gorm.DB
	logger *log.Logger
	cache  Cache
}

// NewMonitoringControllerFactory accepts a nil cache; health then reports it
// as 0.
func NewMonitoringControllerFactory(db *gorm.DB, logger *log.Logger, cache Cache) *ControllerFactory {
	return &ControllerFactory{db: db, logger: logger, cache: cache}
}

// CreateController limits both routes with limiter, or with a process-local
// token bucket when limiter is nil.
func (f *ControllerFactory) CreateController(limiter ratelimit.RateLimiter) *router.RESTController {
	if limiter == nil {
		limiter = ratelimit.NewTokenBucketRateLimiter(factory.MonitoringRequestsPerMinute, time.Minute)
	}
	return NewMonitoringController(f.db, f.logger, f.cache, limiter)
}
