package interest

import (
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/ratelimit"
	"gorm.io/gorm"
)

type InterestServiceFactory interface {
	CreateService() InterestService
	CreateController(submissionLimiter ratelimit.RateLimiter) *router.RESTController
	CreateAdminController(verifier router.TokenVerifier, limiter ratelimit.RateLimiter) *router.RESTController
}

type DefaultInterestServiceFactory struct {
	db            *gorm.DB
	logger        *log.Logger
	cache         Cache
	countCacheTTL time.Duration

	service InterestService
}

// NewInterestServiceFactory wires the repository and count cache. cache may
// be nil, in which case every count goes to the store.
func NewInterestServiceFactory(db *gorm.DB, logger *log.Logger, cache Cache, countCacheTTL time.Duration) InterestServiceFactory {
	return &DefaultInterestServiceFactory{
		db:            db,
		logger:        logger,
		cache:         cache,
		countCacheTTL: countCacheTTL,
	}
}

// CreateService returns the same service on every call so that the public and
// admin controllers share one count cache and circuit breaker.
func (f *DefaultInterestServiceFactory) CreateService() InterestService {
	if f.service == nil {
		repository := NewInterestRepository(f.db)
		countCache := NewCountCache(f.cache, f.countCacheTTL, f.logger)
		f.service = NewInterestService(f.logger, repository, countCache)
	}
	return f.service
}

func (f *DefaultInterestServiceFactory) CreateController(submissionLimiter ratelimit.RateLimiter) *router.RESTController {
	return NewInterestController(f.CreateService(), submissionLimiter)
}

func (f *DefaultInterestServiceFactory) CreateAdminController(verifier router.TokenVerifier, limiter ratelimit.RateLimiter) *router.RESTController {
	return NewAdminController(f.CreateService(), verifier, limiter)
}
