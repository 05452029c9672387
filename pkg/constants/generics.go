package constants

import "time"

// RFC 3339 date-time format string.
const RFC3339DateTimeFormat = "2006-01-02T15:04:05Z07:00"

const ServiceName = "interest-waitlist"

// Router-wide rate limiting
const (
	DefaultRateLimitRequests      = 100
	DefaultRateLimitWindowMinutes = 1
)

// Submission rate limiting, applied per client IP to POST /submit-interest.
const (
	DefaultSubmissionRateLimitRequests = 5
	DefaultSubmissionRateLimitWindow   = 60 * time.Second
)

const (
	InterestCountCacheKey        = "interest:count"
	DefaultInterestCountCacheTTL = 30 * time.Second
)

const (
	DefaultAdminListLimit = 100
	MaxAdminListLimit     = 500
)

const DefaultDBConnectAttempts = 5

func DefaultRateLimitWindow() time.Duration {
	return time.Duration(DefaultRateLimitWindowMinutes) * time.Minute
}
