// Package retry runs an operation with exponential backoff. It is used while
// waiting for dependencies at startup; request paths do not retry.
package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
	// OnRetry is called before each wait with the failed attempt number.
	OnRetry func(attempt int, delay time.Duration, err error)
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    30 * time.Second,
		Multiplier:  2,
	}
}

type ExponentialBackoff struct {
	config Config
	wait   func(ctx context.Context, d time.Duration) error
}

// NewExponentialBackoff copies config; nil means DefaultConfig.
func NewExponentialBackoff(config *Config) *ExponentialBackoff {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &ExponentialBackoff{config: cfg, wait: waitContext}
}

func waitContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Execute is Do without cancellation.
func (eb *ExponentialBackoff) Execute(fn func() error) error {
	return eb.Do(context.Background(), func(context.Context) error { return fn() })
}

// Do calls fn until it succeeds, fails with a non-retryable error, runs out of
// attempts, or ctx is done. Exhaustion returns a *MaxRetriesExceededError
// wrapping the last error.
func (eb *ExponentialBackoff) Do(ctx context.Context, fn func(context.Context) error) error {
	delay := eb.config.BaseDelay

	for attempt := 1; ; attempt++ {
		err := fn(ctx)
		switch {
		case err == nil:
			return nil
		case !IsRetryable(err):
			return err
		case attempt >= eb.config.MaxAttempts:
			return &MaxRetriesExceededError{LastError: err, MaxAttempts: eb.config.MaxAttempts}
		}

		delay = min(delay, eb.config.MaxDelay)
		if eb.config.OnRetry != nil {
			eb.config.OnRetry(attempt, delay, err)
		}
		if waitErr := eb.wait(ctx, delay); waitErr != nil {
			return fmt.Errorf("retry aborted after %d attempts: %w", attempt, errors.Join(waitErr, err))
		}
		delay = time.Duration(float64(delay) * eb.config.Multiplier)
	}
}

var retryablePatterns = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"timeout",
	"no such host",
	"temporary failure",
	"too many clients",
	"the database system is starting up",
}

// IsRetryable reports whether err looks like a transient network or server
// condition. Authentication and constraint errors are never retried.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range retryablePatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

type MaxRetriesExceededError struct {
	LastError   error
	MaxAttempts int
}

func (e *MaxRetriesExceededError) Error() string {
	return fmt.Sprintf("gave up after %d attempts: %v", e.MaxAttempts, e.LastError)
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastError
}

func IsMaxRetriesExceeded(err error) bool {
	var target *MaxRetriesExceededError
	return errors.As(err, &target)
}
