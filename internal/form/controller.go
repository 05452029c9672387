// Package form drives the signup form: field state, local validation, submission
// through the HTTP client and the live counter. Rendering is left to callers,
// which read immutable snapshots.
package form

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/client"
	"github.com/akeren/interest-waitlist/pkg/validation"
)

type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

const (
	MsgSuccess      = "Thank you for your interest! We'll be in touch soon."
	MsgGenericError = "Something went wrong. Please try again."
)

const defaultSubscribed = false

var (
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrInvalidInput     = errors.New("form has validation errors")
	ErrCountUnavailable = errors.New("interest count unavailable")
)

//go:generate mockgen -source=controller.go -destination=mock_controller.go -package=form

// API is the subset of *client.Client used by the controller.
type API interface {
	SubmitInterest(ctx context.Context, req client.SubmitInterestRequest) (*client.SubmitInterestResponse, error)
	GetInterestCount(ctx context.Context) (*client.GetCountResponse, error)
}

type Options struct {
	// OptimisticOnNetworkError reports a submission that never reached the
	// server as a success and bumps the local count by one.
	OptimisticOnNetworkError bool
	Logger                   *log.Logger
}

type Snapshot struct {
	Name       string
	Email      string
	Subscribed bool
	// Errors holds at most one message per field, keyed by field name.
	Errors       map[string]string
	Status       Status
	Message      string
	Count        int64
	CountLoading bool
	CountError   string
}

type Controller struct {
	api     API
	options Options
	logger  *log.Logger

	mu           sync.Mutex
	name         string
	email        string
	subscribed   bool
	errors       map[string]string
	status       Status
	message      string
	count        int64
	countLoading bool
	countError   string
}

func NewController(api API, options Options) *Controller {
	logger := options.Logger
	if logger == nil {
		logger = log.NewDiscardLogger()
	}

	return &Controller{
		api:        api,
		options:    options,
		logger:     logger,
		subscribed: defaultSubscribed,
		errors:     make(map[string]string),
		status:     StatusIdle,
	}
}

func (c *Controller) SetName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.name = name
	delete(c.errors, validation.FieldName)
}

func (c *Controller) SetEmail(email string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.email = email
	delete(c.errors, validation.FieldEmail)
}

func (c *Controller) SetSubscribed(subscribed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.subscribed = subscribed
}

// Validate replaces the field errors with the result of the shared rules.
func (c *Controller) Validate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.validateLocked()
}

func (c *Controller) validateLocked() bool {
	result := validation.Validate(c.name, c.email, c.subscribed)

	c.errors = make(map[string]string, len(result.Errors))
	for _, field := range []string{validation.FieldName, validation.FieldEmail} {
		if msg := validation.FieldErrorFor(result.Errors, field); msg != "" {
			c.errors[field] = msg
		}
	}

	return result.IsValid
}

// Submit validates locally and posts the form. A rejection by the server is
// reported through the snapshot, not the error. The error is non-nil for a
// concurrent submit, invalid input, or (unless optimistic) a network failure.
func (c *Controller) Submit(ctx context.Context) (Snapshot, error) {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrSubmitInProgress
	}

	if !c.validateLocked() {
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, ErrInvalidInput
	}

	subscribed := c.subscribed
	req := client.SubmitInterestRequest{
		Name:       strings.TrimSpace(c.name),
		Email:      strings.TrimSpace(c.email),
		Subscribed: &subscribed,
	}
	c.status = StatusSubmitting
	c.message = ""
	c.mu.Unlock()

	resp, err := c.api.SubmitInterest(ctx, req)

	c.mu.Lock()
	switch {
	case err != nil && c.options.OptimisticOnNetworkError:
		c.logger.Warn("Submission did not reach the server; reporting success", "error", err)
		c.succeedLocked()
		c.count++
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil

	case err != nil:
		c.logger.Warn("Submission failed", "error", err)
		c.status = StatusError
		c.message = client.MsgNetworkError
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, err

	case resp.Success:
		c.succeedLocked()
		c.mu.Unlock()

		if err := c.RefreshCount(ctx); err != nil {
			c.logger.Warn("Count refresh after submission failed", "error", err)
		}
		return c.Snapshot(), nil

	default:
		c.status = StatusError
		c.message = resp.Error
		if c.message == "" {
			c.message = MsgGenericError
		}
		for _, fe := range resp.Details {
			if _, seen := c.errors[fe.Field]; !seen && fe.Field != "" {
				c.errors[fe.Field] = fe.Message
			}
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()
		return snap, nil
	}
}

func (c *Controller) succeedLocked() {
	c.status = StatusSuccess
	c.message = MsgSuccess
	c.name = ""
	c.email = ""
	c.subscribed = defaultSubscribed
	c.errors = make(map[string]string)
}

// RefreshCount loads the counter. On failure the previous value is kept.
func (c *Controller) RefreshCount(ctx context.Context) error {
	c.mu.Lock()
	c.countLoading = true
	c.mu.Unlock()

	resp, err := c.api.GetInterestCount(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.countLoading = false

	if err != nil {
		c.countError = client.MsgNetworkError
		return err
	}

	if !resp.Success || resp.Data == nil {
		c.countError = resp.Error
		if c.countError == "" {
			c.countError = client.MsgCountFailed
		}
		return fmt.Errorf("%w: %s", ErrCountUnavailable, c.countError)
	}

	c.count = resp.Data.Count
	c.countError = ""
	return nil
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Name:         c.name,
		Email:        c.email,
		Subscribed:   c.subscribed,
		Errors:       maps.Clone(c.errors),
		Status:       c.status,
		Message:      c.message,
		Count:        c.count,
		CountLoading: c.countLoading,
		CountError:   c.countError,
	}
}
