// Package client is a typed HTTP client for the public waitlist endpoints.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/akeren/interest-waitlist/internal/log"
)

// ErrNetwork wraps transport failures and unreadable responses.
var ErrNetwork = errors.New("network error")

const (
	MsgNetworkError = "Network error occurred"
	MsgSubmitFailed = "Failed to submit interest"
	MsgCountFailed  = "Failed to get count"
)

const (
	DefaultTimeout = 10 * time.Second

	submitInterestPath = "/submit-interest"
	interestCountPath  = "/interest-count"

	maxResponseBytes = 1 << 20
)

type SubmitInterestRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subscribed *bool  `json:"subscribed,omitempty"`
}

type Submission struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Subscribed bool   `json:"subscribed"`
	CreatedAt  string `json:"created_at"`
}

type SubmitInterestData struct {
	Message    string     `json:"message"`
	Submission Submission `json:"submission"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// SubmitInterestResponse mirrors the server envelope. StatusCode is zero when
// no response was received.
type SubmitInterestResponse struct {
	Success    bool                `json:"success"`
	Data       *SubmitInterestData `json:"data,omitempty"`
	Error      string              `json:"error,omitempty"`
	Details    []FieldError        `json:"details,omitempty"`
	StatusCode int                 `json:"-"`
}

type CountData struct {
	Count int64 `json:"count"`
}

type GetCountResponse struct {
	Success    bool       `json:"success"`
	Data       *CountData `json:"data,omitempty"`
	Error      string     `json:"error,omitempty"`
	StatusCode int        `json:"-"`
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default client. Its transport is used as is.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// New returns a client for the server at baseURL. Outbound requests carry a
// correlation id and are logged through logger.
func New(baseURL string, logger *log.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout:   DefaultTimeout,
			Transport: log.NewTransport(nil, logger),
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SubmitInterest posts a signup. A non-2xx status is reported through the
// response with a nil error; only network failures return an error.
func (c *Client) SubmitInterest(ctx context.Context, req SubmitInterestRequest) (*SubmitInterestResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode submit request: %w", err)
	}

	var out SubmitInterestResponse
	status, err := c.do(ctx, http.MethodPost, submitInterestPath, body, &out)
	if err != nil {
		return &SubmitInterestResponse{Error: MsgNetworkError, StatusCode: status}, err
	}

	out.StatusCode = status
	if status < 200 || status >= 300 {
		out.Success = false
		out.Data = nil
		if out.Error == "" {
			out.Error = MsgSubmitFailed
		}
	}

	return &out, nil
}

func (c *Client) GetInterestCount(ctx context.Context) (*GetCountResponse, error) {
	var out GetCountResponse
	status, err := c.do(ctx, http.MethodGet, interestCountPath, nil, &out)
	if err != nil {
		return &GetCountResponse{Error: MsgNetworkError, StatusCode: status}, err
	}

	out.StatusCode = status
	if status < 200 || status >= 300 {
		out.Success = false
		out.Data = nil
		if out.Error == "" {
			out.Error = MsgCountFailed
		}
	}

	return &out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("%w: build request: %v", ErrNetwork, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %s: %w", ErrNetwork, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("%w: read response: %w", ErrNetwork, err)
	}

	if err := json.Unmarshal(raw, out); err != nil {
		// Error statuses without a JSON body still carry a usable status.
		if resp.StatusCode >= 400 {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, fmt.Errorf("%w: decode response: %w", ErrNetwork, err)
	}

	return resp.StatusCode, nil
}
