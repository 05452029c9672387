package log

import (
	"context"
	"net/http"
	"time"
)

// Transport is the outbound counterpart of the router's correlation middleware.
// It forwards the correlation id from the request context (generating one when
// absent) and logs each round trip.
type Transport struct {
	Base   http.RoundTripper
	Logger *Logger
}

func NewTransport(base http.RoundTripper, logger *Logger) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if logger == nil {
		logger = NewDiscardLogger()
	}

	return &Transport{Base: base, Logger: logger}
}

func (t *Transport) RoundTrip(r *http.Request) (*http.Response, error) {
	id := r.Header.Get(CorrelationIDHeader)
	if id == "" {
		id = GetOrGenerateCorrelationID(r.Context())
		r = r.Clone(context.WithValue(r.Context(), CorrelatedIDKey, id))
		r.Header.Set(CorrelationIDHeader, id)
	}

	logger := t.Logger.WithCorrelationID(r.Context())
	start := time.Now()

	resp, err := t.Base.RoundTrip(r)
	if err != nil {
		logger.Warn("Outbound request failed", "method", r.Method, "url", r.URL.Redacted(), "error", err)
		return nil, err
	}

	logger.Debug("Outbound request",
		"method", r.Method,
		"url", r.URL.Redacted(),
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)

	return resp, nil
}
