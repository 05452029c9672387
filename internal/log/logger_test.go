package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warn "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestWithCorrelationID_UsesContextValue(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "abc-123")
	logger.WithCorrelationID(ctx).Info("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "abc-123", entry["correlation_id"])
	assert.Equal(t, "hello", entry["msg"])
}

func TestGetLoggerInstanceFromContext(t *testing.T) {
	injected := NewDiscardLogger()
	ctx := context.WithValue(context.Background(), LoggerKeyForContext, injected)
	assert.Same(t, injected, GetLoggerInstanceFromContext(ctx, nil))

	fallback := NewDiscardLogger()
	assert.NotNil(t, GetLoggerInstanceFromContext(context.Background(), fallback))
}

func TestTransport_PropagatesCorrelationID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(CorrelationIDHeader)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, nil)}

	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "req-42")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL, nil)
	require.NoError(t, err)

	resp, err := client.Do(req)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.Equal(t, "req-42", got)
}

func TestTransport_GeneratesCorrelationID(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get(CorrelationIDHeader)
	}))
	defer srv.Close()

	client := &http.Client{Transport: NewTransport(nil, NewDiscardLogger())}
	resp, err := client.Get(srv.URL)
	require.NoError(t, err)
	_ = resp.Body.Close()

	assert.NotEmpty(t, got)
}

func TestGetOrGenerateCorrelationID(t *testing.T) {
	ctx := context.WithValue(context.Background(), CorrelatedIDKey, "req-1")
	assert.Equal(t, "req-1", GetOrGenerateCorrelationID(ctx))

	blank := context.WithValue(context.Background(), CorrelatedIDKey, "")
	assert.Len(t, GetOrGenerateCorrelationID(blank), 36)
	assert.NotEqual(t, GetOrGenerateCorrelationID(context.Background()), GetOrGenerateCorrelationID(context.Background()))
}

func TestGetLoggerInstanceFromContext_NilContext(t *testing.T) {
	fallback := NewDiscardLogger()
	//nolint:staticcheck // nil context is accepted
	assert.Same(t, fallback, GetLoggerInstanceFromContext(nil, fallback))
}
