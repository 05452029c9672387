package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func newServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return New(srv.URL+"/", log.NewDiscardLogger())
}

func TestSubmitInterest_Created(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/submit-interest", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get(log.CorrelationIDHeader))

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Al", body["name"])
		assert.Equal(t, true, body["subscribed"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"message":"Interest submitted successfully","submission":{"id":"abc","name":"Al","email":"al@x.co","subscribed":true,"created_at":"2024-05-01T12:00:00Z"}}}`))
	})

	resp, err := c.SubmitInterest(context.Background(), SubmitInterestRequest{Name: "Al", Email: "al@x.co", Subscribed: boolPtr(true)})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "abc", resp.Data.Submission.ID)
}

func TestSubmitInterest_OmitsAbsentSubscribed(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, present := body["subscribed"]
		assert.False(t, present)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"message":"ok","submission":{}}}`))
	})

	_, err := c.SubmitInterest(context.Background(), SubmitInterestRequest{Name: "Al", Email: "al@x.co"})
	require.NoError(t, err)
}

func TestSubmitInterest_ServerErrors(t *testing.T) {
	cases := map[string]struct {
		status      int
		body        string
		wantError   string
		wantDetails int
	}{
		"validation": {
			http.StatusBadRequest,
			`{"success":false,"error":"Validation failed","details":[{"field":"name","message":"Name is required"},{"field":"email","message":"Please enter a valid email address"}]}`,
			"Validation failed", 2,
		},
		"conflict":      {http.StatusConflict, `{"success":false,"error":"Email already registered"}`, "Email already registered", 0},
		"empty error":   {http.StatusInternalServerError, `{"success":false}`, MsgSubmitFailed, 0},
		"non json body": {http.StatusBadGateway, `<html>bad gateway</html>`, MsgSubmitFailed, 0},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})

			resp, err := c.SubmitInterest(context.Background(), SubmitInterestRequest{Name: "Al", Email: "al@x.co"})

			require.NoError(t, err)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.wantError, resp.Error)
			assert.Len(t, resp.Details, tc.wantDetails)
		})
	}
}

func TestSubmitInterest_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	resp, err := New(url, nil).SubmitInterest(context.Background(), SubmitInterestRequest{Name: "Al", Email: "al@x.co"})

	assert.ErrorIs(t, err, ErrNetwork)
	require.NotNil(t, resp)
	assert.False(t, resp.Success)
	assert.Equal(t, MsgNetworkError, resp.Error)
}

func TestGetInterestCount(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/interest-count", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true,"data":{"count":42}}`))
		})

		resp, err := c.GetInterestCount(context.Background())
		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, int64(42), resp.Data.Count)
	})

	t.Run("server error", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false}`))
		})

		resp, err := c.GetInterestCount(context.Background())
		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Nil(t, resp.Data)
		assert.Equal(t, MsgCountFailed, resp.Error)
	})

	t.Run("malformed success body", func(t *testing.T) {
		c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`not json`))
		})

		resp, err := c.GetInterestCount(context.Background())
		assert.ErrorIs(t, err, ErrNetwork)
		assert.Equal(t, MsgNetworkError, resp.Error)
	})
}
