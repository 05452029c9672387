package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akeren/interest-waitlist/config/router"
	"github.com/akeren/interest-waitlist/internal/log"
	"github.com/akeren/interest-waitlist/pkg/factory"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type pingCache struct {
	err error
}

func (c pingCache) Ping(context.Context) error { return c.err }

func newMonitoredRouter(t *testing.T, cache Cache) *router.RouterService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	rs := router.CreateRouterService(log.NewDiscardLogger(), nil, &router.RouterConfig{
		RateLimitRequests: 1000,
		RateLimitWindow:   time.Minute,
		RequestTimeout:    5 * time.Second,
	})
	t.Cleanup(rs.Cleanup)

	rs.MountController(NewMonitoringControllerFactory(db, log.NewDiscardLogger(), cache).CreateController(nil))
	return rs
}

func getHealth(t *testing.T, rs *router.RouterService) HealthStatus {
	t.Helper()

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool         `json:"success"`
		Data    HealthStatus `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	return resp.Data
}

func TestHealth(t *testing.T) {
	cases := map[string]struct {
		cache     Cache
		wantCache int
	}{
		"no cache":      {nil, 0},
		"healthy cache": {pingCache{}, 1},
		"broken cache":  {pingCache{err: errors.New("refused")}, 0},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			status := getHealth(t, newMonitoredRouter(t, tc.cache))

			assert.Equal(t, 1, status.Database)
			assert.Equal(t, tc.wantCache, status.Cache)
			assert.GreaterOrEqual(t, status.Uptime, 0)
		})
	}
}

func TestServiceInfo(t *testing.T) {
	rs := newMonitoredRouter(t, nil)

	w := httptest.NewRecorder()
	rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"service":"interest-waitlist","status":"operational"}}`, w.Body.String())
}

func TestMonitoringRateLimit(t *testing.T) {
	rs := newMonitoredRouter(t, nil)

	var last int
	for range factory.MonitoringRequestsPerMinute + 1 {
		w := httptest.NewRecorder()
		rs.GetEngine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
