package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"runtime"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/library-console/internal/platform/metrics"
	"github.com/jsamuelsen/library-console/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// mockHealthRegistry is a testify mock for ports.HealthRegistry.
type mockHealthRegistry struct {
	mock.Mock
}

func (m *mockHealthRegistry) Register(checker ports.HealthChecker) error {
	return m.Called(checker).Error(0)
}

func (m *mockHealthRegistry) CheckAll(ctx context.Context) *ports.HealthResult {
	return m.Called(ctx).Get(0).(*ports.HealthResult)
}

func newEngine(h *HealthHandler) *gin.Engine {
	engine := gin.New()
	h.RegisterHealthRoutesOnEngine(engine)

	return engine
}

func get(engine *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, http.NoBody))

	return w
}

func TestNewBuildInfo(t *testing.T) {
	bi := NewBuildInfo("1.0.0", "abc123", "2026-01-15T10:00:00Z")

	assert.Equal(t, "1.0.0", bi.Version)
	assert.Equal(t, "abc123", bi.Commit)
	assert.Equal(t, "2026-01-15T10:00:00Z", bi.BuildTime)
	assert.Equal(t, runtime.Version(), bi.GoVersion)
}

func TestHealthHandler_Liveness(t *testing.T) {
	registry := &mockHealthRegistry{}
	w := get(newEngine(NewHealthHandler(registry, BuildInfo{}, nil)), "/-/live")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp livenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	registry.AssertNotCalled(t, "CheckAll", mock.Anything)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name           string
		result         *ports.HealthResult
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "console healthy",
			result: &ports.HealthResult{
				Status: ports.HealthStatusHealthy,
				Checks: map[string]*ports.CheckResult{
					"console": {Status: ports.HealthStatusHealthy},
				},
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
		{
			name: "console input closed",
			result: &ports.HealthResult{
				Status: ports.HealthStatusUnhealthy,
				Checks: map[string]*ports.CheckResult{
					"console": {Status: ports.HealthStatusUnhealthy, Message: "console input closed"},
				},
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "console input closed",
		},
		{
			name:           "no checks registered",
			result:         &ports.HealthResult{Status: ports.HealthStatusHealthy},
			expectedStatus: http.StatusOK,
			expectedBody:   "healthy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := &mockHealthRegistry{}
			registry.On("CheckAll", mock.Anything).Return(tt.result).Once()

			w := get(newEngine(NewHealthHandler(registry, BuildInfo{}, nil)), "/-/ready")

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			registry.AssertExpectations(t)
		})
	}
}

func TestHealthHandler_ReadinessWithRealRegistry(t *testing.T) {
	registry := ports.NewHealthRegistry()
	closed := false
	require.NoError(t, registry.Register(ports.CheckerFunc{
		CheckName: "console",
		Fn: func(context.Context) error {
			if closed {
				return errors.New("console input closed")
			}
			return nil
		},
	}))

	engine := newEngine(NewHealthHandler(registry, BuildInfo{}, nil))

	assert.Equal(t, http.StatusOK, get(engine, "/-/ready").Code)

	closed = true
	assert.Equal(t, http.StatusServiceUnavailable, get(engine, "/-/ready").Code)
}

func TestHealthHandler_BuildInfo(t *testing.T) {
	bi := NewBuildInfo("2.1.0", "deadbeef", "2026-10-01T00:00:00Z")
	w := get(newEngine(NewHealthHandler(&mockHealthRegistry{}, bi, nil)), "/-/build")

	assert.Equal(t, http.StatusOK, w.Code)

	var resp BuildInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, bi, resp)
}

func TestHealthHandler_Metrics(t *testing.T) {
	recorder := metrics.NewRecorder()
	recorder.BookAdded()
	recorder.BorrowRecorded(ports.OutcomeOutOfStock)

	w := get(newEngine(NewHealthHandler(&mockHealthRegistry{}, BuildInfo{}, recorder.Handler())), "/-/metrics")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "library_books_added_total 1")
	assert.Contains(t, w.Body.String(), `library_borrows_total{outcome="out_of_stock"} 1`)
}

func TestHealthHandler_MetricsDisabled(t *testing.T) {
	w := get(newEngine(NewHealthHandler(&mockHealthRegistry{}, BuildInfo{}, nil)), "/-/metrics")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
