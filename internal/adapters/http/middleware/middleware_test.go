package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/library-console/internal/adapters/http/dto"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureLogger returns a JSON logger writing every level to buf.
func captureLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// logEntries decodes one JSON object per line.
func logEntries(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var entries []map[string]any
	for line := range strings.SplitSeq(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}

	return entries
}

func TestRequestIDMiddleware(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		existingHeaderID string
		expectGenerated  bool
	}{
		{
			name:            "generates UUID when no header present",
			expectGenerated: true,
		},
		{
			name:             "passes through existing header",
			existingHeaderID: "existing-req-123",
		},
		{
			name:             "replaces oversized header",
			existingHeaderID: strings.Repeat("x", maxIDLength+1),
			expectGenerated:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var capturedID string

			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				capturedID = GetRequestID(c)
				c.Status(http.StatusOK)
			})

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
			if tt.existingHeaderID != "" {
				req.Header.Set(HeaderRequestID, tt.existingHeaderID)
			}

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, w.Header().Get(HeaderRequestID), capturedID)

			if tt.expectGenerated {
				assert.Regexp(t, `^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`, capturedID)
			} else {
				assert.Equal(t, tt.existingHeaderID, capturedID)
			}
		})
	}
}

func TestGetRequestID_NotSet(t *testing.T) {
	t.Parallel()

	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	c.Set(ContextKeyRequestID, 42)
	assert.Empty(t, GetRequestID(c), "non-string values are ignored")
}

func TestContextLogger_RequestIDReachesLogs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := captureLogger(&buf)

	router := gin.New()
	router.Use(ContextLogger(logger), RequestID(), Logging(logger))
	router.GET("/stats", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).InfoContext(c.Request.Context(), "handler ran")
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/stats?verbose=1", http.NoBody)
	req.Header.Set(HeaderRequestID, "req-42")
	router.ServeHTTP(httptest.NewRecorder(), req)

	entries := logEntries(t, &buf)
	require.Len(t, entries, 2)
	for _, entry := range entries {
		assert.Equal(t, "req-42", entry["request_id"])
	}
	assert.Equal(t, "/stats?verbose=1", entries[1]["path"])
	assert.InDelta(t, float64(http.StatusOK), entries[1]["status"], 0)
}

func TestLogging_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
	}{
		{"probe success", "/-/ready", http.StatusOK, "DEBUG"},
		{"probe failure", "/-/ready", http.StatusServiceUnavailable, "ERROR"},
		{"other success", "/other", http.StatusOK, "INFO"},
		{"client error", "/other", http.StatusNotFound, "WARN"},
		{"server error", "/other", http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := captureLogger(&buf)

			router := gin.New()
			router.Use(Logging(logger))
			router.GET(tt.path, func(c *gin.Context) { c.Status(tt.status) })

			router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path, http.NoBody))

			entries := logEntries(t, &buf)
			require.Len(t, entries, 1)
			assert.Equal(t, tt.wantLevel, entries[0]["level"])
			assert.Equal(t, "request completed", entries[0]["msg"])
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	t.Run("normal request passes through", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewTextHandler(io.Discard, nil))))
		router.GET("/test", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panicking handler returns 500 envelope", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer

		router := gin.New()
		router.Use(Recovery(captureLogger(&buf)))
		router.GET("/test", func(*gin.Context) { panic("something went wrong") })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)

		entries := logEntries(t, &buf)
		require.Len(t, entries, 1)
		assert.Equal(t, "panic recovered", entries[0]["msg"])
		assert.Equal(t, "something went wrong", entries[0]["error"])
		assert.NotEmpty(t, entries[0]["stack"])
	})

	t.Run("panic after write keeps status", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(Recovery(slog.New(slog.NewTextHandler(io.Discard, nil))))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "partial")
			panic("late failure")
		})

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", http.NoBody))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "partial", w.Body.String())
	})
}
