package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse(ErrorCodeNotFound, "no route")

	assert.Equal(t, ErrorCodeNotFound, resp.Error.Code)
	assert.Equal(t, "no route", resp.Error.Message)
	assert.Empty(t, resp.TraceID)
}

func TestErrorResponse_JSONShape(t *testing.T) {
	tests := []struct {
		name string
		resp *ErrorResponse
		want string
	}{
		{
			name: "without trace",
			resp: NewErrorResponse(ErrorCodeInternal, "boom"),
			want: `{"error":{"code":"INTERNAL_ERROR","message":"boom"}}`,
		},
		{
			name: "with trace",
			resp: NewErrorResponse(ErrorCodeNotFound, "missing").WithTraceID("abc"),
			want: `{"error":{"code":"NOT_FOUND","message":"missing"},"traceId":"abc"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := json.Marshal(tt.resp)

			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(body))
		})
	}
}

func TestHTTPStatusFromCode(t *testing.T) {
	tests := map[string]int{
		ErrorCodeNotFound:         http.StatusNotFound,
		ErrorCodeMethodNotAllowed: http.StatusMethodNotAllowed,
		ErrorCodeUnavailable:      http.StatusServiceUnavailable,
		ErrorCodeInternal:         http.StatusInternalServerError,
		"SOMETHING_ELSE":          http.StatusInternalServerError,
	}

	for code, want := range tests {
		assert.Equal(t, want, HTTPStatusFromCode(code), code)
	}
}
