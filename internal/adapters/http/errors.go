package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/library-console/internal/adapters/http/dto"
)

// AbortWithErrorCode aborts the request chain with a specific error code.
// The trace ID is included when the request is traced.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	errResp := dto.NewErrorResponse(code, message)

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	c.AbortWithStatusJSON(dto.HTTPStatusFromCode(code), errResp)
}

// noRoute answers unknown paths with the standard error envelope.
func noRoute(c *gin.Context) {
	AbortWithErrorCode(c, dto.ErrorCodeNotFound, "no admin route for "+c.Request.URL.Path)
}

// noMethod answers known paths requested with the wrong method.
func noMethod(c *gin.Context) {
	AbortWithErrorCode(c, dto.ErrorCodeMethodNotAllowed, "method "+c.Request.Method+" not allowed")
}
