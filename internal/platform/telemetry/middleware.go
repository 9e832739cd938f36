package telemetry

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"
)

// HeaderTraceID carries the trace ID of an admin request back to the caller.
const HeaderTraceID = "X-Trace-ID"

// Middleware returns the admin server tracing middleware: otelgin spans
// plus an X-Trace-ID response header when a trace is recorded.
func Middleware(serviceName string) []gin.HandlerFunc {
	return []gin.HandlerFunc{
		otelgin.Middleware(serviceName),
		traceIDHeader(),
	}
}

func traceIDHeader() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sc := trace.SpanContextFromContext(c.Request.Context()); sc.HasTraceID() {
			c.Header(HeaderTraceID, sc.TraceID().String())
		}
		c.Next()
	}
}
