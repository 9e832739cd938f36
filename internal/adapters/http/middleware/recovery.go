package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/library-console/internal/adapters/http/dto"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
)

// Recovery returns middleware that recovers from panics. The panic is logged
// with its stack at ERROR level and the client receives a 500 error envelope
// carrying the trace ID when one exists.
//
// Apply it first so it covers every later handler and middleware.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			ctx := c.Request.Context()

			var traceID string
			if span := trace.SpanFromContext(ctx); span.SpanContext().HasTraceID() {
				traceID = span.SpanContext().TraceID().String()
			}

			logging.FromContextOr(ctx, logger).ErrorContext(ctx, "panic recovered",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
				slog.String("path", c.Request.URL.Path),
				slog.String("method", c.Request.Method),
				slog.String("trace_id", traceID),
			)

			if c.Writer.Written() {
				c.Abort()
				return
			}

			errResp := dto.NewErrorResponse(dto.ErrorCodeInternal, "an internal error occurred")
			if traceID != "" {
				errResp.WithTraceID(traceID)
			}

			c.AbortWithStatusJSON(dto.HTTPStatusFromCode(dto.ErrorCodeInternal), errResp)
		}()

		c.Next()
	}
}
