package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/library-console/internal/adapters/http/handlers"
	"github.com/jsamuelsen/library-console/internal/adapters/http/middleware"
	"github.com/jsamuelsen/library-console/internal/platform/telemetry"
)

// RouterConfig contains configuration for setting up the admin router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the server in OpenTelemetry spans.
	ServiceName string

	// HealthHandler serves the /-/ routes.
	HealthHandler *handlers.HealthHandler
}

// SetupRouter configures middleware and routes on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger - seed the request context with the admin logger
//  3. Request ID - generate/extract request ID
//  4. OpenTelemetry - tracing
//  5. Logging - request logging
//
// Every route lives under /-/; other paths get a NOT_FOUND envelope.
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	engine.NoRoute(noRoute)
	engine.NoMethod(noMethod)
}
