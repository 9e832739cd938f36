// Package main is the entry point for the library console.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jsamuelsen/library-console/internal/adapters/console"
	"github.com/jsamuelsen/library-console/internal/adapters/http"
	"github.com/jsamuelsen/library-console/internal/adapters/http/handlers"
	"github.com/jsamuelsen/library-console/internal/app"
	"github.com/jsamuelsen/library-console/internal/domain"
	"github.com/jsamuelsen/library-console/internal/platform/config"
	"github.com/jsamuelsen/library-console/internal/platform/logging"
	"github.com/jsamuelsen/library-console/internal/platform/metrics"
	"github.com/jsamuelsen/library-console/internal/platform/telemetry"
	"github.com/jsamuelsen/library-console/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx, os.Stdin, os.Stdout)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run wires the application and drives the console until it exits, its
// input ends, or ctx is cancelled.
func run(ctx context.Context, in io.Reader, out io.Writer) error {
	// 1. Determine profile from environment
	profile := os.Getenv("APP_ENVIRONMENT")
	if profile == "" {
		profile = "local"
	}

	// 2. Load and validate configuration (fail fast)
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		if domain.IsValidation(err) {
			return fmt.Errorf("invalid config: %w", err)
		}

		return fmt.Errorf("validating config: %w", err)
	}

	// 3. Initialize logging
	logger := logging.New(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: cfg.App.Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	})
	logging.SetDefault(logger)

	logger.Info("starting library console",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("environment", cfg.App.Environment),
	)

	// 4. Initialize telemetry (noop if disabled)
	sessionID := uuid.NewString()

	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      cfg.App.Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
		InstanceID:   sessionID,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		if shutdownErr := telProvider.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	instruments, err := telemetry.NewCommandInstruments()
	if err != nil {
		return fmt.Errorf("creating command instruments: %w", err)
	}

	// 5. Create application services
	recorder := metrics.NewRecorder()
	catalog := app.NewCatalog(app.CatalogConfig{Metrics: recorder, Logger: logger})
	lending := app.NewLendingRegistry(app.LendingRegistryConfig{Metrics: recorder, Logger: logger})

	// 6. Create the console
	msgs, err := console.MessagesFor(cfg.Console.Language)
	if err != nil {
		return fmt.Errorf("selecting console messages: %w", err)
	}

	con, err := console.New(console.Config{
		In:              in,
		Out:             out,
		Catalog:         catalog,
		Lending:         lending,
		Messages:        &msgs,
		DefaultQuantity: cfg.Lending.DefaultQuantity,
		Logger:          logger,
		Tracer:          telemetry.Tracer(),
		Instruments:     instruments,
		SessionID:       sessionID,
	})
	if err != nil {
		return fmt.Errorf("creating console: %w", err)
	}

	// 7. Create health registry
	healthRegistry := ports.NewHealthRegistry()
	if err := healthRegistry.Register(con.Checker()); err != nil {
		return fmt.Errorf("registering console health check: %w", err)
	}

	// 8. Start the admin server (optional) and the console
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)

	if cfg.Admin.Enabled {
		server := http.New(&cfg.Admin, logger)
		http.SetupRouter(server.Engine(), http.RouterConfig{
			Logger:        logger,
			ServiceName:   cfg.App.Name,
			HealthHandler: handlers.NewHealthHandler(healthRegistry, handlers.NewBuildInfo(Version, Commit, BuildTime), recorder.Handler()),
		})

		g.Go(func() error { return server.Run(gctx) })
	}

	// The console is not part of the group: a read blocked on the terminal
	// cannot be interrupted, so shutdown does not wait for it.
	consoleErr := make(chan error, 1)
	go func() { consoleErr <- con.Run(gctx) }()

	// 9. Wait for the console to finish, a signal, or an admin failure
	var runErr error

	select {
	case runErr = <-consoleErr:
	case <-gctx.Done():
		logger.Info("shutting down", slog.String("cause", context.Cause(gctx).Error()))
	}

	cancel()

	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if err := g.Wait(); err != nil {
		return errors.Join(runErr, fmt.Errorf("admin server: %w", err))
	}

	logger.Info("library console stopped")

	return runErr
}
