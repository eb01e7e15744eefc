// Package main is the entry point for the campus API server. It wires all
// dependencies using samber/do v2, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/samber/do/v2"

	adapthttp "github.com/campusconnect/campus-api/internal/adapters/http"
	"github.com/campusconnect/campus-api/internal/adapters/http/handlers"
	"github.com/campusconnect/campus-api/internal/adapters/http/middleware"

	"github.com/campusconnect/campus-api/internal/adapters/clients/genai"
	"github.com/campusconnect/campus-api/internal/adapters/store/memstore"
	"github.com/campusconnect/campus-api/internal/adapters/store/redisstore"
	"github.com/campusconnect/campus-api/internal/app"
	"github.com/campusconnect/campus-api/internal/platform/config"
	"github.com/campusconnect/campus-api/internal/platform/health"
	"github.com/campusconnect/campus-api/internal/platform/httpclient"
	"github.com/campusconnect/campus-api/internal/platform/logging"
	"github.com/campusconnect/campus-api/internal/platform/telemetry"
	"github.com/campusconnect/campus-api/internal/ports"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	store := do.MustInvoke[ports.DocumentStore](injector)
	aiClient := do.MustInvoke[*genai.Client](injector)
	registry.Register(store)
	registry.Register(aiClient)

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	// Graceful shutdown: drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}

	// Wait for Start() goroutine to return.
	<-serverErr

	// Flush telemetry.
	otelCtx, otelCancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer otelCancel()

	if err := otel.Shutdown(otelCtx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}

	logger.Info("shutdown complete")
	return nil
}

// otelProviders bundles OpenTelemetry provider lifecycle. All fields are nil
// when telemetry is disabled.
type otelProviders struct {
	tracer  *sdktrace.TracerProvider
	meter   *sdkmetric.MeterProvider
	metrics *telemetry.Metrics
}

// Shutdown flushes both providers. Nil-safe.
func (o *otelProviders) Shutdown(ctx context.Context) error {
	var errs []error
	if o.tracer != nil {
		if err := o.tracer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer shutdown: %w", err))
		}
	}
	if o.meter != nil {
		if err := o.meter.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("meter shutdown: %w", err))
		}
	}
	return errors.Join(errs...)
}

func initTelemetry(ctx context.Context, cfg *config.Config) (*otelProviders, error) {
	if !cfg.Telemetry.Enabled {
		return &otelProviders{}, nil
	}

	tp, err := telemetry.InitTracer(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	mp, err := telemetry.InitMeter(ctx,
		cfg.Telemetry.ServiceName,
		cfg.Telemetry.Exporter,
		cfg.Telemetry.Endpoint,
	)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("init meter: %w", err)
	}

	metrics, err := telemetry.NewMetrics(mp)
	if err != nil {
		_ = tp.Shutdown(ctx)
		_ = mp.Shutdown(ctx)
		return nil, fmt.Errorf("creating metrics: %w", err)
	}

	return &otelProviders{
		tracer:  tp,
		meter:   mp,
		metrics: metrics,
	}, nil
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (ports.DocumentStore, error) {
		if cfg.Store.Backend == "memory" {
			return memstore.New(cfg.Workflow.WatchBuffer), nil
		}
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Store.Addr,
			Password: cfg.Store.Password,
			DB:       cfg.Store.DB,
		})
		return redisstore.New(client, cfg.Store.OpTimeout, cfg.Workflow.WatchBuffer, metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.GenAI, "genai", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*genai.Client, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return genai.New(client, &cfg.GenAI, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.Coordinator, error) {
		store := do.MustInvoke[ports.DocumentStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		coord := app.NewCoordinator(store, app.CoordinatorConfig{
			RetryDelay:  cfg.Workflow.RetryDelay,
			HookTimeout: cfg.Workflow.HookTimeout,
		}, metrics, logger)
		coord.RegisterHook(app.NewSubjectCleanupHook(store, logger))
		return coord, nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		store := do.MustInvoke[ports.DocumentStore](i)
		coord := do.MustInvoke[ports.Coordinator](i)
		aiClient := do.MustInvoke[*genai.Client](i)
		registry := do.MustInvoke[ports.HealthRegistry](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		h := adapthttp.Handlers{
			Cafeteria:    handlers.NewCafeteriaHandler(app.NewCafeteriaService(store, coord, logger)),
			LostFound:    handlers.NewLostFoundHandler(app.NewLostFoundService(coord, logger)),
			Skills:       handlers.NewSkillsHandler(app.NewSkillsService(coord, store, logger)),
			Notes:        handlers.NewNotesHandler(app.NewNotesService(store, coord, logger)),
			Flashcard:    handlers.NewFlashcardHandler(app.NewFlashcardService(aiClient, logger)),
			Directory:    handlers.NewDirectoryHandler(app.NewDirectoryService(store, logger)),
			Announcement: handlers.NewAnnouncementHandler(app.NewAnnouncementService(store, logger)),
			User:         handlers.NewUserHandler(app.NewUserService(store, logger)),
			Health:       handlers.NewHealthHandler(registry),
		}

		return adapthttp.NewRouter(h, cfg.Server.WriteTimeout,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.Actor(),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
