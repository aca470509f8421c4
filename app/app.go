package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Black-And-White-Club/hoopstats/app/modules/ingest"
	"github.com/Black-And-White-Club/hoopstats/app/modules/stats"
	statsmigrations "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/Black-And-White-Club/hoopstats/app/shared/metrics"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/otel"
)

const tracerName = "hoopstats"

// Modules holds the application modules.
type Modules struct {
	Stats  *stats.Module
	Ingest *ingest.Module
}

// App wires configuration, storage and modules together.
type App struct {
	Config        *config.Config
	Observability shared.Observability
	Modules       Modules

	db       *db.DBService
	registry *prometheus.Registry
}

// NewApp opens and migrates the store and initializes every module.
func NewApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	registry := prometheus.NewRegistry()

	var opMetrics metrics.OperationMetrics = metrics.NewNoop()
	if cfg.Observability.MetricsEnabled {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		opMetrics = metrics.NewPrometheus(registry)
	}

	obs := shared.Observability{
		Logger:  logger,
		Tracer:  otel.Tracer(tracerName),
		Metrics: opMetrics,
	}

	dbService, err := db.NewDBService(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database service: %w", err)
	}

	if err := statsmigrations.Apply(ctx, dbService.GetDB()); err != nil {
		dbService.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}
	logger.InfoContext(ctx, "Database ready", slog.String("path", cfg.Database.Path))

	statsModule, err := stats.NewModule(ctx, cfg, obs, dbService.StatsDB, dbService.GetDB())
	if err != nil {
		dbService.Close()
		return nil, fmt.Errorf("failed to initialize stats module: %w", err)
	}

	ingestModule, err := ingest.NewModule(ctx, cfg, obs, statsModule.GetService())
	if err != nil {
		statsModule.Close()
		dbService.Close()
		return nil, fmt.Errorf("failed to initialize ingest module: %w", err)
	}

	return &App{
		Config:        cfg,
		Observability: obs,
		Modules: Modules{
			Stats:  statsModule,
			Ingest: ingestModule,
		},
		db:       dbService,
		registry: registry,
	}, nil
}

// DB returns the database service.
func (app *App) DB() *db.DBService {
	return app.db
}
