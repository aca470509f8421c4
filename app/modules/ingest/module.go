package ingest

import (
	"context"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	ingesthandlers "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/infrastructure/handlers"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// Module represents the ingest module: parsing, normalization and uploads.
type Module struct {
	service  ingestservice.Service
	handlers ingesthandlers.Handlers
	limiter  *ingesthandlers.IPRateLimiter
}

// NewModule creates a new ingest module writing through store.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs shared.Observability,
	store ingestservice.GameStore,
) (*Module, error) {
	obs.Logger.InfoContext(ctx, "Initializing ingest module")

	service := ingestservice.NewIngestService(store, obs.Logger, obs.Metrics, obs.Tracer)
	handlers := ingesthandlers.NewIngestHandlers(
		service,
		cfg.HTTP.UploadDir,
		cfg.HTTP.MaxUploadBytes,
		obs.Logger,
		obs.Tracer,
	)

	return &Module{
		service:  service,
		handlers: handlers,
		limiter:  ingesthandlers.NewIPRateLimiter(rate.Limit(cfg.HTTP.UploadRate), cfg.HTTP.UploadBurst),
	}, nil
}

// LeagueRoutes registers the upload endpoint on a /leagues/{leagueID} subrouter.
func (m *Module) LeagueRoutes() func(chi.Router) {
	return ingesthandlers.LeagueRoutes(m.handlers, m.limiter)
}

// GetService returns the ingest service for the CLI.
func (m *Module) GetService() ingestservice.Service {
	return m.service
}
