package stats

import (
	"context"
	"log/slog"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statscache "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/cache"
	statshandlers "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/handlers"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared"
	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/uptrace/bun"
)

// Module represents the stats module: storage, rankings and the read API.
type Module struct {
	config   *config.Config
	service  *statsservice.StatsService
	handlers statshandlers.Handlers
	cache    *statscache.RedisCache
	logger   *slog.Logger
}

// NewModule creates a new stats module. A Redis URL that cannot be reached leaves
// rankings uncached rather than failing startup.
func NewModule(
	ctx context.Context,
	cfg *config.Config,
	obs shared.Observability,
	repo statsdb.Repository,
	db *bun.DB,
) (*Module, error) {
	logger := obs.Logger
	logger.InfoContext(ctx, "Initializing stats module")

	var (
		rankingCache statsservice.RankingCache
		redisCache   *statscache.RedisCache
	)
	if cfg.Redis.URL != "" {
		c, err := statscache.NewRedisCache(ctx, cfg.Redis.URL, cfg.Redis.TTL)
		if err != nil {
			logger.WarnContext(ctx, "Ranking cache disabled", slog.Any("error", err))
		} else {
			redisCache = c
			rankingCache = c
		}
	}

	service := statsservice.NewStatsService(
		repo,
		logger,
		obs.Metrics,
		obs.Tracer,
		db,
		bundb.NewRetryPolicy(cfg.Retry),
		rankingCache,
	)

	handlers := statshandlers.NewStatsHandlers(service, logger, obs.Tracer)

	return &Module{
		config:   cfg,
		service:  service,
		handlers: handlers,
		cache:    redisCache,
		logger:   logger,
	}, nil
}

// RegisterRoutes mounts the stats API. leagueRoutes join the /leagues/{leagueID} subrouter.
func (m *Module) RegisterRoutes(r chi.Router, leagueRoutes ...func(chi.Router)) {
	statshandlers.RegisterRoutes(r, m.handlers, leagueRoutes...)
}

// GetService returns the stats service for use by other modules.
func (m *Module) GetService() *statsservice.StatsService {
	return m.service
}

// Close releases the ranking cache connection.
func (m *Module) Close() error {
	if m.cache == nil {
		return nil
	}
	m.logger.Info("Closing ranking cache")
	return m.cache.Close()
}
