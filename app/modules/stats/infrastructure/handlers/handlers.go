package statshandlers

import (
	"log/slog"
	"net/http"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	"go.opentelemetry.io/otel/trace"
)

// Handlers serves the API over leagues, rankings and players.
type Handlers interface {
	LeagueCtx(next http.Handler) http.Handler

	HandleListLeagues(w http.ResponseWriter, r *http.Request)
	HandleCreateLeague(w http.ResponseWriter, r *http.Request)
	HandleGetLeague(w http.ResponseWriter, r *http.Request)
	HandleLeagueGames(w http.ResponseWriter, r *http.Request)
	HandleAssignGame(w http.ResponseWriter, r *http.Request)
	HandleTeamRankings(w http.ResponseWriter, r *http.Request)
	HandlePlayerRankings(w http.ResponseWriter, r *http.Request)
	HandleLeaguePlayers(w http.ResponseWriter, r *http.Request)
	HandlePlayerGames(w http.ResponseWriter, r *http.Request)
	HandlePlayerTeams(w http.ResponseWriter, r *http.Request)
	HandlePlayerTrendChart(w http.ResponseWriter, r *http.Request)

	HandlePlayerCareer(w http.ResponseWriter, r *http.Request)
	HandlePlayerGameStat(w http.ResponseWriter, r *http.Request)
}

// StatsHandlers implements Handlers on top of the stats service.
type StatsHandlers struct {
	service statsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewStatsHandlers creates a new StatsHandlers instance.
func NewStatsHandlers(
	service statsservice.Service,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &StatsHandlers{
		service: service,
		logger:  logger,
		tracer:  tracer,
	}
}
