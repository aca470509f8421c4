package statshandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
)

type leagueCtxKey struct{}

// LeagueFromContext returns the league resolved by LeagueCtx.
func LeagueFromContext(ctx context.Context) (statsdb.League, bool) {
	league, ok := ctx.Value(leagueCtxKey{}).(statsdb.League)
	return league, ok
}

// LeagueCtx resolves {leagueID} and rejects unknown leagues before the handler runs.
func (h *StatsHandlers) LeagueCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid league id", http.StatusBadRequest)
			return
		}

		league, err := h.service.GetLeague(r.Context(), id)
		if err != nil {
			h.fail(w, r, "GetLeague", err)
			return
		}

		ctx := context.WithValue(r.Context(), leagueCtxKey{}, league)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *StatsHandlers) HandleListLeagues(w http.ResponseWriter, r *http.Request) {
	leagues, err := h.service.ListLeagues(r.Context())
	if err != nil {
		h.fail(w, r, "ListLeagues", err)
		return
	}
	if leagues == nil {
		leagues = []statsdb.League{}
	}
	writeJSON(w, http.StatusOK, leagues)
}

type createLeagueRequest struct {
	Name string `json:"name"`
}

// HandleCreateLeague answers 201 for a new league and 409 when the name is taken.
func (h *StatsHandlers) HandleCreateLeague(w http.ResponseWriter, r *http.Request) {
	var req createLeagueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	league, created, err := h.service.CreateLeague(r.Context(), req.Name)
	if err != nil {
		h.fail(w, r, "CreateLeague", err)
		return
	}
	if !created {
		http.Error(w, "league already exists", http.StatusConflict)
		return
	}

	h.logger.InfoContext(r.Context(), "League created", "league_id", league.LeagueID, "name", league.LeagueName)
	writeJSON(w, http.StatusCreated, league)
}

func (h *StatsHandlers) HandleGetLeague(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())
	writeJSON(w, http.StatusOK, league)
}

func (h *StatsHandlers) HandleLeagueGames(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())
	games, err := h.service.GetLeagueGames(r.Context(), league.LeagueID)
	if err != nil {
		h.fail(w, r, "GetLeagueGames", err)
		return
	}
	if games == nil {
		games = []statsdb.LeagueGame{}
	}
	writeJSON(w, http.StatusOK, games)
}

type assignGameRequest struct {
	GameDate string `json:"game_date"`
	TeamA    string `json:"team_a"`
	TeamB    string `json:"team_b"`
}

// HandleAssignGame moves a stored game into the league. Unknown games answer 404.
func (h *StatsHandlers) HandleAssignGame(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())

	var req assignGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameDate == "" || req.TeamA == "" || req.TeamB == "" {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	err := h.service.AssignGameToLeague(r.Context(), statsservice.GameAssignment{
		GameDate: req.GameDate,
		TeamA:    req.TeamA,
		TeamB:    req.TeamB,
		LeagueID: league.LeagueID,
	})
	if err != nil {
		h.fail(w, r, "AssignGameToLeague", err)
		return
	}

	h.logger.InfoContext(r.Context(), "Game assigned to league",
		"league_id", league.LeagueID, "game_date", req.GameDate, "team_a", req.TeamA, "team_b", req.TeamB)
	w.WriteHeader(http.StatusNoContent)
}

func (h *StatsHandlers) HandleTeamRankings(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())
	rankings, err := h.service.GetTeamRankings(r.Context(), league.LeagueID)
	if err != nil {
		h.fail(w, r, "GetTeamRankings", err)
		return
	}
	if rankings == nil {
		rankings = []statsservice.TeamRanking{}
	}
	writeJSON(w, http.StatusOK, rankings)
}

// HandlePlayerRankings orders players by ?stat=, defaulting to points.
func (h *StatsHandlers) HandlePlayerRankings(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())
	key := statKeyParam(r)
	rankings, err := h.service.GetPlayerRankings(r.Context(), league.LeagueID, key)
	if err != nil {
		h.fail(w, r, "GetPlayerRankings", err)
		return
	}
	if rankings == nil {
		rankings = []statsservice.PlayerRanking{}
	}
	writeJSON(w, http.StatusOK, rankings)
}

func (h *StatsHandlers) HandleLeaguePlayers(w http.ResponseWriter, r *http.Request) {
	league, _ := LeagueFromContext(r.Context())
	players, err := h.service.GetLeaguePlayers(r.Context(), league.LeagueID)
	if err != nil {
		h.fail(w, r, "GetLeaguePlayers", err)
		return
	}
	if players == nil {
		players = []statsdb.PlayerRef{}
	}
	writeJSON(w, http.StatusOK, players)
}

func statKeyParam(r *http.Request) statsservice.StatKey {
	if stat := r.URL.Query().Get("stat"); stat != "" {
		return statsservice.StatKey(stat)
	}
	return statsservice.StatPoints
}
