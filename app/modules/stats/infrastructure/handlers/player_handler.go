package statshandlers

import (
	"bytes"
	"net/http"
	"net/url"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
)

// playerParam returns the unescaped {player} segment.
func playerParam(r *http.Request) (string, bool) {
	player, err := url.PathUnescape(chi.URLParam(r, "player"))
	if err != nil || player == "" {
		return "", false
	}
	return player, true
}

func (h *StatsHandlers) HandlePlayerGames(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(r)
	if !ok {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}
	league, _ := LeagueFromContext(r.Context())

	games, err := h.service.GetPlayerGames(r.Context(), player, league.LeagueID)
	if err != nil {
		h.fail(w, r, "GetPlayerGames", err)
		return
	}
	if games == nil {
		games = []statsdb.PlayerGame{}
	}
	writeJSON(w, http.StatusOK, games)
}

func (h *StatsHandlers) HandlePlayerTeams(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(r)
	if !ok {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}
	league, _ := LeagueFromContext(r.Context())

	teams, err := h.service.GetPlayerTeams(r.Context(), player, league.LeagueID)
	if err != nil {
		h.fail(w, r, "GetPlayerTeams", err)
		return
	}
	if teams == nil {
		teams = []string{}
	}
	writeJSON(w, http.StatusOK, teams)
}

// HandlePlayerTrendChart renders into memory first so a failure can still produce an error status.
// ?team= limits the trend to one of the player's teams.
func (h *StatsHandlers) HandlePlayerTrendChart(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(r)
	if !ok {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}
	league, _ := LeagueFromContext(r.Context())

	var buf bytes.Buffer
	if err := h.service.RenderPlayerTrendChart(r.Context(), &buf, player, r.URL.Query().Get("team"), league.LeagueID, statKeyParam(r)); err != nil {
		h.fail(w, r, "RenderPlayerTrendChart", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// HandlePlayerCareer aggregates across all leagues, optionally limited to ?team=.
func (h *StatsHandlers) HandlePlayerCareer(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(r)
	if !ok {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}

	stats, err := h.service.GetPlayerCareerStats(r.Context(), player, r.URL.Query().Get("team"))
	if err != nil {
		h.fail(w, r, "GetPlayerCareerStats", err)
		return
	}
	if stats == nil {
		http.Error(w, "player not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *StatsHandlers) HandlePlayerGameStat(w http.ResponseWriter, r *http.Request) {
	player, ok := playerParam(r)
	if !ok {
		http.Error(w, "invalid player", http.StatusBadRequest)
		return
	}

	stat, err := h.service.GetPlayerGameStat(r.Context(), player, chi.URLParam(r, "date"))
	if err != nil {
		h.fail(w, r, "GetPlayerGameStat", err)
		return
	}
	if stat == nil {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, stat)
}
