package statshandlers

import "github.com/go-chi/chi/v5"

// RegisterRoutes mounts the stats API on r. leagueRoutes are registered inside the
// /leagues/{leagueID} subrouter, after LeagueCtx has resolved the league.
func RegisterRoutes(r chi.Router, h Handlers, leagueRoutes ...func(chi.Router)) {
	r.Route("/leagues", func(r chi.Router) {
		r.Get("/", h.HandleListLeagues)
		r.Post("/", h.HandleCreateLeague)

		r.Route("/{leagueID}", func(r chi.Router) {
			r.Use(h.LeagueCtx)
			r.Get("/", h.HandleGetLeague)
			r.Get("/games", h.HandleLeagueGames)
			r.Put("/games", h.HandleAssignGame)
			r.Get("/rankings/teams", h.HandleTeamRankings)
			r.Get("/rankings/players", h.HandlePlayerRankings)
			r.Get("/players", h.HandleLeaguePlayers)
			r.Get("/players/{player}/games", h.HandlePlayerGames)
			r.Get("/players/{player}/teams", h.HandlePlayerTeams)
			r.Get("/players/{player}/trend.png", h.HandlePlayerTrendChart)

			for _, register := range leagueRoutes {
				register(r)
			}
		})
	})

	r.Route("/players/{player}", func(r chi.Router) {
		r.Get("/career", h.HandlePlayerCareer)
		r.Get("/games/{date}", h.HandlePlayerGameStat)
	})
}
