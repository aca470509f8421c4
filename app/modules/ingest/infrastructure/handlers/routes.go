package ingesthandlers

import "github.com/go-chi/chi/v5"

// LeagueRoutes returns the upload route for a /leagues/{leagueID} subrouter.
func LeagueRoutes(h Handlers, limiter *IPRateLimiter) func(chi.Router) {
	return func(r chi.Router) {
		r.With(RateLimitMiddleware(limiter)).Post("/games", h.HandleUpload)
	}
}
