package statshandlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, bundb.ErrStorageLocked):
		return http.StatusServiceUnavailable
	case errors.Is(err, statsservice.ErrLeagueNotFound),
		errors.Is(err, statsservice.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, statsservice.ErrUnknownStatKey),
		errors.Is(err, statsservice.ErrInvalidLeagueName):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (h *StatsHandlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Stats request failed",
			slog.String("operation", op),
			slog.Any("error", err),
		)
	}
	msg := err.Error()
	if status >= http.StatusInternalServerError {
		msg = http.StatusText(status)
	}
	http.Error(w, msg, status)
}
