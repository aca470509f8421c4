package shared

import (
	"io"
	"log/slog"
	"strings"

	"github.com/Black-And-White-Club/hoopstats/config"
)

// LogFormat selects the slog handler used by NewLogger.
type LogFormat int

const (
	LogFormatText LogFormat = iota
	LogFormatJSON
)

// NewLogger builds the process logger from the observability settings.
func NewLogger(w io.Writer, cfg config.ObservabilityConfig, format LogFormat) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.LogLevel)}

	var handler slog.Handler
	if format == LogFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)
	if cfg.Environment != "" {
		logger = logger.With(slog.String("environment", cfg.Environment))
	}
	return logger
}

// ParseLevel maps debug, info, warn and error onto slog levels. Anything else is info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
