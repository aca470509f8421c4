package shared

import (
	"log/slog"

	"github.com/Black-And-White-Club/hoopstats/app/shared/metrics"
	"go.opentelemetry.io/otel/trace"
)

// Observability bundles the logger, tracer and metrics handed to every module.
type Observability struct {
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics metrics.OperationMetrics
}
