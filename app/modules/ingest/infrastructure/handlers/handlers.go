package ingesthandlers

import (
	"log/slog"
	"net/http"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	"go.opentelemetry.io/otel/trace"
)

// Handlers accepts box score uploads over HTTP.
type Handlers interface {
	HandleUpload(w http.ResponseWriter, r *http.Request)
}

// IngestHandlers implements Handlers.
type IngestHandlers struct {
	service   ingestservice.Service
	uploadDir string
	maxBytes  int64
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewIngestHandlers creates a new IngestHandlers instance. Uploaded files are kept
// under uploadDir; request bodies larger than maxBytes are refused.
func NewIngestHandlers(
	service ingestservice.Service,
	uploadDir string,
	maxBytes int64,
	logger *slog.Logger,
	tracer trace.Tracer,
) Handlers {
	return &IngestHandlers{
		service:   service,
		uploadDir: uploadDir,
		maxBytes:  maxBytes,
		logger:    logger,
		tracer:    tracer,
	}
}
