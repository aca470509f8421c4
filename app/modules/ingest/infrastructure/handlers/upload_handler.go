package ingesthandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	ingestservice "github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application"
	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const uploadField = "file"

// HandleUpload stores a multipart upload and ingests it into {leagueID}.
// The stored copy is kept only when the game was saved.
func (h *IngestHandlers) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "HandleUpload")
	defer span.End()

	leagueID, err := strconv.ParseInt(chi.URLParam(r, "leagueID"), 10, 64)
	if err != nil || leagueID <= 0 {
		http.Error(w, "invalid league id", http.StatusBadRequest)
		return
	}

	if r.ContentLength > h.maxBytes {
		http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	file, header, err := r.FormFile(uploadField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "upload too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "missing upload field \"file\"", http.StatusBadRequest)
		return
	}
	defer file.Close()

	name := filepath.Base(filepath.Clean("/" + header.Filename))
	if name == "/" || name == "." {
		http.Error(w, "missing file name", http.StatusBadRequest)
		return
	}
	span.SetAttributes(attribute.String("file", name), attribute.Int64("league_id", leagueID))

	dir := filepath.Join(h.uploadDir, uuid.NewString())
	path, err := store(dir, name, file)
	if err != nil {
		os.RemoveAll(dir)
		h.logger.ErrorContext(ctx, "Failed to store upload", slog.String("file", name), slog.Any("error", err))
		http.Error(w, "failed to store upload", http.StatusInternalServerError)
		return
	}

	res, err := h.service.IngestFile(ctx, path, leagueID)
	if err != nil || res.Duplicate {
		os.RemoveAll(dir)
	}
	if err != nil {
		status := uploadStatus(err)
		if status >= http.StatusInternalServerError {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			h.logger.ErrorContext(ctx, "Upload ingestion failed", slog.String("file", name), slog.Any("error", err))
			http.Error(w, http.StatusText(status), status)
			return
		}
		h.logger.WarnContext(ctx, "Upload rejected", slog.String("file", name), slog.Any("error", err))
		http.Error(w, err.Error(), status)
		return
	}

	status := http.StatusCreated
	switch {
	case res.Duplicate && res.Assigned:
		status = http.StatusOK
	case res.Duplicate:
		status = http.StatusConflict
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(res)
}

func store(dir, name string, src io.Reader) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	path := filepath.Join(dir, name)
	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return path, dst.Close()
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, statsservice.ErrLeagueNotFound):
		return http.StatusNotFound
	case errors.Is(err, bundb.ErrStorageLocked):
		return http.StatusServiceUnavailable
	case ingestservice.IsRejection(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

