package ingestservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Black-And-White-Club/hoopstats/app/modules/ingest/application/parsers"
	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	"github.com/Black-And-White-Club/hoopstats/app/shared/metrics"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "IngestService"

// Outcome labels reported to RecordGameIngested.
const (
	OutcomeSaved     = "saved"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// IngestResult describes what happened to one file.
type IngestResult struct {
	IngestionID uuid.UUID      `json:"ingestion_id"`
	File        string         `json:"file"`
	Game        GameInfo       `json:"game"`
	Format      parsers.Format `json:"format,omitempty"`
	LeagueID    int64          `json:"league_id,omitempty"`
	Duplicate   bool           `json:"duplicate"`
	Assigned    bool           `json:"assigned,omitempty"`
	Players     int            `json:"players"`
}

// IngestService implements the Service interface.
type IngestService struct {
	store      GameStore
	factory    parsers.ParserFactory
	normalizer *Normalizer
	logger     *slog.Logger
	metrics    metrics.OperationMetrics
	tracer     trace.Tracer
}

// NewIngestService creates a new IngestService.
func NewIngestService(
	store GameStore,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
) *IngestService {
	return &IngestService{
		store:      store,
		factory:    parsers.NewFactory(),
		normalizer: NewNormalizer(),
		logger:     logger,
		metrics:    metrics,
		tracer:     tracer,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *IngestService,
	ctx context.Context,
	operationName string,
	file string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("file", file),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("file", file),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
			span.RecordError(err)
			result = results.OperationResult[S, F]{}
		}
	}()

	result, err = op(ctx)

	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.ErrorContext(ctx, "Operation failed with error",
			slog.String("operation", operationName),
			slog.String("file", file),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("file", file),
			slog.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// LoadGameData parses the file at path with the parser for its extension.
func (s *IngestService) LoadGameData(ctx context.Context, path string) (*parsers.GameSheets, error) {
	result, err := withTelemetry(s, ctx, "LoadGameData", filepath.Base(path), func(ctx context.Context) (results.OperationResult[*parsers.GameSheets, error], error) {
		parser, err := s.factory.GetParser(path)
		if err != nil {
			return results.FailureResult[*parsers.GameSheets, error](err), nil
		}
		return s.load(parser, path)
	})
	return unwrap(result, err)
}

// IngestFile extracts the game identity from the filename, skips known games, then parses,
// normalizes and saves the file and assigns it to leagueID. A leagueID of 0 leaves the game
// unassigned. Duplicates are reported in the result, not as an error; a duplicate with no
// league yet is assigned to leagueID.
func (s *IngestService) IngestFile(ctx context.Context, path string, leagueID int64) (IngestResult, error) {
	res := IngestResult{
		IngestionID: uuid.New(),
		File:        filepath.Base(path),
		LeagueID:    leagueID,
	}
	result, err := withTelemetry(s, ctx, "IngestFile", res.File, func(ctx context.Context) (results.OperationResult[IngestResult, error], error) {
		return s.ingest(ctx, path, res)
	})
	out, err := unwrap(result, err)

	switch {
	case err == nil && out.Duplicate:
		s.metrics.RecordGameIngested(ctx, formatLabel(out.Format, path), OutcomeDuplicate)
	case err == nil:
		s.metrics.RecordGameIngested(ctx, formatLabel(out.Format, path), OutcomeSaved)
	case IsRejection(err):
		s.metrics.RecordGameIngested(ctx, formatLabel("", path), OutcomeRejected)
	default:
		s.metrics.RecordGameIngested(ctx, formatLabel("", path), OutcomeFailed)
	}
	if err != nil {
		return res, err
	}
	return out, nil
}

func (s *IngestService) ingest(ctx context.Context, path string, res IngestResult) (results.OperationResult[IngestResult, error], error) {
	logger := s.logger.With(
		slog.String("ingestion_id", res.IngestionID.String()),
		slog.String("file", res.File),
	)

	parser, err := s.factory.GetParser(res.File)
	if err != nil {
		return results.FailureResult[IngestResult, error](err), nil
	}

	info, err := ExtractGameInfo(path)
	if err != nil {
		return results.FailureResult[IngestResult, error](err), nil
	}
	res.Game = info

	if res.LeagueID != 0 {
		if _, err := s.store.GetLeague(ctx, res.LeagueID); err != nil {
			if errors.Is(err, statsservice.ErrLeagueNotFound) {
				return results.FailureResult[IngestResult, error](err), nil
			}
			return results.OperationResult[IngestResult, error]{}, err
		}
	}

	exists, err := s.store.GameExists(ctx, info.GameDate, info.TeamA, info.TeamB)
	if err != nil {
		return results.OperationResult[IngestResult, error]{}, err
	}
	if exists {
		logger.InfoContext(ctx, "Game already stored, skipping file", slog.String("game_date", info.GameDate))
		return s.duplicate(ctx, logger, res)
	}

	loaded, err := s.load(parser, path)
	if err != nil || loaded.IsFailure() {
		return results.OperationResult[IngestResult, error]{Failure: loaded.Failure}, err
	}
	sheets := *loaded.Success
	res.Format = sheets.Format

	game, err := s.normalizer.Normalize(info, sheets)
	if err != nil {
		return results.FailureResult[IngestResult, error](err), nil
	}
	res.Players = len(game.TeamAPlayers) + len(game.TeamBPlayers)

	saved, err := s.store.SaveGame(ctx, game)
	if err != nil {
		if errors.Is(err, statsservice.ErrInvalidGameRecord) {
			return results.FailureResult[IngestResult, error](err), nil
		}
		return results.OperationResult[IngestResult, error]{}, err
	}
	if !saved {
		logger.InfoContext(ctx, "Game stored concurrently, skipping file", slog.String("game_date", info.GameDate))
		return s.duplicate(ctx, logger, res)
	}

	if res.LeagueID != 0 {
		if err := s.assign(ctx, res); err != nil {
			return results.OperationResult[IngestResult, error]{}, err
		}
		res.Assigned = true
	}

	logger.InfoContext(ctx, "Game ingested",
		slog.String("game_date", info.GameDate),
		slog.String("team_a", info.TeamA),
		slog.String("team_b", info.TeamB),
		slog.String("format", string(res.Format)),
		slog.Int("players", res.Players),
	)
	return results.SuccessResult[IngestResult, error](res), nil
}

// duplicate reports an already stored game. A requested league is applied when the game has
// none yet; a game that already belongs to a league keeps it.
func (s *IngestService) duplicate(ctx context.Context, logger *slog.Logger, res IngestResult) (results.OperationResult[IngestResult, error], error) {
	res.Duplicate = true
	if res.LeagueID == 0 {
		return results.SuccessResult[IngestResult, error](res), nil
	}

	leagues, err := s.store.GetGameLeagueIDs(ctx, res.Game.GameDate, res.Game.TeamA, res.Game.TeamB)
	if err != nil {
		return results.OperationResult[IngestResult, error]{}, err
	}
	if len(leagues) > 0 {
		if !slices.Contains(leagues, res.LeagueID) {
			logger.WarnContext(ctx, "Stored game belongs to another league, leaving it there",
				slog.Int64("requested_league_id", res.LeagueID),
				slog.Any("league_ids", leagues),
			)
		}
		return results.SuccessResult[IngestResult, error](res), nil
	}

	if err := s.assign(ctx, res); err != nil {
		return results.OperationResult[IngestResult, error]{}, err
	}
	res.Assigned = true
	logger.InfoContext(ctx, "Unassigned game added to league", slog.Int64("league_id", res.LeagueID))
	return results.SuccessResult[IngestResult, error](res), nil
}

func (s *IngestService) assign(ctx context.Context, res IngestResult) error {
	return s.store.AssignGameToLeague(ctx, statsservice.GameAssignment{
		GameDate: res.Game.GameDate,
		TeamA:    res.Game.TeamA,
		TeamB:    res.Game.TeamB,
		LeagueID: res.LeagueID,
	})
}

// load reads and parses path. Structural problems are failures, I/O problems are errors.
func (s *IngestService) load(parser parsers.Parser, path string) (results.OperationResult[*parsers.GameSheets, error], error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return results.OperationResult[*parsers.GameSheets, error]{}, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	sheets, err := parser.Parse(data)
	if err != nil {
		return results.FailureResult[*parsers.GameSheets, error](err), nil
	}
	return results.SuccessResult[*parsers.GameSheets, error](sheets), nil
}

// IsRejection reports whether err means the file itself is unusable, as opposed to a
// storage or I/O failure that may succeed on another attempt.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidFilenameFormat,
		ErrNoFieldMapping,
		parsers.ErrUnsupportedFileFormat,
		parsers.ErrMalformedCSVStructure,
		parsers.ErrMalformedExcelStructure,
		statsservice.ErrInvalidGameRecord,
		statsservice.ErrLeagueNotFound,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func formatLabel(format parsers.Format, path string) string {
	if format != "" {
		return string(format)
	}
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// unwrap converts an operation result into the plain return values of the public API.
func unwrap[S any](result results.OperationResult[S, error], err error) (S, error) {
	var zero S
	if err != nil {
		return zero, err
	}
	if result.IsFailure() {
		return zero, *result.Failure
	}
	if result.Success == nil {
		return zero, nil
	}
	return *result.Success, nil
}
