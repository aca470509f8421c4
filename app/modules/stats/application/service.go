package statsservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/metrics"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "StatsService"

// StatsService implements the Service interface.
type StatsService struct {
	repo    statsdb.Repository
	logger  *slog.Logger
	metrics metrics.OperationMetrics
	tracer  trace.Tracer
	db      *bun.DB
	retry   bundb.RetryPolicy
	cache   RankingCache
}

// NewStatsService creates a new StatsService. A nil cache disables ranking caching.
func NewStatsService(
	repo statsdb.Repository,
	logger *slog.Logger,
	metrics metrics.OperationMetrics,
	tracer trace.Tracer,
	db *bun.DB,
	retry bundb.RetryPolicy,
	cache RankingCache,
) *StatsService {
	if cache == nil {
		cache = NoopCache{}
	}
	return &StatsService{
		repo:    repo,
		logger:  logger,
		metrics: metrics,
		tracer:  tracer,
		db:      db,
		retry:   retry,
		cache:   cache,
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[S any, F any] func(ctx context.Context) (results.OperationResult[S, F], error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[S any, F any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	subject string,
	op operationFunc[S, F],
) (result results.OperationResult[S, F], err error) {

	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("subject", subject),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt(ctx, operationName, serviceName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration(ctx, operationName, serviceName, time.Since(startTime))
	}()

	s.logger.InfoContext(ctx, operationName+" triggered",
		slog.String("operation", operationName),
		slog.String("subject", subject),
	)

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("subject", subject),
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
			slog.String("subject", subject),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure(ctx, operationName, serviceName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}

	if result.IsFailure() {
		s.logger.WarnContext(ctx, "Operation returned failure result",
			slog.String("operation", operationName),
			slog.String("subject", subject),
			slog.Any("failure_payload", *result.Failure),
		)
	}

	if result.IsSuccess() {
		s.logger.InfoContext(ctx, operationName+" completed successfully",
			slog.String("operation", operationName),
			slog.String("subject", subject),
		)
		s.metrics.RecordOperationSuccess(ctx, operationName, serviceName)
	}

	return result, nil
}

// retryFor returns the service retry policy reporting retries of operationName.
func (s *StatsService) retryFor(operationName string) bundb.RetryPolicy {
	policy := s.retry
	policy.OnRetry = func(ctx context.Context, attempt int, err error) {
		s.logger.WarnContext(ctx, "Database locked, retrying",
			slog.String("operation", operationName),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", policy.Backoff),
			slog.Any("error", err),
		)
		s.metrics.RecordLockRetry(ctx, operationName)
	}
	return policy
}

// runInTx runs fn in a write transaction, retrying the whole transaction on lock contention.
func runInTx[S any, F any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	fn func(ctx context.Context, db bun.IDB) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	var result results.OperationResult[S, F]
	err := s.retryFor(operationName).Do(ctx, func(ctx context.Context) error {
		if s.db == nil {
			var opErr error
			result, opErr = fn(ctx, nil)
			return opErr
		}
		return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
			var txErr error
			result, txErr = fn(ctx, tx)
			return txErr
		})
	})
	return result, err
}

// runRead runs fn outside a transaction with the same retry policy.
func runRead[S any, F any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	fn func(ctx context.Context) (results.OperationResult[S, F], error),
) (results.OperationResult[S, F], error) {
	var result results.OperationResult[S, F]
	err := s.retryFor(operationName).Do(ctx, func(ctx context.Context) error {
		var opErr error
		result, opErr = fn(ctx)
		return opErr
	})
	return result, err
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

// readQuery runs a plain read with telemetry and retry; every error is an infrastructure error.
func readQuery[S any](
	s *StatsService,
	ctx context.Context,
	operationName string,
	subject string,
	fn func(ctx context.Context) (S, error),
) (S, error) {
	result, err := withTelemetry(s, ctx, operationName, subject, func(ctx context.Context) (results.OperationResult[S, error], error) {
		return runRead(s, ctx, operationName, func(ctx context.Context) (results.OperationResult[S, error], error) {
			value, err := fn(ctx)
			if err != nil {
				return results.OperationResult[S, error]{}, err
			}
			return results.SuccessResult[S, error](value), nil
		})
	})
	return unwrap(result, err)
}
