package metrics

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestPrometheusMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewPrometheus(reg)
	ctx := context.Background()

	m.RecordOperationAttempt(ctx, "SaveGame", "StatsService")
	m.RecordOperationAttempt(ctx, "SaveGame", "StatsService")
	m.RecordOperationSuccess(ctx, "SaveGame", "StatsService")
	m.RecordOperationFailure(ctx, "SaveGame", "StatsService")
	m.RecordOperationDuration(ctx, "SaveGame", "StatsService", 15*time.Millisecond)
	m.RecordLockRetry(ctx, "SaveGame")
	m.RecordGameIngested(ctx, "csv", "saved")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.attempts.WithLabelValues("StatsService", "SaveGame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.successes.WithLabelValues("StatsService", "SaveGame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("StatsService", "SaveGame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.retries.WithLabelValues("SaveGame")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ingested.WithLabelValues("csv", "saved")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

func TestNoop(t *testing.T) {
	m := NewNoop()
	assert.NotPanics(t, func() {
		m.RecordOperationAttempt(context.Background(), "op", "svc")
		m.RecordLockRetry(context.Background(), "op")
	})
}
