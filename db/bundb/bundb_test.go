package bundb_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/hoopstats/config"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	dsn := bundb.DSN(config.DatabaseConfig{
		Path:        "/tmp/stats.db",
		BusyTimeout: 1500 * time.Millisecond,
		JournalMode: "wal",
	})

	assert.True(t, strings.HasPrefix(dsn, "file:/tmp/stats.db?"))
	assert.Contains(t, dsn, "busy_timeout%281500%29")
	assert.Contains(t, dsn, "journal_mode%28WAL%29")
	assert.Contains(t, dsn, "foreign_keys%281%29")
	assert.Contains(t, dsn, "_txlock=immediate")
}

func TestOpen_AppliesPragmas(t *testing.T) {
	ctx := context.Background()
	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "nested", "stats.db"),
		BusyTimeout: 2 * time.Second,
		JournalMode: "WAL",
	}
	db, err := bundb.Open(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", strings.ToLower(mode))

	var timeout int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 2000, timeout)

	var fk int
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestIsUniqueViolation(t *testing.T) {
	ctx := context.Background()
	db, err := bundb.Open(ctx, config.DatabaseConfig{Path: filepath.Join(t.TempDir(), "u.db"), BusyTimeout: time.Second})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, "CREATE TABLE t (name TEXT UNIQUE)")
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, "INSERT INTO t (name) VALUES ('a')")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "INSERT INTO t (name) VALUES ('a')")
	require.Error(t, err)
	assert.True(t, bundb.IsUniqueViolation(err))
	assert.False(t, bundb.IsLockError(err))

	assert.False(t, bundb.IsUniqueViolation(nil))
	assert.False(t, bundb.IsUniqueViolation(errors.New("no such table: t")))
}

func TestIsLockError(t *testing.T) {
	assert.True(t, bundb.IsLockError(errors.New("database is locked (5) (SQLITE_BUSY)")))
	assert.True(t, bundb.IsLockError(fmt.Errorf("wrap: %w", errors.New("database table is locked"))))
	assert.False(t, bundb.IsLockError(errors.New("constraint failed")))
	assert.False(t, bundb.IsLockError(nil))
}

func TestRetryPolicy_Do(t *testing.T) {
	errLocked := errors.New("database is locked")
	errOther := errors.New("syntax error")

	tests := []struct {
		name        string
		failures    []error
		wantErr     error
		wantCalls   int
		wantRetries []int
	}{
		{name: "first try", wantCalls: 1},
		{
			name:        "succeeds after two locks",
			failures:    []error{errLocked, errLocked},
			wantCalls:   3,
			wantRetries: []int{1, 2},
		},
		{
			name:      "non-lock error is not retried",
			failures:  []error{errOther},
			wantErr:   errOther,
			wantCalls: 1,
		},
		{
			name:        "exhaustion",
			failures:    []error{errLocked, errLocked, errLocked, errLocked, errLocked},
			wantErr:     bundb.ErrStorageLocked,
			wantCalls:   5,
			wantRetries: []int{1, 2, 3, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var retries []int
			policy := bundb.RetryPolicy{
				MaxAttempts: 5,
				Backoff:     time.Millisecond,
				OnRetry:     func(_ context.Context, attempt int, _ error) { retries = append(retries, attempt) },
			}

			calls := 0
			err := policy.Do(context.Background(), func(context.Context) error {
				calls++
				if calls <= len(tt.failures) {
					return tt.failures[calls-1]
				}
				return nil
			})

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
			assert.Equal(t, tt.wantRetries, retries)
		})
	}
}

func TestRetryPolicy_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := bundb.RetryPolicy{MaxAttempts: 5, Backoff: time.Hour}

	calls := 0
	err := policy.Do(ctx, func(context.Context) error {
		calls++
		cancel()
		return errors.New("database is locked")
	})

	require.ErrorIs(t, err, bundb.ErrStorageLocked)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestNewRetryPolicy(t *testing.T) {
	p := bundb.NewRetryPolicy(config.RetryConfig{MaxAttempts: 5, Backoff: 2 * time.Second})
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, 2*time.Second, p.Backoff)
	assert.Nil(t, p.OnRetry)
}
