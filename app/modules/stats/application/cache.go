package statsservice

import (
	"context"
	"encoding/json"
	"log/slog"
)

// RankingCache stores serialized rankings per league. Invalidate drops every entry of a league and
// advances its generation; Set is ignored unless the league is still at the generation read
// before the value was computed.
type RankingCache interface {
	Get(ctx context.Context, leagueID int64, field string) ([]byte, bool, error)
	Generation(ctx context.Context, leagueID int64) (int64, error)
	Set(ctx context.Context, leagueID, gen int64, field string, value []byte) error
	Invalidate(ctx context.Context, leagueID int64) error
}

// NoopCache never stores anything.
type NoopCache struct{}

func (NoopCache) Get(context.Context, int64, string) ([]byte, bool, error) { return nil, false, nil }
func (NoopCache) Generation(context.Context, int64) (int64, error)         { return 0, nil }
func (NoopCache) Set(context.Context, int64, int64, string, []byte) error  { return nil }
func (NoopCache) Invalidate(context.Context, int64) error                  { return nil }

// cached returns the cached value of field, or computes, stores and returns it.
// The generation is read before computing, so a value computed across an invalidation is not stored.
// Cache errors are logged and never fail the read.
func cached[T any](s *StatsService, ctx context.Context, leagueID int64, field string, compute func() (T, error)) (T, error) {
	if raw, ok, err := s.cache.Get(ctx, leagueID, field); err != nil {
		s.logger.WarnContext(ctx, "Ranking cache read failed", slog.Int64("league_id", leagueID), slog.Any("error", err))
	} else if ok {
		var value T
		if err := json.Unmarshal(raw, &value); err == nil {
			return value, nil
		}
	}

	gen, genErr := s.cache.Generation(ctx, leagueID)
	if genErr != nil {
		s.logger.WarnContext(ctx, "Ranking cache read failed", slog.Int64("league_id", leagueID), slog.Any("error", genErr))
	}

	value, err := compute()
	if err != nil || genErr != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := s.cache.Set(ctx, leagueID, gen, field, raw); err != nil {
			s.logger.WarnContext(ctx, "Ranking cache write failed", slog.Int64("league_id", leagueID), slog.Any("error", err))
		}
	}
	return value, nil
}
