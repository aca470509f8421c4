package ingestservice

import (
	"context"
	"sync"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// FakeGameStore provides a programmable stub for the GameStore interface.
type FakeGameStore struct {
	mu    sync.Mutex
	trace []string
	saved []statsdb.GameRecord

	GameExistsFunc         func(ctx context.Context, date, teamA, teamB string) (bool, error)
	SaveGameFunc           func(ctx context.Context, game statsdb.GameRecord) (bool, error)
	AssignGameToLeagueFunc func(ctx context.Context, assignment statsservice.GameAssignment) error
	GetGameLeagueIDsFunc   func(ctx context.Context, date, teamA, teamB string) ([]int64, error)
	GetLeagueFunc          func(ctx context.Context, leagueID int64) (statsdb.League, error)
}

func NewFakeGameStore() *FakeGameStore {
	return &FakeGameStore{trace: []string{}}
}

func (f *FakeGameStore) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGameStore) Saved() []statsdb.GameRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]statsdb.GameRecord(nil), f.saved...)
}

func (f *FakeGameStore) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeGameStore) GameExists(ctx context.Context, date, teamA, teamB string) (bool, error) {
	f.record("GameExists")
	if f.GameExistsFunc != nil {
		return f.GameExistsFunc(ctx, date, teamA, teamB)
	}
	return false, nil
}

func (f *FakeGameStore) SaveGame(ctx context.Context, game statsdb.GameRecord) (bool, error) {
	f.record("SaveGame")
	f.mu.Lock()
	f.saved = append(f.saved, game)
	f.mu.Unlock()
	if f.SaveGameFunc != nil {
		return f.SaveGameFunc(ctx, game)
	}
	return true, nil
}

func (f *FakeGameStore) AssignGameToLeague(ctx context.Context, assignment statsservice.GameAssignment) error {
	f.record("AssignGameToLeague")
	if f.AssignGameToLeagueFunc != nil {
		return f.AssignGameToLeagueFunc(ctx, assignment)
	}
	return nil
}

func (f *FakeGameStore) GetGameLeagueIDs(ctx context.Context, date, teamA, teamB string) ([]int64, error) {
	f.record("GetGameLeagueIDs")
	if f.GetGameLeagueIDsFunc != nil {
		return f.GetGameLeagueIDsFunc(ctx, date, teamA, teamB)
	}
	return nil, nil
}

func (f *FakeGameStore) GetLeague(ctx context.Context, leagueID int64) (statsdb.League, error) {
	f.record("GetLeague")
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, leagueID)
	}
	return statsdb.League{LeagueID: leagueID, LeagueName: "Test League"}, nil
}

var _ GameStore = (*FakeGameStore)(nil)
