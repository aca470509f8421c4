package statsservice

import (
	"context"
	"sync"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Stats Repo
// ------------------------

// FakeStatsRepository provides a programmable stub for the statsdb.Repository interface.
type FakeStatsRepository struct {
	mu    sync.Mutex
	trace []string

	GameExistsFunc           func(ctx context.Context, db bun.IDB, date, teamA, teamB string) (bool, error)
	UpsertPlayerStatsFunc    func(ctx context.Context, db bun.IDB, stats []*statsdb.PlayerStat) error
	UpsertTeamStatsFunc      func(ctx context.Context, db bun.IDB, stats []*statsdb.TeamStat) error
	UpsertPlayersFunc        func(ctx context.Context, db bun.IDB, players []*statsdb.Player) error
	CreateLeagueFunc         func(ctx context.Context, db bun.IDB, name string) (*statsdb.League, error)
	ListLeaguesFunc          func(ctx context.Context, db bun.IDB) ([]statsdb.League, error)
	GetLeagueFunc            func(ctx context.Context, db bun.IDB, leagueID int64) (*statsdb.League, error)
	GetGameLeagueIDsFunc     func(ctx context.Context, db bun.IDB, date, teamA, teamB string) ([]int64, error)
	AssignGameToLeagueFunc   func(ctx context.Context, db bun.IDB, assignment *statsdb.GameLeague) error
	GetPlayerStatLinesFunc   func(ctx context.Context, db bun.IDB, player, team string) ([]statsdb.PlayerStat, error)
	GetLeaguePlayerStatsFunc func(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.PlayerStat, error)
	GetLeagueGameResultsFunc func(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.GameResult, error)
	GetLeagueGamesFunc       func(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.LeagueGame, error)
	GetGamePlayersFunc       func(ctx context.Context, db bun.IDB, date, team string) ([]statsdb.PlayerStat, error)
	GetLeaguePlayersFunc     func(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.PlayerRef, error)
	GetPlayerTeamsFunc       func(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]string, error)
	GetPlayerGamesFunc       func(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]statsdb.PlayerGame, error)
	GetPlayerGameStatFunc    func(ctx context.Context, db bun.IDB, player, date string) (*statsdb.PlayerStat, error)
}

// NewFakeStatsRepository initializes a new FakeStatsRepository with an empty trace.
func NewFakeStatsRepository() *FakeStatsRepository {
	return &FakeStatsRepository{trace: []string{}}
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeStatsRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeStatsRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

func (f *FakeStatsRepository) GameExists(ctx context.Context, db bun.IDB, date, teamA, teamB string) (bool, error) {
	f.record("GameExists")
	if f.GameExistsFunc != nil {
		return f.GameExistsFunc(ctx, db, date, teamA, teamB)
	}
	return false, nil
}

func (f *FakeStatsRepository) UpsertPlayerStats(ctx context.Context, db bun.IDB, stats []*statsdb.PlayerStat) error {
	f.record("UpsertPlayerStats")
	if f.UpsertPlayerStatsFunc != nil {
		return f.UpsertPlayerStatsFunc(ctx, db, stats)
	}
	return nil
}

func (f *FakeStatsRepository) UpsertTeamStats(ctx context.Context, db bun.IDB, stats []*statsdb.TeamStat) error {
	f.record("UpsertTeamStats")
	if f.UpsertTeamStatsFunc != nil {
		return f.UpsertTeamStatsFunc(ctx, db, stats)
	}
	return nil
}

func (f *FakeStatsRepository) UpsertPlayers(ctx context.Context, db bun.IDB, players []*statsdb.Player) error {
	f.record("UpsertPlayers")
	if f.UpsertPlayersFunc != nil {
		return f.UpsertPlayersFunc(ctx, db, players)
	}
	return nil
}

func (f *FakeStatsRepository) CreateLeague(ctx context.Context, db bun.IDB, name string) (*statsdb.League, error) {
	f.record("CreateLeague")
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, db, name)
	}
	return &statsdb.League{LeagueID: 1, LeagueName: name}, nil
}

func (f *FakeStatsRepository) ListLeagues(ctx context.Context, db bun.IDB) ([]statsdb.League, error) {
	f.record("ListLeagues")
	if f.ListLeaguesFunc != nil {
		return f.ListLeaguesFunc(ctx, db)
	}
	return []statsdb.League{}, nil
}

func (f *FakeStatsRepository) GetLeague(ctx context.Context, db bun.IDB, leagueID int64) (*statsdb.League, error) {
	f.record("GetLeague")
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, db, leagueID)
	}
	return &statsdb.League{LeagueID: leagueID}, nil
}

func (f *FakeStatsRepository) GetGameLeagueIDs(ctx context.Context, db bun.IDB, date, teamA, teamB string) ([]int64, error) {
	f.record("GetGameLeagueIDs")
	if f.GetGameLeagueIDsFunc != nil {
		return f.GetGameLeagueIDsFunc(ctx, db, date, teamA, teamB)
	}
	return nil, nil
}

func (f *FakeStatsRepository) AssignGameToLeague(ctx context.Context, db bun.IDB, assignment *statsdb.GameLeague) error {
	f.record("AssignGameToLeague")
	if f.AssignGameToLeagueFunc != nil {
		return f.AssignGameToLeagueFunc(ctx, db, assignment)
	}
	return nil
}

func (f *FakeStatsRepository) GetPlayerStatLines(ctx context.Context, db bun.IDB, player, team string) ([]statsdb.PlayerStat, error) {
	f.record("GetPlayerStatLines")
	if f.GetPlayerStatLinesFunc != nil {
		return f.GetPlayerStatLinesFunc(ctx, db, player, team)
	}
	return []statsdb.PlayerStat{}, nil
}

func (f *FakeStatsRepository) GetLeaguePlayerStats(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.PlayerStat, error) {
	f.record("GetLeaguePlayerStats")
	if f.GetLeaguePlayerStatsFunc != nil {
		return f.GetLeaguePlayerStatsFunc(ctx, db, leagueID)
	}
	return []statsdb.PlayerStat{}, nil
}

func (f *FakeStatsRepository) GetLeagueGameResults(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.GameResult, error) {
	f.record("GetLeagueGameResults")
	if f.GetLeagueGameResultsFunc != nil {
		return f.GetLeagueGameResultsFunc(ctx, db, leagueID)
	}
	return []statsdb.GameResult{}, nil
}

func (f *FakeStatsRepository) GetLeagueGames(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.LeagueGame, error) {
	f.record("GetLeagueGames")
	if f.GetLeagueGamesFunc != nil {
		return f.GetLeagueGamesFunc(ctx, db, leagueID)
	}
	return []statsdb.LeagueGame{}, nil
}

func (f *FakeStatsRepository) GetGamePlayers(ctx context.Context, db bun.IDB, date, team string) ([]statsdb.PlayerStat, error) {
	f.record("GetGamePlayers")
	if f.GetGamePlayersFunc != nil {
		return f.GetGamePlayersFunc(ctx, db, date, team)
	}
	return []statsdb.PlayerStat{}, nil
}

func (f *FakeStatsRepository) GetLeaguePlayers(ctx context.Context, db bun.IDB, leagueID int64) ([]statsdb.PlayerRef, error) {
	f.record("GetLeaguePlayers")
	if f.GetLeaguePlayersFunc != nil {
		return f.GetLeaguePlayersFunc(ctx, db, leagueID)
	}
	return []statsdb.PlayerRef{}, nil
}

func (f *FakeStatsRepository) GetPlayerTeams(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]string, error) {
	f.record("GetPlayerTeams")
	if f.GetPlayerTeamsFunc != nil {
		return f.GetPlayerTeamsFunc(ctx, db, player, leagueID)
	}
	return []string{}, nil
}

func (f *FakeStatsRepository) GetPlayerGames(ctx context.Context, db bun.IDB, player string, leagueID int64) ([]statsdb.PlayerGame, error) {
	f.record("GetPlayerGames")
	if f.GetPlayerGamesFunc != nil {
		return f.GetPlayerGamesFunc(ctx, db, player, leagueID)
	}
	return []statsdb.PlayerGame{}, nil
}

func (f *FakeStatsRepository) GetPlayerGameStat(ctx context.Context, db bun.IDB, player, date string) (*statsdb.PlayerStat, error) {
	f.record("GetPlayerGameStat")
	if f.GetPlayerGameStatFunc != nil {
		return f.GetPlayerGameStatFunc(ctx, db, player, date)
	}
	return nil, statsdb.ErrNotFound
}

// Ensure the fake actually satisfies the interface
var _ statsdb.Repository = (*FakeStatsRepository)(nil)

// ------------------------
// Fake Ranking Cache
// ------------------------

type memoryCache struct {
	mu          sync.Mutex
	entries     map[int64]map[string][]byte
	generations map[int64]int64
	invalidated []int64
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: map[int64]map[string][]byte{}, generations: map[int64]int64{}}
}

func (c *memoryCache) Generation(_ context.Context, leagueID int64) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[leagueID], nil
}

func (c *memoryCache) Get(_ context.Context, leagueID int64, field string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[leagueID][field]
	return v, ok, nil
}

func (c *memoryCache) Set(_ context.Context, leagueID, gen int64, field string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[leagueID] != gen {
		return nil
	}
	if c.entries[leagueID] == nil {
		c.entries[leagueID] = map[string][]byte{}
	}
	c.entries[leagueID][field] = value
	return nil
}

func (c *memoryCache) Invalidate(_ context.Context, leagueID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, leagueID)
	c.generations[leagueID]++
	c.invalidated = append(c.invalidated, leagueID)
	return nil
}

var _ RankingCache = (*memoryCache)(nil)
