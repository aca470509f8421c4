package statshandlers

import (
	"context"
	"io"
	"sync"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// FakeService is a programmable stub for statsservice.Service.
type FakeService struct {
	mu    sync.Mutex
	trace []string

	GameExistsFunc             func(ctx context.Context, date, teamA, teamB string) (bool, error)
	SaveGameFunc               func(ctx context.Context, game statsdb.GameRecord) (bool, error)
	AssignGameToLeagueFunc     func(ctx context.Context, assignment statsservice.GameAssignment) error
	GetGameLeagueIDsFunc       func(ctx context.Context, date, teamA, teamB string) ([]int64, error)
	CreateLeagueFunc           func(ctx context.Context, name string) (statsdb.League, bool, error)
	ListLeaguesFunc            func(ctx context.Context) ([]statsdb.League, error)
	GetLeagueFunc              func(ctx context.Context, leagueID int64) (statsdb.League, error)
	GetPlayerCareerStatsFunc   func(ctx context.Context, player, team string) (*statsservice.CareerStats, error)
	GetPlayerRankingsFunc      func(ctx context.Context, leagueID int64, key statsservice.StatKey) ([]statsservice.PlayerRanking, error)
	GetTeamRankingsFunc        func(ctx context.Context, leagueID int64) ([]statsservice.TeamRanking, error)
	GetLeagueGamesFunc         func(ctx context.Context, leagueID int64) ([]statsdb.LeagueGame, error)
	GetLeaguePlayersFunc       func(ctx context.Context, leagueID int64) ([]statsdb.PlayerRef, error)
	GetPlayerTeamsFunc         func(ctx context.Context, player string, leagueID int64) ([]string, error)
	GetPlayerGamesFunc         func(ctx context.Context, player string, leagueID int64) ([]statsdb.PlayerGame, error)
	GetPlayerGameStatFunc      func(ctx context.Context, player, date string) (*statsdb.PlayerStat, error)
	GetPlayerTrendFunc         func(ctx context.Context, player, team string, leagueID int64, key statsservice.StatKey) ([]statsservice.TrendPoint, error)
	RenderPlayerTrendChartFunc func(ctx context.Context, w io.Writer, player, team string, leagueID int64, key statsservice.StatKey) error
}

// NewFakeService returns a fake whose GetLeague resolves every id.
func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeService) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) GameExists(ctx context.Context, date, teamA, teamB string) (bool, error) {
	f.record("GameExists")
	if f.GameExistsFunc != nil {
		return f.GameExistsFunc(ctx, date, teamA, teamB)
	}
	return false, nil
}

func (f *FakeService) SaveGame(ctx context.Context, game statsdb.GameRecord) (bool, error) {
	f.record("SaveGame")
	if f.SaveGameFunc != nil {
		return f.SaveGameFunc(ctx, game)
	}
	return true, nil
}

func (f *FakeService) AssignGameToLeague(ctx context.Context, assignment statsservice.GameAssignment) error {
	f.record("AssignGameToLeague")
	if f.AssignGameToLeagueFunc != nil {
		return f.AssignGameToLeagueFunc(ctx, assignment)
	}
	return nil
}

func (f *FakeService) GetGameLeagueIDs(ctx context.Context, date, teamA, teamB string) ([]int64, error) {
	f.record("GetGameLeagueIDs")
	if f.GetGameLeagueIDsFunc != nil {
		return f.GetGameLeagueIDsFunc(ctx, date, teamA, teamB)
	}
	return nil, nil
}

func (f *FakeService) CreateLeague(ctx context.Context, name string) (statsdb.League, bool, error) {
	f.record("CreateLeague")
	if f.CreateLeagueFunc != nil {
		return f.CreateLeagueFunc(ctx, name)
	}
	return statsdb.League{LeagueID: 1, LeagueName: name}, true, nil
}

func (f *FakeService) ListLeagues(ctx context.Context) ([]statsdb.League, error) {
	f.record("ListLeagues")
	if f.ListLeaguesFunc != nil {
		return f.ListLeaguesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) GetLeague(ctx context.Context, leagueID int64) (statsdb.League, error) {
	f.record("GetLeague")
	if f.GetLeagueFunc != nil {
		return f.GetLeagueFunc(ctx, leagueID)
	}
	return statsdb.League{LeagueID: leagueID, LeagueName: "Winter League"}, nil
}

func (f *FakeService) GetPlayerCareerStats(ctx context.Context, player, team string) (*statsservice.CareerStats, error) {
	f.record("GetPlayerCareerStats")
	if f.GetPlayerCareerStatsFunc != nil {
		return f.GetPlayerCareerStatsFunc(ctx, player, team)
	}
	return nil, nil
}

func (f *FakeService) GetPlayerRankings(ctx context.Context, leagueID int64, key statsservice.StatKey) ([]statsservice.PlayerRanking, error) {
	f.record("GetPlayerRankings")
	if f.GetPlayerRankingsFunc != nil {
		return f.GetPlayerRankingsFunc(ctx, leagueID, key)
	}
	return nil, nil
}

func (f *FakeService) GetTeamRankings(ctx context.Context, leagueID int64) ([]statsservice.TeamRanking, error) {
	f.record("GetTeamRankings")
	if f.GetTeamRankingsFunc != nil {
		return f.GetTeamRankingsFunc(ctx, leagueID)
	}
	return nil, nil
}

func (f *FakeService) GetLeagueGames(ctx context.Context, leagueID int64) ([]statsdb.LeagueGame, error) {
	f.record("GetLeagueGames")
	if f.GetLeagueGamesFunc != nil {
		return f.GetLeagueGamesFunc(ctx, leagueID)
	}
	return nil, nil
}

func (f *FakeService) GetLeaguePlayers(ctx context.Context, leagueID int64) ([]statsdb.PlayerRef, error) {
	f.record("GetLeaguePlayers")
	if f.GetLeaguePlayersFunc != nil {
		return f.GetLeaguePlayersFunc(ctx, leagueID)
	}
	return nil, nil
}

func (f *FakeService) GetPlayerTeams(ctx context.Context, player string, leagueID int64) ([]string, error) {
	f.record("GetPlayerTeams")
	if f.GetPlayerTeamsFunc != nil {
		return f.GetPlayerTeamsFunc(ctx, player, leagueID)
	}
	return nil, nil
}

func (f *FakeService) GetPlayerGames(ctx context.Context, player string, leagueID int64) ([]statsdb.PlayerGame, error) {
	f.record("GetPlayerGames")
	if f.GetPlayerGamesFunc != nil {
		return f.GetPlayerGamesFunc(ctx, player, leagueID)
	}
	return nil, nil
}

func (f *FakeService) GetPlayerGameStat(ctx context.Context, player, date string) (*statsdb.PlayerStat, error) {
	f.record("GetPlayerGameStat")
	if f.GetPlayerGameStatFunc != nil {
		return f.GetPlayerGameStatFunc(ctx, player, date)
	}
	return nil, nil
}

func (f *FakeService) GetPlayerTrend(ctx context.Context, player, team string, leagueID int64, key statsservice.StatKey) ([]statsservice.TrendPoint, error) {
	f.record("GetPlayerTrend")
	if f.GetPlayerTrendFunc != nil {
		return f.GetPlayerTrendFunc(ctx, player, team, leagueID, key)
	}
	return nil, nil
}

func (f *FakeService) RenderPlayerTrendChart(ctx context.Context, w io.Writer, player, team string, leagueID int64, key statsservice.StatKey) error {
	f.record("RenderPlayerTrendChart")
	if f.RenderPlayerTrendChartFunc != nil {
		return f.RenderPlayerTrendChartFunc(ctx, w, player, team, leagueID, key)
	}
	return nil
}

var _ statsservice.Service = (*FakeService)(nil)
