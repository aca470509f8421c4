package testutils

import (
	"time"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds synthetic box scores for tests.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a new test data generator with optional seed
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}

	return &TestDataGenerator{
		faker: gofakeit.New(uint64(s)),
		seed:  s,
	}
}

// Seed returns the seed the generator was created with.
func (g *TestDataGenerator) Seed() int64 { return g.seed }

// GeneratePlayerLines creates count player lines for team with distinct names and jersey numbers.
func (g *TestDataGenerator) GeneratePlayerLines(date, team string, count int) []*statsdb.PlayerStat {
	lines := make([]*statsdb.PlayerStat, 0, count)
	seen := make(map[string]bool, count)
	for len(lines) < count {
		name := g.faker.Name()
		if seen[name] {
			continue
		}
		seen[name] = true

		twoMade := g.faker.Number(0, 8)
		threeMade := g.faker.Number(0, 4)
		ftMade := g.faker.Number(0, 6)
		twoAtt := twoMade + g.faker.Number(0, 6)
		threeAtt := threeMade + g.faker.Number(0, 5)
		ftAtt := ftMade + g.faker.Number(0, 3)
		oreb := g.faker.Number(0, 4)
		dreb := g.faker.Number(0, 8)

		lines = append(lines, &statsdb.PlayerStat{
			GameDate:           date,
			Team:               team,
			Player:             name,
			PlayerNumber:       len(lines) + 1,
			Minutes:            g.faker.Numerify("##:##"),
			Points:             2*twoMade + 3*threeMade + ftMade,
			TwoPointsMade:      twoMade,
			TwoPointsAttempt:   twoAtt,
			ThreePointsMade:    threeMade,
			ThreePointsAttempt: threeAtt,
			FieldGoalsMade:     twoMade + threeMade,
			FieldGoalsAttempt:  twoAtt + threeAtt,
			FreeThrowsMade:     ftMade,
			FreeThrowsAttempt:  ftAtt,
			OffensiveRebounds:  oreb,
			DefensiveRebounds:  dreb,
			Rebounds:           oreb + dreb,
			Assists:            g.faker.Number(0, 10),
			Turnovers:          g.faker.Number(0, 5),
			Steals:             g.faker.Number(0, 4),
			Blocks:             g.faker.Number(0, 3),
			Fouls:              g.faker.Number(0, 5),
			PlusMinus:          g.faker.Number(-15, 15),
			Efficiency:         float64(g.faker.Number(-5, 30)),
		})
	}
	return lines
}

// TeamTotal sums player lines into a team total scored against opponent.
func TeamTotal(date, team, opponent string, lines []*statsdb.PlayerStat) *statsdb.TeamStat {
	total := &statsdb.TeamStat{GameDate: date, Team: team, Opponent: opponent}
	for _, l := range lines {
		total.TotalScore += l.Points
		total.TwoPointsMade += l.TwoPointsMade
		total.TwoPointsAttempt += l.TwoPointsAttempt
		total.ThreePointsMade += l.ThreePointsMade
		total.ThreePointsAttempt += l.ThreePointsAttempt
		total.FieldGoalsMade += l.FieldGoalsMade
		total.FieldGoalsAttempt += l.FieldGoalsAttempt
		total.FreeThrowsMade += l.FreeThrowsMade
		total.FreeThrowsAttempt += l.FreeThrowsAttempt
		total.OffensiveRebounds += l.OffensiveRebounds
		total.DefensiveRebounds += l.DefensiveRebounds
		total.Rebounds += l.Rebounds
		total.Assists += l.Assists
		total.Steals += l.Steals
		total.Blocks += l.Blocks
		total.Turnovers += l.Turnovers
		total.Fouls += l.Fouls
	}
	return total
}

// GenerateGame builds a full game record with playersPerTeam lines on each side.
func (g *TestDataGenerator) GenerateGame(date, teamA, teamB string, playersPerTeam int) statsdb.GameRecord {
	aLines := g.GeneratePlayerLines(date, teamA, playersPerTeam)
	bLines := g.GeneratePlayerLines(date, teamB, playersPerTeam)
	return statsdb.GameRecord{
		GameDate:     date,
		TeamA:        teamA,
		TeamB:        teamB,
		TeamAPlayers: aLines,
		TeamATotal:   TeamTotal(date, teamA, teamB, aLines),
		TeamBPlayers: bLines,
		TeamBTotal:   TeamTotal(date, teamB, teamA, bLines),
	}
}

// FixedScoreGame builds a game whose team totals carry the given final scores.
func FixedScoreGame(date, teamA, teamB string, scoreA, scoreB int) statsdb.GameRecord {
	return statsdb.GameRecord{
		GameDate:   date,
		TeamA:      teamA,
		TeamB:      teamB,
		TeamATotal: &statsdb.TeamStat{GameDate: date, Team: teamA, Opponent: teamB, TotalScore: scoreA},
		TeamBTotal: &statsdb.TeamStat{GameDate: date, Team: teamB, Opponent: teamA, TotalScore: scoreB},
	}
}
