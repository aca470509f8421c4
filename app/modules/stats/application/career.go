package statsservice

import (
	"context"
	"strconv"
	"strings"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
)

// GetPlayerCareerStats aggregates every stored line of a player, optionally limited to one team.
// It returns nil when the player has no lines.
func (s *StatsService) GetPlayerCareerStats(ctx context.Context, player, team string) (*CareerStats, error) {
	return readQuery(s, ctx, "GetPlayerCareerStats", player, func(ctx context.Context) (*CareerStats, error) {
		lines, err := s.repo.GetPlayerStatLines(ctx, nil, player, team)
		if err != nil {
			return nil, err
		}
		if len(lines) == 0 {
			return nil, nil
		}
		stats := aggregateLines(player, team, lines)
		return &stats, nil
	})
}

// aggregateLines sums lines and derives per-game averages over distinct game dates.
func aggregateLines(player, team string, lines []statsdb.PlayerStat) CareerStats {
	c := CareerStats{Player: player, Team: team}
	games := make(map[string]struct{}, len(lines))
	for _, l := range lines {
		games[l.GameDate] = struct{}{}
		c.TotalPoints += l.Points
		c.TotalRebounds += l.Rebounds
		c.TotalOffRebounds += l.OffensiveRebounds
		c.TotalDefRebounds += l.DefensiveRebounds
		c.TotalAssists += l.Assists
		c.TotalSteals += l.Steals
		c.TotalBlocks += l.Blocks
		c.TotalTurnovers += l.Turnovers
		c.TotalFouls += l.Fouls
		c.TotalEfficiency += l.Efficiency
		c.TotalMinutes += parseMinutes(l.Minutes)
		c.TwoPointsMade += l.TwoPointsMade
		c.TwoPointsAttempt += l.TwoPointsAttempt
		c.ThreePointsMade += l.ThreePointsMade
		c.ThreePointsAttempt += l.ThreePointsAttempt
		c.FieldGoalsMade += l.FieldGoalsMade
		c.FieldGoalsAttempt += l.FieldGoalsAttempt
		c.FreeThrowsMade += l.FreeThrowsMade
		c.FreeThrowsAttempt += l.FreeThrowsAttempt
	}
	c.GamesPlayed = len(games)

	n := float64(c.GamesPlayed)
	if n > 0 {
		c.AvgPoints = float64(c.TotalPoints) / n
		c.AvgRebounds = float64(c.TotalRebounds) / n
		c.AvgAssists = float64(c.TotalAssists) / n
		c.AvgSteals = float64(c.TotalSteals) / n
		c.AvgBlocks = float64(c.TotalBlocks) / n
		c.AvgTurnovers = float64(c.TotalTurnovers) / n
		c.AvgEfficiency = c.TotalEfficiency / n
		c.AvgMinutes = c.TotalMinutes / n
	}

	c.FieldGoalPct = Percentage(c.FieldGoalsMade, c.FieldGoalsAttempt)
	c.TwoPointPct = Percentage(c.TwoPointsMade, c.TwoPointsAttempt)
	c.ThreePointPct = Percentage(c.ThreePointsMade, c.ThreePointsAttempt)
	c.FreeThrowPct = Percentage(c.FreeThrowsMade, c.FreeThrowsAttempt)
	return c
}

// Percentage returns made/attempt as a percentage, or 0 when nothing was attempted.
func Percentage(made, attempt int) float64 {
	if attempt <= 0 {
		return 0
	}
	return float64(made) / float64(attempt) * 100
}

// parseMinutes reads "MM:SS" or plain minute values. Anything else counts as 0.
func parseMinutes(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	if mm, ss, ok := strings.Cut(raw, ":"); ok {
		m, errM := strconv.Atoi(strings.TrimSpace(mm))
		sec, errS := strconv.Atoi(strings.TrimSpace(ss))
		if errM != nil || errS != nil || m < 0 || sec < 0 {
			return 0
		}
		return float64(m) + float64(sec)/60
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// statTotal returns the aggregate total behind key.
func statTotal(c CareerStats, key StatKey) float64 {
	switch key {
	case StatPoints:
		return float64(c.TotalPoints)
	case StatRebounds:
		return float64(c.TotalRebounds)
	case StatAssists:
		return float64(c.TotalAssists)
	case StatSteals:
		return float64(c.TotalSteals)
	case StatBlocks:
		return float64(c.TotalBlocks)
	case StatThreePoints:
		return float64(c.ThreePointsMade)
	case StatFreeThrows:
		return float64(c.FreeThrowsMade)
	case StatEfficiency:
		return c.TotalEfficiency
	case StatTurnovers:
		return float64(c.TotalTurnovers)
	case StatMinutes:
		return c.TotalMinutes
	}
	return 0
}

// lineValue returns the value of key in a single game line.
func lineValue(l statsdb.PlayerStat, key StatKey) float64 {
	return statTotal(aggregateLines(l.Player, l.Team, []statsdb.PlayerStat{l}), key)
}
