package statsmigrations

import (
	"context"
	"fmt"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating box score tables...")

		models := []interface{}{
			(*statsdb.PlayerStat)(nil),
			(*statsdb.TeamStat)(nil),
			(*statsdb.League)(nil),
			(*statsdb.Player)(nil),
		}
		for _, model := range models {
			if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
				return err
			}
		}

		_, err := db.NewCreateTable().
			Model((*statsdb.GameLeague)(nil)).
			IfNotExists().
			ForeignKey(`("league_id") REFERENCES "leagues" ("league_id") ON DELETE CASCADE`).
			Exec(ctx)
		if err != nil {
			return err
		}

		indexes := []string{
			"CREATE INDEX IF NOT EXISTS idx_player_stats_player ON player_stats (player, team)",
			"CREATE INDEX IF NOT EXISTS idx_game_league_league_id ON game_league (league_id)",
		}
		for _, stmt := range indexes {
			if _, err := db.NewRaw(stmt).Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Box score tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping box score tables...")

		models := []interface{}{
			(*statsdb.GameLeague)(nil),
			(*statsdb.Player)(nil),
			(*statsdb.League)(nil),
			(*statsdb.TeamStat)(nil),
			(*statsdb.PlayerStat)(nil),
		}
		for _, model := range models {
			if _, err := db.NewDropTable().Model(model).IfExists().Exec(ctx); err != nil {
				return err
			}
		}

		fmt.Println("Box score tables dropped successfully!")
		return nil
	})
}
