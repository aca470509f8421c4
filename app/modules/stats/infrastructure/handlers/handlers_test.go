package statshandlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	statsservice "github.com/Black-And-White-Club/hoopstats/app/modules/stats/application"
	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/db/bundb"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
)

func newTestRouter(svc *FakeService) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tracer := noop.NewTracerProvider().Tracer("test")
	h := NewStatsHandlers(svc, logger, tracer)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		RegisterRoutes(r, h)
	})
	return r
}

func serve(t *testing.T, svc *FakeService, method, target string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	rr := httptest.NewRecorder()
	newTestRouter(svc).ServeHTTP(rr, req)
	return rr
}

func TestStatsHandlers_Leagues(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		setup      func(*FakeService)
		wantStatus int
		verify     func(t *testing.T, rr *httptest.ResponseRecorder)
	}{
		{
			name:       "list with no leagues is an empty array",
			method:     http.MethodGet,
			target:     "/api/leagues",
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.JSONEq(t, `[]`, rr.Body.String())
			},
		},
		{
			name:   "create returns the new league",
			method: http.MethodPost,
			target: "/api/leagues",
			body:   `{"name":"Winter League"}`,
			setup: func(s *FakeService) {
				s.CreateLeagueFunc = func(ctx context.Context, name string) (statsdb.League, bool, error) {
					return statsdb.League{LeagueID: 7, LeagueName: name}, true, nil
				}
			},
			wantStatus: http.StatusCreated,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				var league statsdb.League
				require.NoError(t, json.NewDecoder(rr.Body).Decode(&league))
				assert.Equal(t, int64(7), league.LeagueID)
				assert.Equal(t, "Winter League", league.LeagueName)
			},
		},
		{
			name:   "duplicate name conflicts",
			method: http.MethodPost,
			target: "/api/leagues",
			body:   `{"name":"Winter League"}`,
			setup: func(s *FakeService) {
				s.CreateLeagueFunc = func(ctx context.Context, name string) (statsdb.League, bool, error) {
					return statsdb.League{}, false, nil
				}
			},
			wantStatus: http.StatusConflict,
		},
		{
			name:   "blank name is a bad request",
			method: http.MethodPost,
			target: "/api/leagues",
			body:   `{"name":"  "}`,
			setup: func(s *FakeService) {
				s.CreateLeagueFunc = func(ctx context.Context, name string) (statsdb.League, bool, error) {
					return statsdb.League{}, false, statsservice.ErrInvalidLeagueName
				}
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			method:     http.MethodPost,
			target:     "/api/leagues",
			body:       `{`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric league id",
			method:     http.MethodGet,
			target:     "/api/leagues/abc",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown league",
			method: http.MethodGet,
			target: "/api/leagues/99/games",
			setup: func(s *FakeService) {
				s.GetLeagueFunc = func(ctx context.Context, leagueID int64) (statsdb.League, error) {
					return statsdb.League{}, fmt.Errorf("league %d: %w", leagueID, statsservice.ErrLeagueNotFound)
				}
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "get league",
			method:     http.MethodGet,
			target:     "/api/leagues/3",
			wantStatus: http.StatusOK,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Contains(t, rr.Body.String(), `"league_id":3`)
			},
		},
		{
			name:   "assign game",
			method: http.MethodPut,
			target: "/api/leagues/4/games",
			body:   `{"game_date":"2025-03-09","team_a":"Lions","team_b":"Tigers"}`,
			setup: func(s *FakeService) {
				s.AssignGameToLeagueFunc = func(ctx context.Context, a statsservice.GameAssignment) error {
					if a != (statsservice.GameAssignment{GameDate: "2025-03-09", TeamA: "Lions", TeamB: "Tigers", LeagueID: 4}) {
						return fmt.Errorf("unexpected assignment %+v", a)
					}
					return nil
				}
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "assign unknown game",
			method: http.MethodPut,
			target: "/api/leagues/4/games",
			body:   `{"game_date":"2025-03-09","team_a":"Lions","team_b":"Owls"}`,
			setup: func(s *FakeService) {
				s.AssignGameToLeagueFunc = func(ctx context.Context, a statsservice.GameAssignment) error {
					return fmt.Errorf("%w: 2025-03-09 Lions vs Owls", statsservice.ErrGameNotFound)
				}
			},
			wantStatus: http.StatusNotFound,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.Contains(t, rr.Body.String(), "game not found")
			},
		},
		{
			name:       "assign without teams",
			method:     http.MethodPut,
			target:     "/api/leagues/4/games",
			body:       `{"game_date":"2025-03-09"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "locked storage is unavailable",
			method: http.MethodGet,
			target: "/api/leagues/1/rankings/teams",
			setup: func(s *FakeService) {
				s.GetTeamRankingsFunc = func(ctx context.Context, leagueID int64) ([]statsservice.TeamRanking, error) {
					return nil, bundb.ErrStorageLocked
				}
			},
			wantStatus: http.StatusServiceUnavailable,
		},
		{
			name:   "unexpected errors are hidden",
			method: http.MethodGet,
			target: "/api/leagues/1/games",
			setup: func(s *FakeService) {
				s.GetLeagueGamesFunc = func(ctx context.Context, leagueID int64) ([]statsdb.LeagueGame, error) {
					return nil, fmt.Errorf("disk I/O error")
				}
			},
			wantStatus: http.StatusInternalServerError,
			verify: func(t *testing.T, rr *httptest.ResponseRecorder) {
				assert.NotContains(t, rr.Body.String(), "disk")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewFakeService()
			if tt.setup != nil {
				tt.setup(svc)
			}
			var body io.Reader
			if tt.body != "" {
				body = strings.NewReader(tt.body)
			}
			rr := serve(t, svc, tt.method, tt.target, body)
			assert.Equal(t, tt.wantStatus, rr.Code, rr.Body.String())
			if tt.verify != nil {
				tt.verify(t, rr)
			}
		})
	}
}

func TestStatsHandlers_PlayerRankings(t *testing.T) {
	t.Run("defaults to points", func(t *testing.T) {
		svc := NewFakeService()
		var gotKey statsservice.StatKey
		var gotLeague int64
		svc.GetPlayerRankingsFunc = func(ctx context.Context, leagueID int64, key statsservice.StatKey) ([]statsservice.PlayerRanking, error) {
			gotLeague, gotKey = leagueID, key
			return []statsservice.PlayerRanking{{Rank: 1, Player: "Ann", Team: "Lions", Total: 30}}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/4/rankings/players", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, statsservice.StatPoints, gotKey)
		assert.Equal(t, int64(4), gotLeague)

		var rankings []statsservice.PlayerRanking
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&rankings))
		require.Len(t, rankings, 1)
		assert.Equal(t, "Ann", rankings[0].Player)
		assert.Equal(t, []string{"GetLeague", "GetPlayerRankings"}, svc.Trace())
	})

	t.Run("passes the stat through", func(t *testing.T) {
		svc := NewFakeService()
		var gotKey statsservice.StatKey
		svc.GetPlayerRankingsFunc = func(ctx context.Context, leagueID int64, key statsservice.StatKey) ([]statsservice.PlayerRanking, error) {
			gotKey = key
			return nil, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/4/rankings/players?stat=assists", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, statsservice.StatAssists, gotKey)
		assert.JSONEq(t, `[]`, rr.Body.String())
	})

	t.Run("unknown stat", func(t *testing.T) {
		svc := NewFakeService()
		svc.GetPlayerRankingsFunc = func(ctx context.Context, leagueID int64, key statsservice.StatKey) ([]statsservice.PlayerRanking, error) {
			return nil, fmt.Errorf("%w: %q", statsservice.ErrUnknownStatKey, key)
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/4/rankings/players?stat=dunks", nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "unknown stat key")
	})
}

func TestStatsHandlers_Players(t *testing.T) {
	t.Run("player names are unescaped", func(t *testing.T) {
		svc := NewFakeService()
		var gotPlayer string
		svc.GetPlayerGamesFunc = func(ctx context.Context, player string, leagueID int64) ([]statsdb.PlayerGame, error) {
			gotPlayer = player
			return []statsdb.PlayerGame{{GameDate: "2024-01-15", Team: "Lions", Label: "Lions 80 - 70 Tigers"}}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/1/players/Jane%20Doe/games", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Jane Doe", gotPlayer)
		assert.Contains(t, rr.Body.String(), "Lions 80 - 70 Tigers")
	})

	t.Run("player teams", func(t *testing.T) {
		svc := NewFakeService()
		svc.GetPlayerTeamsFunc = func(ctx context.Context, player string, leagueID int64) ([]string, error) {
			return []string{"Lions", "Owls"}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/1/players/Ann/teams", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `["Lions","Owls"]`, rr.Body.String())
	})

	t.Run("league players", func(t *testing.T) {
		svc := NewFakeService()
		svc.GetLeaguePlayersFunc = func(ctx context.Context, leagueID int64) ([]statsdb.PlayerRef, error) {
			return []statsdb.PlayerRef{{Player: "Ann", Team: "Lions"}}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/1/players", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `[{"player":"Ann","team":"Lions"}]`, rr.Body.String())
	})

	t.Run("career not found", func(t *testing.T) {
		rr := serve(t, NewFakeService(), http.MethodGet, "/api/players/Nobody/career", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("career scoped to a team", func(t *testing.T) {
		svc := NewFakeService()
		var gotTeam string
		svc.GetPlayerCareerStatsFunc = func(ctx context.Context, player, team string) (*statsservice.CareerStats, error) {
			gotTeam = team
			return &statsservice.CareerStats{Player: player, Team: team, GamesPlayed: 2, TotalPoints: 40, AvgPoints: 20}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/players/Ann/career?team=Lions", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Lions", gotTeam)

		var stats statsservice.CareerStats
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&stats))
		assert.Equal(t, 40, stats.TotalPoints)
		assert.InDelta(t, 20.0, stats.AvgPoints, 0.001)
		assert.NotContains(t, svc.Trace(), "GetLeague")
	})

	t.Run("game stat by date", func(t *testing.T) {
		svc := NewFakeService()
		svc.GetPlayerGameStatFunc = func(ctx context.Context, player, date string) (*statsdb.PlayerStat, error) {
			if date != "2024-01-15" {
				return nil, nil
			}
			return &statsdb.PlayerStat{GameDate: date, Player: player, Team: "Lions", Points: 12}, nil
		}

		rr := serve(t, svc, http.MethodGet, "/api/players/Ann/games/2024-01-15", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"points":12`)

		rr = serve(t, svc, http.MethodGet, "/api/players/Ann/games/2024-01-16", nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestStatsHandlers_TrendChart(t *testing.T) {
	t.Run("writes the rendered image", func(t *testing.T) {
		svc := NewFakeService()
		svc.RenderPlayerTrendChartFunc = func(ctx context.Context, w io.Writer, player, team string, leagueID int64, key statsservice.StatKey) error {
			_, err := w.Write([]byte("\x89PNG" + string(key) + "/" + team))
			return err
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/1/players/Ann/trend.png?stat=rebounds", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
		assert.Equal(t, "\x89PNGrebounds/", rr.Body.String())

		rr = serve(t, svc, http.MethodGet, "/api/leagues/1/players/Ann/trend.png?team=Tigers", nil)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "\x89PNGpoints/Tigers", rr.Body.String())
	})

	t.Run("render failure leaves no partial image", func(t *testing.T) {
		svc := NewFakeService()
		svc.RenderPlayerTrendChartFunc = func(ctx context.Context, w io.Writer, player, team string, leagueID int64, key statsservice.StatKey) error {
			w.Write([]byte("\x89PNG"))
			return fmt.Errorf("render trend chart: boom")
		}

		rr := serve(t, svc, http.MethodGet, "/api/leagues/1/players/Ann/trend.png", nil)
		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		assert.NotContains(t, rr.Body.String(), "PNG")
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("save: %w", bundb.ErrStorageLocked), http.StatusServiceUnavailable},
		{statsservice.ErrLeagueNotFound, http.StatusNotFound},
		{fmt.Errorf("assign: %w", statsservice.ErrGameNotFound), http.StatusNotFound},
		{statsservice.ErrUnknownStatKey, http.StatusBadRequest},
		{statsservice.ErrInvalidLeagueName, http.StatusBadRequest},
		{io.ErrUnexpectedEOF, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
