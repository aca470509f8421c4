package statsservice

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	statsdb "github.com/Black-And-White-Club/hoopstats/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/hoopstats/app/shared/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the colors used by rendered charts.
type ChartPalette struct {
	Background  drawing.Color
	PrimaryLine drawing.Color
	AccentLine  drawing.Color
	TextColor   drawing.Color
}

// DefaultPalette is a dark court theme.
var DefaultPalette = ChartPalette{
	Background:  drawing.ColorFromHex("1b1f24"),
	PrimaryLine: drawing.ColorFromHex("e8772e"),
	AccentLine:  drawing.ColorFromHex("f4c542"),
	TextColor:   drawing.ColorFromHex("e6e6e6"),
}

// GetPlayerTrend returns one value of key per league game of the player, oldest first.
// An empty team covers every team the player appeared for.
func (s *StatsService) GetPlayerTrend(ctx context.Context, player, team string, leagueID int64, key StatKey) ([]TrendPoint, error) {
	result, err := withTelemetry(s, ctx, "GetPlayerTrend", player, func(ctx context.Context) (results.OperationResult[[]TrendPoint, error], error) {
		if !key.Valid() {
			return results.FailureResult[[]TrendPoint, error](fmt.Errorf("%w: %q", ErrUnknownStatKey, key)), nil
		}
		return runRead(s, ctx, "GetPlayerTrend", func(ctx context.Context) (results.OperationResult[[]TrendPoint, error], error) {
			lines, err := s.repo.GetLeaguePlayerStats(ctx, nil, leagueID)
			if err != nil {
				return results.OperationResult[[]TrendPoint, error]{}, err
			}
			return results.SuccessResult[[]TrendPoint, error](trendPoints(lines, player, team, key)), nil
		})
	})
	return unwrap(result, err)
}

// RenderPlayerTrendChart writes a PNG line chart of the player's trend for key.
func (s *StatsService) RenderPlayerTrendChart(ctx context.Context, w io.Writer, player, team string, leagueID int64, key StatKey) error {
	points, err := s.GetPlayerTrend(ctx, player, team, leagueID, key)
	if err != nil {
		return err
	}
	png, err := GeneratePlayerTrendChart(points, string(key), DefaultPalette)
	if err != nil {
		return fmt.Errorf("render trend chart: %w", err)
	}
	_, err = w.Write(png)
	return err
}

func trendPoints(lines []statsdb.PlayerStat, player, team string, key StatKey) []TrendPoint {
	points := make([]TrendPoint, 0)
	for _, l := range lines {
		if l.Player != player || (team != "" && l.Team != team) {
			continue
		}
		points = append(points, TrendPoint{GameDate: l.GameDate, Value: lineValue(l, key)})
	}
	return points
}

// GeneratePlayerTrendChart produces a PNG line chart of one statistic across games.
func GeneratePlayerTrendChart(points []TrendPoint, statName string, palette ChartPalette) ([]byte, error) {
	xValues := make([]time.Time, 0, len(points))
	yValues := make([]float64, 0, len(points))
	for _, p := range points {
		day, err := time.Parse(statsdb.DateLayout, p.GameDate)
		if err != nil {
			continue
		}
		xValues = append(xValues, day)
		yValues = append(yValues, p.Value)
	}

	// go-chart needs two distinct dates to draw a line.
	if len(xValues) < 2 || xValues[0].Equal(xValues[len(xValues)-1]) {
		return renderNoDataPlaceholder(palette, "Not enough games to chart "+statName)
	}

	mainSeries := chart.TimeSeries{
		Name:    statName,
		XValues: xValues,
		YValues: yValues,
		Style: chart.Style{
			StrokeColor: palette.PrimaryLine,
			StrokeWidth: 2,
			DotWidth:    4,
			DotColor:    palette.AccentLine,
		},
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat(statsdb.DateLayout),
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		YAxis: chart.YAxis{
			Name: statName,
			Style: chart.Style{
				FontColor: palette.TextColor,
			},
		},
		Series: []chart.Series{mainSeries},
	}
	if lo, hi := bounds(yValues); lo == hi {
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette, msg string) ([]byte, error) {
	const (
		width  = 400
		height = 200
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: palette.Background,
		},
		Canvas: chart.Style{
			FillColor: palette.Background,
		},
		XAxis: chart.XAxis{Style: chart.Style{Hidden: true}},
		YAxis: chart.YAxis{Style: chart.Style{Hidden: true}},
		// Render refuses a chart without a visible series.
		Series: []chart.Series{chart.ContinuousSeries{
			XValues: []float64{0, 1},
			YValues: []float64{0, 1},
			Style:   chart.Style{StrokeColor: palette.Background},
		}},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFont(chartDefaults.GetFont())
				r.SetFontColor(palette.TextColor)
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func bounds(values []float64) (lo, hi float64) {
	for i, v := range values {
		if i == 0 || v < lo {
			lo = v
		}
		if i == 0 || v > hi {
			hi = v
		}
	}
	return lo, hi
}
