package services

import (
	"bytes"
	"context"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/models"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

// ChartPalette holds the colors used by the standings chart
type ChartPalette struct {
	Background drawing.Color
	Text       drawing.Color
	Under      drawing.Color
	Over       drawing.Color
}

// DefaultPalette is Augusta green with a red bar for teams over par
var DefaultPalette = ChartPalette{
	Background: drawing.ColorWhite,
	Text:       drawing.Color{R: 33, G: 37, B: 41, A: 255},
	Under:      drawing.Color{R: 0, G: 103, B: 71, A: 255},
	Over:       drawing.Color{R: 220, G: 53, B: 69, A: 255},
}

const noTeamScoresMessage = "No team scores yet"

// ChartService renders the team standings chart
type ChartService struct {
	log     logger.Logger
	client  scoresapi.Client
	palette ChartPalette
}

// NewChartService creates a new ChartService
func NewChartService(log logger.Logger, client scoresapi.Client) *ChartService {
	return &ChartService{log: log, client: client, palette: DefaultPalette}
}

// TeamStandingsPNG fetches the team leaderboard and renders it as a PNG
func (s *ChartService) TeamStandingsPNG(ctx context.Context) ([]byte, error) {
	teams, err := s.client.FetchTeamScores(context.WithoutCancel(ctx))
	if err != nil {
		return nil, err
	}
	return GenerateTeamChart(teams, s.palette)
}

// GenerateTeamChart produces a bar chart of team scores. Teams without a score
// are skipped.
func GenerateTeamChart(teams []models.TeamRow, palette ChartPalette) ([]byte, error) {
	bars := make([]chart.Value, 0, len(teams))
	for _, team := range teams {
		if team.Score == nil {
			continue
		}
		fill := palette.Under
		if *team.Score > 0 {
			fill = palette.Over
		}
		bars = append(bars, chart.Value{
			Label: team.Team,
			Value: float64(*team.Score),
			Style: chart.Style{FillColor: fill, StrokeColor: fill},
		})
	}
	if len(bars) == 0 {
		return renderChartPlaceholder(palette)
	}

	// go-chart needs a non-degenerate range; all-even standings get a band around zero
	lo, hi := 0.0, 0.0
	for _, b := range bars {
		lo = min(lo, b.Value)
		hi = max(hi, b.Value)
	}
	if lo == hi {
		lo, hi = -1, 1
	}

	graph := chart.BarChart{
		Title:      "Team Standings",
		TitleStyle: chart.Style{FontColor: palette.Text},
		Width:      120*len(bars) + 200,
		Height:     400,
		BarWidth:   60,
		BarSpacing: 40,
		Background: chart.Style{FillColor: palette.Background},
		Canvas:     chart.Style{FillColor: palette.Background},
		XAxis:      chart.Style{FontColor: palette.Text},
		YAxis: chart.YAxis{
			Style: chart.Style{FontColor: palette.Text},
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		UseBaseValue: true,
		BaseValue:    0,
		Bars:         bars,
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// renderChartPlaceholder draws the empty-standings message straight onto a
// PNG canvas. chart.Chart refuses to render without a series.
func renderChartPlaceholder(palette ChartPalette) ([]byte, error) {
	const width, height = 400, 200

	r, err := chart.PNG(width, height)
	if err != nil {
		return nil, err
	}
	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, err
	}

	chart.Draw.Box(r, chart.Box{Top: 0, Left: 0, Right: width, Bottom: height}, chart.Style{
		FillColor:   palette.Background,
		StrokeColor: palette.Background,
		StrokeWidth: 1,
	})

	r.SetFont(font)
	r.SetFontColor(palette.Text)
	r.SetFontSize(12.0)
	tb := r.MeasureText(noTeamScoresMessage)
	r.Text(noTeamScoresMessage, (width-tb.Width())/2, (height+tb.Height())/2)

	buffer := bytes.NewBuffer([]byte{})
	if err := r.Save(buffer); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}
