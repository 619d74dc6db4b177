package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"

	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/models"
	"github.com/abrezinsky/mastersboard/internal/render"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

// Workbook sheet names
const (
	ScoresSheet = "Masters Tournament Scores"
	TeamsSheet  = "Team Scores"
)

var (
	scoresHeaders = []string{"Position", "Player Name", "Total Score", "Round 1", "Round 2", "Round 3", "Round 4"}
	teamsHeaders  = []string{"Rank", "Team", "Score", "Player", "Tier", "Rd1", "Rd2", "Rd3", "Rd4", "Total"}
)

// ExportFileName returns the download name for a workbook built at t
func ExportFileName(t time.Time) string {
	return "masters_scores_" + t.Format("20060102_150405") + ".xlsx"
}

// Exporter builds Excel workbooks of both leaderboards
type Exporter struct {
	log    logger.Logger
	client scoresapi.Client
}

// NewExporter creates a new Exporter
func NewExporter(log logger.Logger, client scoresapi.Client) *Exporter {
	return &Exporter{log: log, client: client}
}

// Write fetches both leaderboards and writes the workbook to w
func (e *Exporter) Write(ctx context.Context, w io.Writer) error {
	ctx = context.WithoutCancel(ctx)

	players, err := e.client.FetchScores(ctx)
	if err != nil {
		return err
	}
	teams, err := e.client.FetchTeamScores(ctx)
	if err != nil {
		return err
	}

	f, err := BuildWorkbook(players, teams)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	e.log.Info("Workbook exported", "players", len(players), "teams", len(teams))
	return nil
}

// BuildWorkbook lays out both leaderboards in one workbook
func BuildWorkbook(players []models.PlayerRow, teams []models.TeamRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ScoresSheet); err != nil {
		f.Close()
		return nil, err
	}
	if _, err := f.NewSheet(TeamsSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"CCCCCC"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	bestStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D4EDDA"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	teamStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close()
		return nil, err
	}

	scores := make([][]string, 0, len(players))
	for _, row := range render.Scores(players) {
		scores = append(scores, row.Texts())
	}
	if err := writeSheet(f, ScoresSheet, scoresHeaders, scores, headerStyle, nil); err != nil {
		f.Close()
		return nil, err
	}

	rows := render.Teams(teams)
	texts := make([][]string, 0, len(rows))
	styles := make(map[int]int)
	for i, row := range rows {
		cells := row.Texts()
		switch {
		case row.Kind == render.KindTeam:
			cells = cells[:3]
			styles[i] = teamStyle
		case row.HasClass(render.RowClassBest):
			styles[i] = bestStyle
		}
		texts = append(texts, cells)
	}
	if err := writeSheet(f, TeamsSheet, teamsHeaders, texts, headerStyle, styles); err != nil {
		f.Close()
		return nil, err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// writeSheet writes a header row and data rows, then sizes each column to its
// longest value plus two. rowStyles maps a data row index to a style id.
func writeSheet(f *excelize.File, sheet string, headers []string, rows [][]string, headerStyle int, rowStyles map[int]int) error {
	widths := make([]int, len(headers))

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
		widths[i] = utf8.RuneCountInString(h)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := make([]interface{}, len(row))
		for j, text := range row {
			values[j] = cellValue(text)
			if j < len(widths) {
				if n := utf8.RuneCountInString(text); n > widths[j] {
					widths[j] = n
				}
			}
		}

		start, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}

		if style, ok := rowStyles[i]; ok {
			end, err := excelize.CoordinatesToCellName(len(headers), i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellStyle(sheet, start, end, style); err != nil {
				return err
			}
		}
	}

	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(w+2)); err != nil {
			return err
		}
	}
	return nil
}

// cellValue stores plain integers as numbers and everything else ("+3", "E",
// "-") as text.
func cellValue(text string) interface{} {
	if text == "" || strings.HasPrefix(text, "+") {
		return text
	}
	if n, err := strconv.Atoi(text); err == nil {
		return n
	}
	return text
}
