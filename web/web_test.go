package web

import (
	"bytes"
	"html/template"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/abrezinsky/mastersboard/internal/handlers"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/render"
	"github.com/abrezinsky/mastersboard/internal/services"
)

func TestEmbeddedTemplatesExist(t *testing.T) {
	templatesFS := GetTemplatesFS()

	requiredFiles := []string{
		"layout.html",
		"index.html",
		"teams.html",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(templatesFS, file)
		if err != nil {
			t.Errorf("required template %q not found: %v", file, err)
		}
	}
}

func TestEmbeddedStaticFilesExist(t *testing.T) {
	staticFS := GetStaticFS()

	requiredFiles := []string{
		"css/style.css",
		"js/leaderboard.js",
	}

	for _, file := range requiredFiles {
		_, err := fs.Stat(staticFS, file)
		if err != nil {
			t.Errorf("required static file %q not found: %v", file, err)
		}
	}
}

func TestStaticFilesReadable(t *testing.T) {
	staticFS := GetStaticFS()

	content, err := fs.ReadFile(staticFS, "js/leaderboard.js")
	if err != nil {
		t.Fatalf("failed to read js/leaderboard.js: %v", err)
	}
	if !bytes.Contains(content, []byte("'Error: '")) {
		t.Error("expected error alerts to carry the Error: prefix")
	}
}

func TestTemplatesLoadIntoHandlers(t *testing.T) {
	if _, err := handlers.New(nil, nil, nil, nil, nil, nil, GetTemplatesFS(), nil, nil, nil, logger.Nop()); err != nil {
		t.Fatalf("embedded templates failed to load: %v", err)
	}
}

func renderPage(t *testing.T, page string, data handlers.PageData) string {
	t.Helper()

	tmpl, err := template.ParseFS(GetTemplatesFS(), "layout.html", page)
	if err != nil {
		t.Fatalf("failed to parse %s: %v", page, err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		t.Fatalf("failed to execute %s: %v", page, err)
	}
	return buf.String()
}

func TestScoresTemplateRendersRows(t *testing.T) {
	body := renderPage(t, "index.html", handlers.PageData{
		Title:   "Masters Tournament Leaderboard",
		Board:   services.BoardScores,
		TableID: services.ScoresTableID,
		Rows: []render.Row{{
			Kind: render.KindPlayer,
			Key:  "Max Homa",
			Cells: []render.Cell{
				{Text: "3"},
				{Text: "Max Homa"},
				{Text: "-5"},
				{Text: "67", Class: render.ClassFinished},
			},
		}},
		Notifications: []services.Notification{{Level: services.LevelError, Message: "Failed to load scores: db down"}},
		Control: services.ControlState{
			Board:     services.BoardScores,
			Control:   services.ControlID,
			Label:     services.DefaultIdleLabel,
			IdleLabel: services.DefaultIdleLabel,
			BusyLabel: services.DefaultBusyLabel,
		},
		Query:         "homa",
		LoadedAt:      time.Date(2025, 4, 12, 15, 4, 5, 0, time.UTC),
	})

	for _, want := range []string{
		`<tbody id="scoresTableBody">`,
		`<td class="text-success">67</td>`,
		`alert-danger`,
		`Failed to load scores: db down`,
		`<button id="generateReport" class="btn btn-success" data-idle-label="Generate Excel Report" data-busy-label="Generating...">Generate Excel Report</button>`,
		`value="homa"`,
		`Updated 15:04:05`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}

func TestTeamsTemplateRendersColspanAndDisabledControl(t *testing.T) {
	body := renderPage(t, "teams.html", handlers.PageData{
		Title:   "Masters Pool Team Standings",
		Board:   services.BoardTeams,
		TableID: services.TeamsTableID,
		Rows: []render.Row{{
			Kind:    render.KindTeam,
			Key:     "Amen Corner",
			Classes: []string{render.RowClassTeam},
			Cells: []render.Cell{
				{Text: "1"},
				{Text: "Amen Corner"},
				{Text: "-14", Class: render.ClassNegative},
				{ColSpan: 7},
			},
		}},
		Control: services.ControlState{Board: services.BoardTeams, Control: services.ControlID, Label: services.DefaultBusyLabel, Disabled: true},
	})

	for _, want := range []string{
		`<tbody id="teamScoresTableBody">`,
		`<tr class="team-row">`,
		`<td colspan="7"></td>`,
		`disabled>Generating...</button>`,
		`/teams/chart.png`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected page to contain %q", want)
		}
	}
}
