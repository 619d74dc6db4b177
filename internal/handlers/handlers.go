package handlers

import (
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/internal/websocket"
)

// NewStaticServer creates a static file server from an fs.FS
func NewStaticServer(staticFS fs.FS) http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// Templates holds all parsed HTML templates
type Templates struct {
	Scores *template.Template
	Teams  *template.Template
}

// Handlers holds all HTTP handler dependencies
type Handlers struct {
	Boards       *services.LeaderboardService
	ScoresReport *services.ReportTrigger
	TeamsReport  *services.ReportTrigger
	Exporter     *services.Exporter
	Charts       *services.ChartService
	Share        *services.ShareService
	Hub          *websocket.Hub
	Metrics      http.Handler
	Log          logger.Logger
	templates    *Templates
	staticServer http.Handler
}

// New creates a new Handlers instance with all dependencies
func New(
	boards *services.LeaderboardService,
	scoresReport *services.ReportTrigger,
	teamsReport *services.ReportTrigger,
	exporter *services.Exporter,
	charts *services.ChartService,
	share *services.ShareService,
	templatesFS fs.FS,
	staticServer http.Handler,
	hub *websocket.Hub,
	metrics http.Handler,
	log logger.Logger,
) (*Handlers, error) {
	templates, err := loadTemplates(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return &Handlers{
		Boards:       boards,
		ScoresReport: scoresReport,
		TeamsReport:  teamsReport,
		Exporter:     exporter,
		Charts:       charts,
		Share:        share,
		Hub:          hub,
		Metrics:      metrics,
		Log:          log,
		templates:    templates,
		staticServer: staticServer,
	}, nil
}

// NewForTesting creates a Handlers instance without loading templates (for testing API endpoints)
func NewForTesting(
	boards *services.LeaderboardService,
	scoresReport *services.ReportTrigger,
	teamsReport *services.ReportTrigger,
	exporter *services.Exporter,
	charts *services.ChartService,
	share *services.ShareService,
) *Handlers {
	return &Handlers{
		Boards:       boards,
		ScoresReport: scoresReport,
		TeamsReport:  teamsReport,
		Exporter:     exporter,
		Charts:       charts,
		Share:        share,
		Log:          logger.Nop(),
		// templates left nil - API endpoints don't use templates
	}
}

// loadTemplates parses all templates once at startup. Each page is the shared
// layout plus its own content block.
func loadTemplates(templatesFS fs.FS) (*Templates, error) {
	t := &Templates{}
	var err error

	if t.Scores, err = template.ParseFS(templatesFS, "layout.html", "index.html"); err != nil {
		return nil, fmt.Errorf("scores template: %w", err)
	}
	if t.Teams, err = template.ParseFS(templatesFS, "layout.html", "teams.html"); err != nil {
		return nil, fmt.Errorf("teams template: %w", err)
	}

	return t, nil
}
