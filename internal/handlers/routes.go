package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abrezinsky/mastersboard/internal/services"
)

// conditionalHTTPLogger only logs HTTP requests when HTTP logging is enabled
func (h *Handlers) conditionalHTTPLogger(next http.Handler) http.Handler {
	logger := middleware.Logger(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.Log != nil && h.Log.IsHTTPLoggingEnabled() {
			logger.ServeHTTP(w, r)
		} else {
			next.ServeHTTP(w, r)
		}
	})
}

// Router returns a configured chi router with all routes. There is no request
// timeout middleware: scores API calls run until they complete.
func (h *Handlers) Router() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.conditionalHTTPLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RedirectSlashes)

	// Static files (served from embedded filesystem)
	if h.staticServer != nil {
		r.Handle("/static/*", http.StripPrefix("/static/", h.staticServer))
	}

	// Pages
	if h.templates != nil {
		r.Get("/", h.handleScoresPage)
		r.Get("/teams", h.handleTeamsPage)
	}

	// WebSocket
	if h.Hub != nil {
		r.Get("/ws", h.Hub.ServeWs)
	}

	// Metrics
	if h.Metrics != nil {
		r.Handle("/metrics", h.Metrics)
	}

	// Reports
	r.Post("/api/report", h.handleReport(h.ScoresReport))
	r.Post("/api/teams/report", h.handleReport(h.TeamsReport))

	// Rows
	r.Get("/api/rows/scores", h.handleRows(services.BoardScores))
	r.Get("/api/rows/team-scores", h.handleRows(services.BoardTeams))

	// Downloads
	r.Get("/export.xlsx", h.handleExport)
	r.Get("/teams/chart.png", h.handleTeamChart)
	r.Get("/share.png", h.handleShareQR)

	return r
}
