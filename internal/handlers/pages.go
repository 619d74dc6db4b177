package handlers

import (
	"html/template"
	"net/http"

	"github.com/abrezinsky/mastersboard/internal/services"
)

// handleScoresPage loads the individual leaderboard and serves its page. A
// failed load still serves the page, with the previous rows and a banner.
func (h *Handlers) handleScoresPage(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("player")
	h.renderBoardPage(w, r, services.BoardScores, h.templates.Scores, "Masters Tournament Leaderboard", h.ScoresReport, query)
}

// handleTeamsPage loads the team leaderboard and serves its page
func (h *Handlers) handleTeamsPage(w http.ResponseWriter, r *http.Request) {
	h.renderBoardPage(w, r, services.BoardTeams, h.templates.Teams, "Masters Pool Team Standings", h.TeamsReport, "")
}

func (h *Handlers) renderBoardPage(w http.ResponseWriter, r *http.Request, board services.Board, tmpl *template.Template, title string, trigger *services.ReportTrigger, query string) {
	rec := &services.Recorder{}
	snap, _ := h.Boards.Load(r.Context(), board, rec)

	data := PageData{
		Title:         title,
		Board:         board,
		TableID:       h.Boards.Table(board).ID(),
		Rows:          services.FilterRows(snap.Rows, query),
		Notifications: rec.Notifications(),
		Query:         query,
		LoadedAt:      snap.LoadedAt,
	}
	if trigger != nil {
		data.Control = trigger.State()
	}
	if h.Share != nil {
		data.ShareURL = h.Share.URL(board)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	tmpl.ExecuteTemplate(w, "layout", data)
}
