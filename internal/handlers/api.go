package handlers

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/abrezinsky/mastersboard/internal/services"
)

// handleReport triggers report generation for one board. A trigger while the
// board's report is already running is answered with 409 and does nothing.
func (h *Handlers) handleReport(trigger *services.ReportTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if trigger == nil {
			h.respondError(w, r, NotFound("Report not available"))
			return
		}

		rec := &services.Recorder{}
		if !trigger.Trigger(r.Context(), rec) {
			busy := Conflict(ErrCodeReportBusy, "Report generation already in progress")
			respondJSON(w, busy.Status, ReportResponse{
				Success: false,
				Code:    busy.Code,
				Error:   busy.Message,
				Control: trigger.State(),
			})
			return
		}

		resp := ReportResponse{Control: trigger.State()}
		status := http.StatusOK
		if last, ok := rec.Last(); ok {
			if last.Level == services.LevelSuccess {
				resp.Success = true
				resp.Message = last.Message
			} else {
				resp.Error = last.Message
				status = http.StatusBadGateway
			}
		}
		respondJSON(w, status, resp)
	}
}

// handleRows reloads a board and returns its row descriptors
func (h *Handlers) handleRows(board services.Board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &services.Recorder{}
		table := h.Boards.Table(board)

		snap, err := h.Boards.Load(r.Context(), board, rec)
		if err != nil {
			msg := err.Error()
			if last, ok := rec.Last(); ok {
				msg = last.Message
			}
			respondJSON(w, http.StatusBadGateway, RowsResponse{Success: false, TableID: table.ID(), Error: msg})
			return
		}

		rows := snap.Rows
		if board == services.BoardScores {
			rows = services.FilterRows(rows, r.URL.Query().Get("player"))
		}
		respondOK(w, RowsResponse{Success: true, TableID: table.ID(), Data: rows, LoadedAt: &snap.LoadedAt})
	}
}

// handleExport streams an Excel workbook of both boards
func (h *Handlers) handleExport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Exporter.Write(r.Context(), &buf); err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="`+services.ExportFileName(time.Now())+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes())
}

// handleTeamChart serves the team standings bar chart
func (h *Handlers) handleTeamChart(w http.ResponseWriter, r *http.Request) {
	data, err := h.Charts.TeamStandingsPNG(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Write(data)
}

// handleShareQR serves a QR code linking to a board page
func (h *Handlers) handleShareQR(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = string(services.BoardScores)
	}
	board, err := services.ParseBoard(page)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	size := 256
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 64 || n > 1024 {
			h.respondError(w, r, BadRequest("size must be between 64 and 1024"))
			return
		}
		size = n
	}

	png, err := h.Share.QRCode(board, size)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}
