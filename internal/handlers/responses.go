package handlers

import (
	"time"

	"github.com/abrezinsky/mastersboard/internal/render"
	"github.com/abrezinsky/mastersboard/internal/services"
)

// RowsResponse is the response for the row descriptor endpoints. It keeps the
// scores API's {success, data|error} shape.
type RowsResponse struct {
	Success  bool         `json:"success"`
	TableID  string       `json:"table_id,omitempty"`
	Data     []render.Row `json:"data,omitempty"`
	LoadedAt *time.Time   `json:"loaded_at,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// ReportResponse is the response for a report trigger
type ReportResponse struct {
	Success bool                  `json:"success"`
	Code    string                `json:"code,omitempty"`
	Message string                `json:"message,omitempty"`
	Error   string                `json:"error,omitempty"`
	Control services.ControlState `json:"control"`
}

// PageData is passed to the leaderboard page templates
type PageData struct {
	Title         string
	Board         services.Board
	TableID       string
	Rows          []render.Row
	Notifications []services.Notification
	Control       services.ControlState
	Query         string
	LoadedAt      time.Time
	ShareURL      string
}
