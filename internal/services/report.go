package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/metrics"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

// Default report button labels
const (
	DefaultIdleLabel = "Generate Excel Report"
	DefaultBusyLabel = "Generating..."
)

// Report notification texts
const (
	ReportSuccessMessage = "Report generated successfully!"
	reportFailedPrefix   = "Failed to generate report: "
	reportErrorPrefix    = "Error generating report: "
)

// ControlID is the element id of the report button
const ControlID = "generateReport"

// ControlState is the observable state of a report button
type ControlState struct {
	Board    Board  `json:"board"`
	Control  string `json:"control"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
	RunID    string `json:"run_id,omitempty"`

	IdleLabel string `json:"idle_label,omitempty"`
	BusyLabel string `json:"busy_label,omitempty"`
}

// ReportMessage builds the notification text for a report outcome
func ReportMessage(err error) string {
	if err == nil {
		return ReportSuccessMessage
	}
	if apperrors.IsUpstream(err) {
		return reportFailedPrefix + apperrors.UserMessage(err)
	}
	return reportErrorPrefix + err.Error()
}

// ReportTrigger gates report generation for one board: while a request is in
// flight the control is disabled and further triggers are no-ops.
type ReportTrigger struct {
	board     Board
	log       logger.Logger
	client    scoresapi.Client
	metrics   *metrics.Metrics
	notifier  Notifier
	idleLabel string
	busyLabel string

	mu       sync.Mutex
	disabled bool
	label    string
	runID    string
	onChange func(ControlState)
}

// NewReportTrigger creates a trigger in its idle state. Empty labels fall back
// to the defaults.
func NewReportTrigger(board Board, log logger.Logger, client scoresapi.Client, m *metrics.Metrics, notifier Notifier, idleLabel, busyLabel string) *ReportTrigger {
	if idleLabel == "" {
		idleLabel = DefaultIdleLabel
	}
	if busyLabel == "" {
		busyLabel = DefaultBusyLabel
	}
	return &ReportTrigger{
		board:     board,
		log:       log.With("board", string(board)),
		client:    client,
		metrics:   m,
		notifier:  notifier,
		idleLabel: idleLabel,
		busyLabel: busyLabel,
		label:     idleLabel,
	}
}

// OnStateChange registers a listener called after every control state change
func (t *ReportTrigger) OnStateChange(fn func(ControlState)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.onChange = fn
}

// State returns the current control state
func (t *ReportTrigger) State() ControlState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *ReportTrigger) stateLocked() ControlState {
	return ControlState{
		Board:    t.board,
		Control:  ControlID,
		Label:    t.label,
		Disabled: t.disabled,
		RunID:    t.runID,

		IdleLabel: t.idleLabel,
		BusyLabel: t.busyLabel,
	}
}

// Trigger asks the scores API for a report. It returns false without doing
// anything when a report for this board is already in flight. Otherwise it
// blocks until the request completes, notifies the outcome and restores the
// control.
func (t *ReportTrigger) Trigger(ctx context.Context, extra ...Notifier) bool {
	t.mu.Lock()
	if t.disabled {
		t.mu.Unlock()
		t.log.Debug("Report already in progress, trigger ignored")
		t.metrics.Report(string(t.board), metrics.OutcomeIgnored)
		return false
	}
	t.disabled = true
	t.label = t.busyLabel
	t.runID = uuid.NewString()
	runID := t.runID
	busy, listener := t.stateLocked(), t.onChange
	t.mu.Unlock()

	if listener != nil {
		listener(busy)
	}
	defer t.restore()

	log := t.log.With("run_id", runID)
	log.Info("Generating report")

	_, err := t.client.GenerateReport(context.WithoutCancel(ctx))
	t.metrics.Report(string(t.board), outcome(err))

	sinks := make(Notifiers, 0, len(extra)+1)
	if t.notifier != nil {
		sinks = append(sinks, t.notifier)
	}
	sinks = append(sinks, extra...)

	msg := ReportMessage(err)
	if err != nil {
		log.Error("Report generation failed", "kind", apperrors.KindOf(err).String(), "error", err)
		sinks.ShowError(msg)
	} else {
		sinks.ShowSuccess(msg)
	}
	return true
}

func (t *ReportTrigger) restore() {
	t.mu.Lock()
	t.disabled = false
	t.label = t.idleLabel
	t.runID = ""
	idle, listener := t.stateLocked(), t.onChange
	t.mu.Unlock()

	if listener != nil {
		listener(idle)
	}
}
