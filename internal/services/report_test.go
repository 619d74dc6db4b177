package services_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/metrics"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

type stateLog struct {
	mu     sync.Mutex
	states []services.ControlState
}

func (s *stateLog) record(state services.ControlState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states = append(s.states, state)
}

func (s *stateLog) all() []services.ControlState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]services.ControlState(nil), s.states...)
}

func newTrigger(client scoresapi.Client, rec services.Notifier) *services.ReportTrigger {
	return services.NewReportTrigger(services.BoardScores, logger.Nop(), client, metrics.New(), rec, "", "")
}

func TestReportTrigger_Success(t *testing.T) {
	rec := &services.Recorder{}
	trigger := newTrigger(scoresapi.NewMockClient(), rec)
	states := &stateLog{}
	trigger.OnStateChange(states.record)

	if !trigger.Trigger(context.Background()) {
		t.Fatal("expected trigger to run")
	}

	last, ok := rec.Last()
	if !ok || last.Level != services.LevelSuccess || last.Message != "Report generated successfully!" {
		t.Errorf("unexpected notification %+v", last)
	}

	got := states.all()
	if len(got) != 2 {
		t.Fatalf("expected 2 state changes, got %d", len(got))
	}
	if !got[0].Disabled || got[0].Label != "Generating..." || got[0].RunID == "" {
		t.Errorf("unexpected busy state %+v", got[0])
	}
	if got[1].Disabled || got[1].Label != "Generate Excel Report" || got[1].RunID != "" {
		t.Errorf("unexpected idle state %+v", got[1])
	}
	if got[0].Control != services.ControlID {
		t.Errorf("expected control %q, got %q", services.ControlID, got[0].Control)
	}
}

func TestReportTrigger_UpstreamFailureRestoresControl(t *testing.T) {
	rec := &services.Recorder{}
	client := scoresapi.NewMockClient(scoresapi.WithReportError(apperrors.Upstream("disk full")))
	trigger := newTrigger(client, rec)

	if !trigger.Trigger(context.Background()) {
		t.Fatal("expected trigger to run")
	}

	last, _ := rec.Last()
	if last.Level != services.LevelError {
		t.Errorf("expected error level, got %q", last.Level)
	}
	if !strings.Contains(last.Message, "disk full") {
		t.Errorf("expected message to contain 'disk full', got %q", last.Message)
	}
	if last.Message != "Failed to generate report: disk full" {
		t.Errorf("unexpected message %q", last.Message)
	}

	state := trigger.State()
	if state.Disabled {
		t.Error("expected control to be re-enabled")
	}
	if state.Label != services.DefaultIdleLabel {
		t.Errorf("expected label %q, got %q", services.DefaultIdleLabel, state.Label)
	}
}

func TestReportTrigger_TransportFailure(t *testing.T) {
	rec := &services.Recorder{}
	client := scoresapi.NewMockClient(scoresapi.WithReportError(apperrors.Transportf("connection reset")))
	trigger := newTrigger(client, rec)

	trigger.Trigger(context.Background())

	last, _ := rec.Last()
	if last.Message != "Error generating report: connection reset" {
		t.Errorf("unexpected message %q", last.Message)
	}
	if trigger.State().Disabled {
		t.Error("expected control to be re-enabled")
	}
}

func TestReportTrigger_IgnoredWhileInFlight(t *testing.T) {
	gate := make(chan struct{})
	client := scoresapi.NewMockClient(scoresapi.WithReportGate(gate))
	rec := &services.Recorder{}
	trigger := newTrigger(client, rec)

	done := make(chan bool)
	go func() {
		done <- trigger.Trigger(context.Background())
	}()

	deadline := time.Now().Add(2 * time.Second)
	for !trigger.State().Disabled {
		if time.Now().After(deadline) {
			t.Fatal("trigger never became busy")
		}
		time.Sleep(5 * time.Millisecond)
	}

	if trigger.Trigger(context.Background()) {
		t.Error("expected second trigger to be ignored")
	}
	if trigger.State().Label != services.DefaultBusyLabel {
		t.Errorf("expected busy label, got %q", trigger.State().Label)
	}

	close(gate)
	if !<-done {
		t.Error("expected first trigger to run")
	}

	if calls := client.ReportCalls(); calls != 1 {
		t.Errorf("expected 1 report call, got %d", calls)
	}
	if len(rec.Notifications()) != 1 {
		t.Errorf("expected exactly one notification, got %v", rec.Notifications())
	}
	if trigger.State().Disabled {
		t.Error("expected control to be re-enabled")
	}
}

func TestReportTrigger_BoardsAreIndependent(t *testing.T) {
	gate := make(chan struct{})
	client := scoresapi.NewMockClient(scoresapi.WithReportGate(gate))
	scores := services.NewReportTrigger(services.BoardScores, logger.Nop(), client, nil, nil, "", "")
	teams := services.NewReportTrigger(services.BoardTeams, logger.Nop(), client, nil, nil, "", "")

	var wg sync.WaitGroup
	wg.Add(2)
	for _, tr := range []*services.ReportTrigger{scores, teams} {
		go func(tr *services.ReportTrigger) {
			defer wg.Done()
			if !tr.Trigger(context.Background()) {
				t.Errorf("expected %s trigger to run", tr.State().Board)
			}
		}(tr)
	}

	deadline := time.Now().Add(2 * time.Second)
	for client.ReportCalls() < 2 {
		if time.Now().After(deadline) {
			t.Fatal("both boards should be generating at once")
		}
		time.Sleep(5 * time.Millisecond)
	}
	close(gate)
	wg.Wait()
}

func TestReportTrigger_CustomLabels(t *testing.T) {
	trigger := services.NewReportTrigger(services.BoardTeams, logger.Nop(), scoresapi.NewMockClient(), nil, nil, "Export", "Working")
	if trigger.State().Label != "Export" {
		t.Errorf("expected idle label Export, got %q", trigger.State().Label)
	}
	if s := trigger.State(); s.IdleLabel != "Export" || s.BusyLabel != "Working" {
		t.Errorf("expected both labels on the state, got %+v", s)
	}

	states := &stateLog{}
	trigger.OnStateChange(states.record)
	trigger.Trigger(context.Background())

	got := states.all()
	if got[0].Label != "Working" || got[1].Label != "Export" {
		t.Errorf("unexpected labels %+v", got)
	}
}

func TestReportMessage(t *testing.T) {
	if got := services.ReportMessage(nil); got != "Report generated successfully!" {
		t.Errorf("unexpected success message %q", got)
	}
	if got := services.ReportMessage(apperrors.Upstream("unknown error")); got != "Failed to generate report: unknown error" {
		t.Errorf("unexpected failure message %q", got)
	}
}
