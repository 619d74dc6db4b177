package services

import (
	"context"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/metrics"
	"github.com/abrezinsky/mastersboard/internal/render"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

// Board names one of the two leaderboards
type Board string

const (
	BoardScores Board = "scores"
	BoardTeams  Board = "teams"
)

// Table element ids
const (
	ScoresTableID = "scoresTableBody"
	TeamsTableID  = "teamScoresTableBody"
)

// ParseBoard maps a page name to its board
func ParseBoard(name string) (Board, error) {
	switch Board(name) {
	case BoardScores, BoardTeams:
		return Board(name), nil
	}
	return "", apperrors.InvalidInputf("page must be scores or teams, got %q", name)
}

// noun is how notifications refer to the board's data
func (b Board) noun() string {
	if b == BoardTeams {
		return "team scores"
	}
	return "scores"
}

// LoadFailureMessage builds the notification text for a failed load.
// Failures reported by the API read "Failed to load ..."; transport and decode
// failures read "Error loading ...".
func LoadFailureMessage(b Board, err error) string {
	if apperrors.IsUpstream(err) {
		return "Failed to load " + b.noun() + ": " + apperrors.UserMessage(err)
	}
	return "Error loading " + b.noun() + ": " + err.Error()
}

// outcome maps an error to a metrics outcome label
func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeOK
	}
	switch apperrors.KindOf(err) {
	case apperrors.ErrUpstream:
		return metrics.OutcomeUpstream
	case apperrors.ErrTransport:
		return metrics.OutcomeTransport
	case apperrors.ErrDecode:
		return metrics.OutcomeDecode
	default:
		return metrics.OutcomeError
	}
}

// LeaderboardService loads both leaderboards into their tables
type LeaderboardService struct {
	log      logger.Logger
	client   scoresapi.Client
	metrics  *metrics.Metrics
	notifier Notifier
	scores   *Table
	teams    *Table
}

// NewLeaderboardService creates a new LeaderboardService. notifier receives
// every load failure alongside the per-call notifiers; it may be nil.
func NewLeaderboardService(log logger.Logger, client scoresapi.Client, m *metrics.Metrics, notifier Notifier) *LeaderboardService {
	return &LeaderboardService{
		log:      log,
		client:   client,
		metrics:  m,
		notifier: notifier,
		scores:   NewTable(ScoresTableID),
		teams:    NewTable(TeamsTableID),
	}
}

// ScoresTable returns the individual leaderboard table
func (s *LeaderboardService) ScoresTable() *Table {
	return s.scores
}

// TeamsTable returns the team leaderboard table
func (s *LeaderboardService) TeamsTable() *Table {
	return s.teams
}

// Table returns the table for a board
func (s *LeaderboardService) Table(b Board) *Table {
	if b == BoardTeams {
		return s.teams
	}
	return s.scores
}

// Load dispatches to the loader for the board and returns the rows this load
// installed. After a failure it returns the rows left in place.
func (s *LeaderboardService) Load(ctx context.Context, b Board, extra ...Notifier) (Snapshot, error) {
	if b == BoardTeams {
		return s.loadTeamScores(ctx, extra)
	}
	return s.loadScores(ctx, extra)
}

// LoadScores fetches the individual leaderboard and replaces the scores
// table. On failure the table is left as it was and the failure is notified.
// The upstream request is detached from ctx cancellation so it always runs to
// completion.
func (s *LeaderboardService) LoadScores(ctx context.Context, extra ...Notifier) error {
	_, err := s.loadScores(ctx, extra)
	return err
}

func (s *LeaderboardService) loadScores(ctx context.Context, extra []Notifier) (Snapshot, error) {
	ctx = context.WithoutCancel(ctx)

	players, err := s.client.FetchScores(ctx)
	if err != nil {
		return s.scores.Snapshot(), s.fail(BoardScores, err, extra)
	}

	for _, p := range players {
		for _, key := range p.UnknownStatuses() {
			s.log.Warn("Unrecognized round status", "player", p.Name, "round", key, "status", string(p.Rounds[key].Status))
			s.metrics.UnknownRoundStatus()
		}
	}

	snap := s.scores.Replace(render.Scores(players))
	s.metrics.Load(string(BoardScores), metrics.OutcomeOK)
	s.log.Debug("Scores loaded", "players", len(players))
	return snap, nil
}

// LoadTeamScores fetches the team leaderboard and replaces the team table
func (s *LeaderboardService) LoadTeamScores(ctx context.Context, extra ...Notifier) error {
	_, err := s.loadTeamScores(ctx, extra)
	return err
}

func (s *LeaderboardService) loadTeamScores(ctx context.Context, extra []Notifier) (Snapshot, error) {
	ctx = context.WithoutCancel(ctx)

	teams, err := s.client.FetchTeamScores(ctx)
	if err != nil {
		return s.teams.Snapshot(), s.fail(BoardTeams, err, extra)
	}

	rows := render.Teams(teams)
	snap := s.teams.Replace(rows)
	s.metrics.Load(string(BoardTeams), metrics.OutcomeOK)
	s.log.Debug("Team scores loaded", "teams", len(teams), "rows", len(rows))
	return snap, nil
}

func (s *LeaderboardService) fail(b Board, err error, extra []Notifier) error {
	msg := LoadFailureMessage(b, err)
	s.metrics.Load(string(b), outcome(err))
	s.log.Error("Leaderboard load failed", "board", string(b), "kind", apperrors.KindOf(err).String(), "error", err)
	s.notify(extra).ShowError(msg)
	return err
}

func (s *LeaderboardService) notify(extra []Notifier) Notifier {
	sinks := make(Notifiers, 0, len(extra)+1)
	if s.notifier != nil {
		sinks = append(sinks, s.notifier)
	}
	return append(sinks, extra...)
}
