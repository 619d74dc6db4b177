package scoresapi

import (
	"context"
	"sync"

	"github.com/abrezinsky/mastersboard/internal/models"
)

// MockClient is a mock scores API client for testing
type MockClient struct {
	mu          sync.Mutex
	players     []models.PlayerRow
	teams       []models.TeamRow
	report      *models.ReportResult
	baseURL     string
	scoresErr   error
	teamsErr    error
	reportErr   error
	reportGate  chan struct{}
	reportCalls int
	scoreCalls  int
	teamCalls   int
}

// MockOption configures the mock client
type MockOption func(*MockClient)

// WithPlayers sets the players to return
func WithPlayers(players []models.PlayerRow) MockOption {
	return func(m *MockClient) {
		m.players = players
	}
}

// WithTeams sets the teams to return
func WithTeams(teams []models.TeamRow) MockOption {
	return func(m *MockClient) {
		m.teams = teams
	}
}

// WithScoresError sets an error to return from FetchScores
func WithScoresError(err error) MockOption {
	return func(m *MockClient) {
		m.scoresErr = err
	}
}

// WithTeamsError sets an error to return from FetchTeamScores
func WithTeamsError(err error) MockOption {
	return func(m *MockClient) {
		m.teamsErr = err
	}
}

// WithReportError sets an error to return from GenerateReport
func WithReportError(err error) MockOption {
	return func(m *MockClient) {
		m.reportErr = err
	}
}

// WithReportGate makes GenerateReport block until the channel is closed or
// receives a value
func WithReportGate(gate chan struct{}) MockOption {
	return func(m *MockClient) {
		m.reportGate = gate
	}
}

// WithBaseURL sets the base URL
func WithBaseURL(url string) MockOption {
	return func(m *MockClient) {
		m.baseURL = url
	}
}

// NewMockClient creates a new mock scores API client
func NewMockClient(opts ...MockOption) *MockClient {
	m := &MockClient{
		baseURL: "http://mock-scores.local",
		players: DefaultMockPlayers(),
		teams:   DefaultMockTeams(),
		report:  &models.ReportResult{Message: "Report generated successfully", FilePath: "data/masters_scores.xlsx"},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// BaseURL returns the configured base URL
func (m *MockClient) BaseURL() string {
	return m.baseURL
}

// SetPlayers changes the players returned after construction
func (m *MockClient) SetPlayers(players []models.PlayerRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.players = players
}

// SetScoresError changes the FetchScores error after construction
func (m *MockClient) SetScoresError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoresErr = err
}

// SetTeamsError changes the FetchTeamScores error after construction
func (m *MockClient) SetTeamsError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamsErr = err
}

// FetchScores returns the configured players or error
func (m *MockClient) FetchScores(ctx context.Context) ([]models.PlayerRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scoreCalls++
	if m.scoresErr != nil {
		return nil, m.scoresErr
	}
	return m.players, nil
}

// FetchTeamScores returns the configured teams or error
func (m *MockClient) FetchTeamScores(ctx context.Context) ([]models.TeamRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.teamCalls++
	if m.teamsErr != nil {
		return nil, m.teamsErr
	}
	return m.teams, nil
}

// GenerateReport returns the configured report result or error
func (m *MockClient) GenerateReport(ctx context.Context) (*models.ReportResult, error) {
	m.mu.Lock()
	m.reportCalls++
	gate := m.reportGate
	m.mu.Unlock()

	if gate != nil {
		<-gate
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.reportErr != nil {
		return nil, m.reportErr
	}
	return m.report, nil
}

// ReportCalls returns how many times GenerateReport was called
func (m *MockClient) ReportCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reportCalls
}

// ScoreCalls returns how many times FetchScores was called
func (m *MockClient) ScoreCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scoreCalls
}

// TeamCalls returns how many times FetchTeamScores was called
func (m *MockClient) TeamCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.teamCalls
}

func ptr(v int) *int { return &v }

// DefaultMockPlayers returns a sample individual leaderboard
func DefaultMockPlayers() []models.PlayerRow {
	return []models.PlayerRow{
		{
			Position:   1,
			Name:       "Scottie Scheffler",
			TotalScore: -7,
			Rounds: map[string]models.RoundScore{
				"round1": models.Finished(66),
				"round2": models.Finished(72),
				"round3": models.Playing(-1),
				"round4": models.NotStarted(),
			},
		},
		{
			Position:   2,
			Name:       "Collin Morikawa",
			TotalScore: -6,
			Rounds: map[string]models.RoundScore{
				"round1": models.Finished(71),
				"round2": models.Finished(70),
				"round3": models.Playing(-3),
				"round4": models.NotStarted(),
			},
		},
		{
			Position:   3,
			Name:       "Max Homa",
			TotalScore: -5,
			Rounds: map[string]models.RoundScore{
				"round1": models.Finished(67),
				"round2": models.Finished(71),
				"round3": models.Playing(0),
				"round4": models.NotStarted(),
			},
		},
	}
}

// DefaultMockTeams returns a sample team leaderboard
func DefaultMockTeams() []models.TeamRow {
	return []models.TeamRow{
		{
			Rank:  ptr(1),
			Team:  "Amen Corner",
			Score: ptr(-14),
			Players: []models.TeamPlayer{
				{Name: "Scottie Scheffler", Tier: "1", Rounds: [4]*int{ptr(-6), ptr(0), ptr(-1), nil}, Total: ptr(-7)},
				{Name: "Collin Morikawa", Tier: "2", Rounds: [4]*int{ptr(-1), ptr(-2), ptr(-3), nil}, Total: ptr(-6)},
				{Name: "Max Homa", Tier: "3", Rounds: [4]*int{ptr(-5), ptr(-1), ptr(0), nil}, Total: ptr(-6)},
				{Name: "Jon Rahm", Tier: "4", Rounds: [4]*int{ptr(2), ptr(1), nil, nil}, Total: ptr(3)},
				{Name: "Tiger Woods", Tier: "5", Rounds: [4]*int{ptr(1), ptr(4), ptr(8), ptr(8)}, Total: ptr(21)},
			},
		},
		{
			Rank:  ptr(2),
			Team:  "Rae's Creek",
			Score: ptr(5),
			Players: []models.TeamPlayer{
				{Name: "Rory McIlroy", Tier: "1", Rounds: [4]*int{ptr(0), ptr(1), nil, nil}, Total: ptr(1)},
				{Name: "Nicolai Højgaard", Tier: "2", Rounds: [4]*int{ptr(2), ptr(2), nil, nil}, Total: ptr(4)},
			},
		},
	}
}

// Ensure MockClient implements Client
var _ Client = (*MockClient)(nil)
