// Package scoresapi provides a client for the tournament scores API.
package scoresapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	apperrors "github.com/abrezinsky/mastersboard/internal/errors"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/models"
)

// Endpoint paths on the scores API
const (
	ScoresPath         = "/api/scores"
	TeamScoresPath     = "/api/team-scores"
	GenerateReportPath = "/api/generate-report"
)

// Client defines the interface for scores API operations
type Client interface {
	// FetchScores retrieves the individual leaderboard
	FetchScores(ctx context.Context) ([]models.PlayerRow, error)
	// FetchTeamScores retrieves the team leaderboard
	FetchTeamScores(ctx context.Context) ([]models.TeamRow, error)
	// GenerateReport asks the API to build its report
	GenerateReport(ctx context.Context) (*models.ReportResult, error)
	// BaseURL returns the configured scores API base URL
	BaseURL() string
}

// Options tunes the HTTP client. Zero values mean no timeout, no rate limit
// and no circuit breaker.
type Options struct {
	Timeout          time.Duration
	RateLimit        float64 // requests per second
	Burst            int
	BreakerFailures  uint32
	BreakerCooldown  time.Duration
	BreakerHalfOpens uint32
}

// HTTPClient is a real HTTP client for the scores API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	log        logger.Logger
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
}

// NewHTTPClient creates a new scores API client
func NewHTTPClient(baseURL string, log logger.Logger, opts Options) *HTTPClient {
	return NewHTTPClientWithHTTPClient(baseURL, &http.Client{Timeout: opts.Timeout}, log, opts)
}

// NewHTTPClientWithHTTPClient creates a new scores API client with a custom http.Client
func NewHTTPClientWithHTTPClient(baseURL string, httpClient *http.Client, log logger.Logger, opts Options) *HTTPClient {
	c := &HTTPClient{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}

	if opts.BreakerFailures == 0 {
		return c
	}

	failures := opts.BreakerFailures
	cooldown := opts.BreakerCooldown
	if cooldown == 0 {
		cooldown = 30 * time.Second
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "scores-api",
		MaxRequests: opts.BreakerHalfOpens,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("Circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	return c
}

// BaseURL returns the configured scores API base URL
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// BreakerState reports the circuit breaker state. Without a breaker the
// circuit is always closed.
func (c *HTTPClient) BreakerState() gobreaker.State {
	if c.breaker == nil {
		return gobreaker.StateClosed
	}
	return c.breaker.State()
}

type rawResponse struct {
	status int
	body   []byte
}

// doRequest performs one request and returns the raw body. Only transport
// failures are errors here; any HTTP status with a body is a response.
func (c *HTTPClient) doRequest(ctx context.Context, method, path string) (*rawResponse, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, apperrors.Transport(err)
		}
	}

	apiURL := c.baseURL + path
	c.log.Debug("Scores API request", "method", method, "url", apiURL)

	do := func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, apiURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if method == http.MethodPost {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		return &rawResponse{status: resp.StatusCode, body: body}, nil
	}

	var result interface{}
	var err error
	if c.breaker != nil {
		result, err = c.breaker.Execute(do)
	} else {
		result, err = do()
	}
	if err != nil {
		return nil, apperrors.Transport(err)
	}

	raw := result.(*rawResponse)
	c.log.Debug("Scores API response", "status", raw.status, "bytes", len(raw.body))
	return raw, nil
}

// decodeEnvelope parses the {success, data|error} wrapper. A parseable failure
// envelope is an upstream error whatever the HTTP status was.
func decodeEnvelope[T any](raw *rawResponse) (models.Envelope[T], error) {
	var env models.Envelope[T]
	if err := json.Unmarshal(raw.body, &env); err != nil {
		if raw.status != http.StatusOK {
			return env, apperrors.Wrap(err, apperrors.ErrDecode, fmt.Sprintf("scores API returned status %d", raw.status))
		}
		return env, apperrors.Decode(err)
	}
	if !env.Success {
		msg := env.Error
		if msg == "" {
			msg = "unknown error"
		}
		return env, apperrors.Upstream(msg)
	}
	return env, nil
}

// FetchScores retrieves the individual leaderboard
func (c *HTTPClient) FetchScores(ctx context.Context) ([]models.PlayerRow, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, ScoresPath)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[[]models.PlayerRow](raw)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, apperrors.Decodef("scores response missing data")
	}
	return env.Data, nil
}

// FetchTeamScores retrieves the team leaderboard
func (c *HTTPClient) FetchTeamScores(ctx context.Context) ([]models.TeamRow, error) {
	raw, err := c.doRequest(ctx, http.MethodGet, TeamScoresPath)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[[]models.TeamRow](raw)
	if err != nil {
		return nil, err
	}
	if env.Data == nil {
		return nil, apperrors.Decodef("team scores response missing data")
	}
	return env.Data, nil
}

// GenerateReport posts an empty JSON request to the report endpoint
func (c *HTTPClient) GenerateReport(ctx context.Context) (*models.ReportResult, error) {
	raw, err := c.doRequest(ctx, http.MethodPost, GenerateReportPath)
	if err != nil {
		return nil, err
	}

	env, err := decodeEnvelope[json.RawMessage](raw)
	if err != nil {
		return nil, err
	}

	c.log.Info("Report generated", "file_path", env.FilePath)
	return &models.ReportResult{Message: env.Message, FilePath: env.FilePath}, nil
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)
