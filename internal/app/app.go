package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/abrezinsky/mastersboard/internal/config"
	"github.com/abrezinsky/mastersboard/internal/handlers"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/metrics"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/internal/websocket"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

const shutdownTimeout = 5 * time.Second

// App holds all application dependencies
type App struct {
	log          logger.Logger
	addr         string
	baseURL      string
	metrics      *metrics.Metrics
	boards       *services.LeaderboardService
	scoresReport *services.ReportTrigger
	teamsReport  *services.ReportTrigger
	share        *services.ShareService
	hub          *websocket.Hub
	handlers     *handlers.Handlers
}

// New creates and initializes a new application instance
func New(cfg *config.Config, log logger.Logger, client scoresapi.Client, templatesFS, staticFS fs.FS) (*App, error) {
	return newApp(cfg, log, client, templatesFS, staticFS, realNetworkProvider{})
}

func newApp(cfg *config.Config, log logger.Logger, client scoresapi.Client, templatesFS, staticFS fs.FS, network networkProvider) (*App, error) {
	if cfg.Log.HTTP {
		log.EnableHTTPLogging()
	}

	m := metrics.New()

	// Report outcomes are logged and pushed to every viewer. Load failures
	// only reach the request that loaded.
	hub := websocket.New(log)
	notifier := services.Notifiers{
		services.LogNotifier{Log: log},
		services.BroadcastNotifier{Broadcaster: hub},
	}

	boards := services.NewLeaderboardService(log, client, m, nil)
	scoresReport := services.NewReportTrigger(services.BoardScores, log, client, m, notifier, cfg.Report.IdleLabel, cfg.Report.BusyLabel)
	teamsReport := services.NewReportTrigger(services.BoardTeams, log, client, m, notifier, cfg.Report.IdleLabel, cfg.Report.BusyLabel)
	scoresReport.OnStateChange(hub.BroadcastControlState)
	teamsReport.OnStateChange(hub.BroadcastControlState)
	hub.Track(scoresReport, teamsReport)

	baseURL := resolveBaseURL(cfg.Server.BaseURL, cfg.Server.Addr, network)
	share := services.NewShareService(baseURL)

	h, err := handlers.New(
		boards,
		scoresReport,
		teamsReport,
		services.NewExporter(log, client),
		services.NewChartService(log, client),
		share,
		templatesFS,
		handlers.NewStaticServer(staticFS),
		hub,
		m.Handler(),
		log,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize handlers: %w", err)
	}

	hub.Start()

	return &App{
		log:          log,
		addr:         cfg.Server.Addr,
		baseURL:      baseURL,
		metrics:      m,
		boards:       boards,
		scoresReport: scoresReport,
		teamsReport:  teamsReport,
		share:        share,
		hub:          hub,
		handlers:     h,
	}, nil
}

// Router returns the configured HTTP router
func (a *App) Router() chi.Router {
	return a.handlers.Router()
}

// BaseURL returns the public URL of the leaderboard
func (a *App) BaseURL() string {
	return a.baseURL
}

// URL returns the public URL of a board page
func (a *App) URL(b services.Board) string {
	return a.share.URL(b)
}

// Report returns the report trigger for a board
func (a *App) Report(b services.Board) *services.ReportTrigger {
	if b == services.BoardTeams {
		return a.teamsReport
	}
	return a.scoresReport
}

// Reload loads a board outside of any page request, as the keyboard shortcut
// does. Failures are notified like any other load.
func (a *App) Reload(ctx context.Context, b services.Board) error {
	_, err := a.boards.Load(ctx, b)
	return err
}

// Run serves HTTP on the configured address until ctx is cancelled
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.addr, err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves HTTP on ln until ctx is cancelled, then shuts down gracefully
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	a.log.Info("Server starting", "addr", ln.Addr().String(), "url", a.baseURL)
	a.log.Info("Team standings", "url", a.URL(services.BoardTeams))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	a.log.Info("Server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
