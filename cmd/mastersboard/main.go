package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/abrezinsky/mastersboard/internal/app"
	"github.com/abrezinsky/mastersboard/internal/browser"
	"github.com/abrezinsky/mastersboard/internal/config"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/services"
	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
	"github.com/abrezinsky/mastersboard/web"
)

// ANSI escape codes
const (
	reset  = "\033[0m"
	yellow = "\033[33m"
	red    = "\033[31m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	bold   = "\033[1m"
)

var version = "dev"

// printBanner displays the logo box
func printBanner(w io.Writer) {
	const width = 62
	border := strings.Repeat("═", width)

	logo := []string{
		"          __  __           _                             ",
		"         |  \\/  | __ _ ___| |_ ___ _ __ ___              ",
		"         | |\\/| |/ _` / __| __/ _ \\ '__/ __|             ",
		"         | |  | | (_| \\__ \\ ||  __/ |  \\__ \\             ",
		"         |_|  |_|\\__,_|___/\\__\\___|_|  |___/             ",
		"                     leaderboard " + version,
	}

	fmt.Fprintf(w, "\n  %s╔%s╗%s\n", green, border, reset)
	for _, line := range logo {
		if n := len([]rune(line)); n < width {
			line += strings.Repeat(" ", width-n)
		}
		fmt.Fprintf(w, "  %s║%s%s%s║%s\n", green, yellow, line, green, reset)
	}
	fmt.Fprintf(w, "  %s╚%s╝%s\n\n", green, border, reset)
}

func main() {
	if err := newCLI(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%sError:%s %v\n", red, reset, err)
		os.Exit(1)
	}
}

func newCLI(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "mastersboard",
		Usage:     "Masters tournament leaderboard and team pool standings",
		Version:   version,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   config.DefaultPath,
				Usage:   "YAML config file",
				EnvVars: []string{config.EnvPrefix + "CONFIG"},
			},
			&cli.StringFlag{Name: "log-level", Usage: "log level: debug, info, warn, error"},
			&cli.StringFlag{Name: "log-format", Usage: "log format: text or json"},
			&cli.StringFlag{Name: "scores-api", Usage: "scores API base URL"},
		},
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			exportCommand(),
		},
	}
}

// loadConfig reads the config file and environment, then applies flags
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("log-format") {
		cfg.Log.Format = c.String("log-format")
	}
	if c.IsSet("scores-api") {
		cfg.ScoresAPI.BaseURL = c.String("scores-api")
	}
	if c.IsSet("addr") {
		cfg.Server.Addr = c.String("addr")
	}
	if c.IsSet("base-url") {
		cfg.Server.BaseURL = c.String("base-url")
	}
	if c.IsSet("open") {
		cfg.Server.OpenBrowser = c.Bool("open")
	}
	if c.IsSet("no-keyboard") {
		cfg.Server.Keyboard = !c.Bool("no-keyboard")
	}
	if c.IsSet("http-log") {
		cfg.Log.HTTP = c.Bool("http-log")
	}

	return cfg, cfg.Validate()
}

func newLogger(cfg *config.Config, w io.Writer) *logger.SlogLogger {
	return logger.NewWithOptions(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Output: w,
	})
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "serve the leaderboard pages (default)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Usage: "listen address (default \":8080\")"},
			&cli.StringFlag{Name: "base-url", Usage: "public URL for share links (detected when empty)"},
			&cli.BoolFlag{Name: "open", Usage: "open the leaderboard in the browser"},
			&cli.BoolFlag{Name: "no-keyboard", Usage: "disable keyboard shortcuts"},
			&cli.BoolFlag{Name: "no-banner", Usage: "skip the startup banner"},
			&cli.BoolFlag{Name: "http-log", Usage: "log every HTTP request"},
		},
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	out := c.App.Writer
	if !c.Bool("no-banner") {
		printBanner(out)
	}

	appLog := newLogger(cfg, out)
	client := scoresapi.NewHTTPClient(cfg.ScoresAPI.BaseURL, appLog, cfg.ScoresOptions())

	a, err := app.New(cfg, appLog, client, web.GetTemplatesFS(), web.GetStaticFS())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.Addr, err)
	}

	sigCtx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(sigCtx)
	defer cancel()

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- a.Serve(ctx, ln)
	}()

	launcher := browser.NewLauncher(appLog)
	if cfg.Server.OpenBrowser {
		if err := launcher.Open(a.URL(services.BoardScores)); err != nil {
			appLog.Warn("Could not open browser", "error", err)
		}
	}

	if cfg.Server.Keyboard && stdinIsTerminal() {
		keys := &keyboard{
			app:      a,
			log:      appLog,
			launcher: launcher,
			out:      out,
			quit:     cancel,
		}
		printKeyboardHelp(out)
		go listenForKeyboard(ctx, keys)
	}

	return <-serverErr
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write an Excel workbook of both leaderboards",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "output file (default masters_scores_<timestamp>.xlsx)",
			},
		},
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	appLog := newLogger(cfg, c.App.ErrWriter)
	client := scoresapi.NewHTTPClient(cfg.ScoresAPI.BaseURL, appLog, cfg.ScoresOptions())

	path := c.String("out")
	if path == "" {
		path = services.ExportFileName(time.Now())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := services.NewExporter(appLog, client).Write(c.Context, f); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Fprintf(c.App.Writer, "%sWrote %s%s\n", green, path, reset)
	return nil
}
