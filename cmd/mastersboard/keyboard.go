package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/term"

	"github.com/abrezinsky/mastersboard/internal/app"
	"github.com/abrezinsky/mastersboard/internal/browser"
	"github.com/abrezinsky/mastersboard/internal/logger"
	"github.com/abrezinsky/mastersboard/internal/services"
)

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// keyboard binds single key presses to server actions
type keyboard struct {
	app      *app.App
	log      logger.Logger
	launcher *browser.Launcher
	out      io.Writer
	quit     context.CancelFunc

	wg sync.WaitGroup // background reports and reloads
}

// printKeyboardHelp displays all available keyboard shortcuts
func printKeyboardHelp(w io.Writer) {
	fmt.Fprintf(w, "\n%s%s  Keyboard shortcuts:%s\n", bold, green, reset)
	fmt.Fprintf(w, "    %so%s      - Open leaderboard in browser\n", cyan, reset)
	fmt.Fprintf(w, "    %st%s      - Open team standings in browser\n", cyan, reset)
	fmt.Fprintf(w, "    %sr%s      - Generate report from the leaderboard\n", cyan, reset)
	fmt.Fprintf(w, "    %sg%s      - Generate report from the team standings\n", cyan, reset)
	fmt.Fprintf(w, "    %su%s      - Reload both boards\n", cyan, reset)
	fmt.Fprintf(w, "    %sh%s      - Toggle HTTP request logging\n", cyan, reset)
	fmt.Fprintf(w, "    %sl%s      - Cycle log level (debug → info → warn → error)\n", cyan, reset)
	fmt.Fprintf(w, "    %sq%s      - Quit server\n", cyan, reset)
	fmt.Fprintf(w, "    %s?%s      - Show this help\n\n", cyan, reset)
}

// cycleLogLevel cycles through debug -> info -> warn -> error
func cycleLogLevel(w io.Writer, appLog logger.Logger) {
	var next string
	switch appLog.GetLevel().String() {
	case "DEBUG":
		next = "info"
	case "INFO":
		next = "warn"
	case "WARN":
		next = "error"
	default:
		next = "debug"
	}

	appLog.SetLevel(logger.ParseLevel(next))
	fmt.Fprintf(w, "%sLog level: %s%s%s\n", green, yellow, next, reset)
}

// handle runs the action bound to key. It returns false once the key quits.
func (k *keyboard) handle(ctx context.Context, key byte) bool {
	switch key {
	case 'o', 'O':
		k.open(services.BoardScores)
	case 't', 'T':
		k.open(services.BoardTeams)
	case 'r', 'R':
		k.report(ctx, services.BoardScores)
	case 'g', 'G':
		k.report(ctx, services.BoardTeams)
	case 'u', 'U':
		k.reload(ctx)
	case 'h', 'H':
		if k.log.IsHTTPLoggingEnabled() {
			k.log.DisableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging disabled%s\n", yellow, reset)
		} else {
			k.log.EnableHTTPLogging()
			fmt.Fprintf(k.out, "%sHTTP logging enabled%s\n", green, reset)
		}
	case 'l', 'L':
		cycleLogLevel(k.out, k.log)
	case '?':
		printKeyboardHelp(k.out)
	case 'q', 'Q', 0x03: // Ctrl+C arrives as a byte in raw mode
		fmt.Fprintf(k.out, "%sShutting down server...%s\n", yellow, reset)
		k.quit()
		return false
	}
	return true
}

func (k *keyboard) open(b services.Board) {
	target := k.app.URL(b)
	fmt.Fprintf(k.out, "%sOpening %s in browser...%s\n", cyan, target, reset)
	if err := k.launcher.Open(target); err != nil {
		fmt.Fprintf(k.out, "%sError opening browser: %v%s\n", red, err, reset)
	}
}

func (k *keyboard) report(ctx context.Context, b services.Board) {
	k.wg.Add(1)
	go func() {
		defer k.wg.Done()
		if !k.app.Report(b).Trigger(ctx) {
			fmt.Fprintf(k.out, "%sReport for %s already in progress%s\n", yellow, b, reset)
		}
	}()
}

func (k *keyboard) reload(ctx context.Context) {
	for _, b := range []services.Board{services.BoardScores, services.BoardTeams} {
		k.wg.Add(1)
		go func(b services.Board) {
			defer k.wg.Done()
			// Failures are notified and logged by the load itself
			k.app.Reload(ctx, b)
		}(b)
	}
}

// readKeys feeds bytes from r to k until a key quits, r fails or ctx is done
func readKeys(ctx context.Context, k *keyboard, r io.Reader) {
	buf := make([]byte, 1)
	for ctx.Err() == nil {
		n, err := r.Read(buf)
		if err != nil {
			return
		}
		if n == 0 {
			continue
		}
		if !k.handle(ctx, buf[0]) {
			return
		}
	}
}
