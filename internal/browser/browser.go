package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/abrezinsky/mastersboard/internal/logger"
)

// Commander is an interface for executing commands (for testing)
type Commander interface {
	Start(name string, args ...string) error
}

// ExecCommander starts real processes
type ExecCommander struct{}

// Start starts the command without waiting for it
func (ExecCommander) Start(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Launcher opens leaderboard pages in the system browser
type Launcher struct {
	commander Commander
	goos      string
	log       logger.Logger
}

// NewLauncher creates a Launcher for the current platform
func NewLauncher(log logger.Logger) *Launcher {
	return NewLauncherWithCommander(log, ExecCommander{}, runtime.GOOS)
}

// NewLauncherWithCommander creates a Launcher with an explicit commander and
// platform (for testing)
func NewLauncherWithCommander(log logger.Logger, commander Commander, goos string) *Launcher {
	return &Launcher{commander: commander, goos: goos, log: log}
}

// Open launches the browser on rawURL. Only absolute http and https URLs are
// accepted.
func (l *Launcher) Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("refusing to open non-web url %q", rawURL)
	}

	name, args, err := command(l.goos, u.String())
	if err != nil {
		return err
	}

	l.log.Debug("Opening browser", "url", u.String(), "command", name)
	if err := l.commander.Start(name, args...); err != nil {
		l.log.Warn("Failed to open browser", "url", u.String(), "error", err)
		return err
	}
	return nil
}

func command(goos, target string) (string, []string, error) {
	switch goos {
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "darwin":
		return "open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
