package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abrezinsky/mastersboard/pkg/scoresapi"
)

// DefaultPath is the config file read when no --config flag is given. It may
// be absent.
const DefaultPath = "mastersboard.yaml"

// EnvPrefix prefixes every environment override
const EnvPrefix = "MASTERSBOARD_"

// Config holds the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	ScoresAPI ScoresAPIConfig `yaml:"scores_api"`
	Report    ReportConfig    `yaml:"report"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Addr        string `yaml:"addr"`
	BaseURL     string `yaml:"base_url"` // public URL used for share links; detected when empty
	OpenBrowser bool   `yaml:"open_browser"`
	Keyboard    bool   `yaml:"keyboard"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // text|json
	HTTP   bool   `yaml:"http"`
}

// ScoresAPIConfig holds the upstream scores API configuration.
type ScoresAPIConfig struct {
	BaseURL          string        `yaml:"base_url"`
	Timeout          time.Duration `yaml:"timeout"` // zero waits indefinitely
	RateLimit        float64       `yaml:"rate_limit"`
	Burst            int           `yaml:"burst"`
	BreakerFailures  uint32        `yaml:"breaker_failures"` // zero disables the breaker
	BreakerCooldown  time.Duration `yaml:"breaker_cooldown"`
	BreakerHalfOpens uint32        `yaml:"breaker_half_opens"`
}

// ReportConfig holds the report button labels.
type ReportConfig struct {
	IdleLabel string `yaml:"idle_label"`
	BusyLabel string `yaml:"busy_label"`
}

// Default returns the configuration used when nothing overrides it
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:     ":8080",
			Keyboard: true,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		ScoresAPI: ScoresAPIConfig{
			BaseURL:         "http://localhost:5000",
			RateLimit:       5,
			Burst:           5,
			BreakerCooldown: 30 * time.Second,
		},
		Report: ReportConfig{
			IdleLabel: "Generate Excel Report",
			BusyLabel: "Generating...",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path, any
// .env file in the working directory and MASTERSBOARD_* environment
// variables, in that order. A missing file is only an error when path is not
// DefaultPath.
func Load(path string) (*Config, error) {
	if err := LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultPath:
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// LoadDotEnv loads the given .env files (".env" when none are given) into the
// process environment without overriding variables that are already set.
// Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from MASTERSBOARD_* variables found by lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	get := func(name string) (string, bool) {
		v, ok := lookup(EnvPrefix + name)
		return v, ok && v != ""
	}

	var errs []error
	parseBool := func(name string, dst *bool) {
		if v, ok := get(name); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}
	parseDuration := func(name string, dst *time.Duration) {
		if v, ok := get(name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	parseUint := func(name string, dst *uint32) {
		if v, ok := get(name); ok {
			n, err := strconv.ParseUint(v, 10, 32)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = uint32(n)
		}
	}

	if v, ok := get("ADDR"); ok {
		c.Server.Addr = v
	}
	if v, ok := get("BASE_URL"); ok {
		c.Server.BaseURL = v
	}
	parseBool("OPEN_BROWSER", &c.Server.OpenBrowser)
	parseBool("KEYBOARD", &c.Server.Keyboard)

	if v, ok := get("LOG_LEVEL"); ok {
		c.Log.Level = v
	}
	if v, ok := get("LOG_FORMAT"); ok {
		c.Log.Format = v
	}
	parseBool("HTTP_LOGGING", &c.Log.HTTP)

	if v, ok := get("SCORES_API_URL"); ok {
		c.ScoresAPI.BaseURL = v
	}
	parseDuration("SCORES_API_TIMEOUT", &c.ScoresAPI.Timeout)
	if v, ok := get("RATE_LIMIT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_LIMIT: %w", EnvPrefix, err))
		} else {
			c.ScoresAPI.RateLimit = f
		}
	}
	if v, ok := get("RATE_BURST"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%sRATE_BURST: %w", EnvPrefix, err))
		} else {
			c.ScoresAPI.Burst = n
		}
	}
	parseUint("BREAKER_FAILURES", &c.ScoresAPI.BreakerFailures)
	parseDuration("BREAKER_COOLDOWN", &c.ScoresAPI.BreakerCooldown)
	parseUint("BREAKER_HALF_OPENS", &c.ScoresAPI.BreakerHalfOpens)

	if v, ok := get("REPORT_LABEL"); ok {
		c.Report.IdleLabel = v
	}
	if v, ok := get("REPORT_BUSY_LABEL"); ok {
		c.Report.BusyLabel = v
	}

	return errors.Join(errs...)
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.ScoresAPI.BaseURL == "" {
		errs = append(errs, errors.New("scores_api.base_url is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}
	if c.ScoresAPI.Timeout < 0 {
		errs = append(errs, errors.New("scores_api.timeout must not be negative"))
	}
	if c.ScoresAPI.RateLimit < 0 {
		errs = append(errs, errors.New("scores_api.rate_limit must not be negative"))
	}
	return errors.Join(errs...)
}

// ScoresOptions returns the scores API client options
func (c *Config) ScoresOptions() scoresapi.Options {
	return scoresapi.Options{
		Timeout:          c.ScoresAPI.Timeout,
		RateLimit:        c.ScoresAPI.RateLimit,
		Burst:            c.ScoresAPI.Burst,
		BreakerFailures:  c.ScoresAPI.BreakerFailures,
		BreakerCooldown:  c.ScoresAPI.BreakerCooldown,
		BreakerHalfOpens: c.ScoresAPI.BreakerHalfOpens,
	}
}
