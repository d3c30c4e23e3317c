package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "BATTLECARD_"

// Config holds runtime settings for the player and its CLI.
type Config struct {
	// APIURL is the backend base URL, e.g. http://localhost:5001/api.
	APIURL string `env:"API_URL" envDefault:"http://localhost:5001/api"`

	// RevealLatency drives every staged delay of the disclosure sequence.
	RevealLatency time.Duration `env:"REVEAL_LATENCY" envDefault:"50ms"`

	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	// DiagramURL is a Kroki-compatible rendering service.
	DiagramURL string `env:"DIAGRAM_URL" envDefault:"https://kroki.io"`
	DiagramDir string `env:"DIAGRAM_DIR"`

	DBPath  string `env:"DB"`
	LogFile string `env:"LOG_FILE"`
	LogMode string `env:"LOG_MODE" envDefault:"dev"`
}

// Load reads the configuration from the process environment.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads the configuration from environ, or from the process
// environment when environ is nil. Unset paths resolve to XDG locations.
func LoadFrom(environ map[string]string) (*Config, error) {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(xdgDir("XDG_DATA_HOME", ".local", "share"), "battlecard", "battlecard.db")
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(xdgDir("XDG_STATE_HOME", ".local", "state"), "battlecard", "battlecard.log")
	}
	if cfg.DiagramDir == "" {
		cfg.DiagramDir = filepath.Join(xdgDir("XDG_CACHE_HOME", ".cache"), "battlecard", "diagrams")
	}
	return &cfg, nil
}

// Validate checks the settings that would otherwise fail late.
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil {
		return fmt.Errorf("invalid API URL %q: %w", c.APIURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("API URL %q must be http or https", c.APIURL)
	}
	if c.RevealLatency <= 0 {
		return fmt.Errorf("reveal latency must be positive, got %s", c.RevealLatency)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

func xdgDir(envVar string, fallback ...string) string {
	if d := os.Getenv(envVar); d != "" {
		return d
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return os.TempDir()
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}
