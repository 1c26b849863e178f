package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBackendURL is used when no backend URL is configured.
	DefaultBackendURL = "http://localhost:8000"

	// DefaultUserID is the static placeholder identity sent with every
	// request. It is not derived from authentication.
	DefaultUserID = "demo-user"
)

// Config holds all client configuration.
type Config struct {
	// BackendURL is the base URL of the study backend.
	BackendURL string

	// UserID is sent as user_id on every request.
	UserID string

	// Timeout bounds a single network call, including retries.
	Timeout time.Duration

	Retry RetryConfig

	// DBPath is the SQLite file holding the request journal.
	DBPath string

	// LogFile receives structured logs. The terminal belongs to the UI.
	LogFile string

	// LogMode is "dev" or "prod".
	LogMode string
}

// RetryConfig configures retries of idempotent reads.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		BackendURL: DefaultBackendURL,
		UserID:     DefaultUserID,
		Timeout:    60 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		LogMode: "dev",
	}
}

// LoadDotEnv loads a .env file from the working directory if one exists.
// Variables already present in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(".env"); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("stat .env: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values.
func FromEnv() Config {
	cfg := DefaultConfig()

	// VITE_BACKEND_URL keeps .env files written for the web client working.
	if u := os.Getenv("VITE_BACKEND_URL"); u != "" {
		cfg.BackendURL = u
	}
	if u := os.Getenv("VECTORTUTOR_BACKEND_URL"); u != "" {
		cfg.BackendURL = u
	}
	if p := os.Getenv("VECTORTUTOR_DB"); p != "" {
		cfg.DBPath = p
	}
	if p := os.Getenv("VECTORTUTOR_LOG_FILE"); p != "" {
		cfg.LogFile = p
	}
	if m := os.Getenv("VECTORTUTOR_LOG_MODE"); m != "" {
		cfg.LogMode = m
	}

	return cfg
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	u, err := url.Parse(c.BackendURL)
	if err != nil {
		return fmt.Errorf("invalid backend URL %q: %w", c.BackendURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("backend URL %q must use http or https", c.BackendURL)
	}
	if u.Host == "" {
		return fmt.Errorf("backend URL %q has no host", c.BackendURL)
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user id must not be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Retry.MaxAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.MaxAttempts)
	}
	return nil
}

// DefaultDBPath resolves the journal database path:
// $XDG_DATA_HOME/vectortutor/journal.db, else ~/.local/share/vectortutor/journal.db.
func DefaultDBPath() (string, error) {
	dir, err := xdgDir("XDG_DATA_HOME", ".local", "share")
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "vectortutor", "journal.db")
	return p, EnsureDir(p)
}

// DefaultLogPath resolves the log file path:
// $XDG_STATE_HOME/vectortutor/vectortutor.log, else ~/.local/state/vectortutor/vectortutor.log.
func DefaultLogPath() (string, error) {
	dir, err := xdgDir("XDG_STATE_HOME", ".local", "state")
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, "vectortutor", "vectortutor.log")
	return p, EnsureDir(p)
}

func xdgDir(env string, fallback ...string) (string, error) {
	if d := os.Getenv(env); d != "" {
		return d, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(append([]string{home}, fallback...)...), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
