package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("VECTORTUTOR_BACKEND_URL", "")
	t.Setenv("VITE_BACKEND_URL", "")

	cfg := FromEnv()
	assert.Equal(t, DefaultBackendURL, cfg.BackendURL)
	assert.Equal(t, DefaultUserID, cfg.UserID)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	require.NoError(t, cfg.Validate())
}

func TestFromEnv_BackendURLPrecedence(t *testing.T) {
	t.Setenv("VITE_BACKEND_URL", "http://vite:9000")
	t.Setenv("VECTORTUTOR_BACKEND_URL", "")
	assert.Equal(t, "http://vite:9000", FromEnv().BackendURL)

	t.Setenv("VECTORTUTOR_BACKEND_URL", "https://api.example.com")
	assert.Equal(t, "https://api.example.com", FromEnv().BackendURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"ok", func(*Config) {}, ""},
		{"bad scheme", func(c *Config) { c.BackendURL = "ftp://host" }, "http or https"},
		{"no host", func(c *Config) { c.BackendURL = "http://" }, "no host"},
		{"empty user", func(c *Config) { c.UserID = "  " }, "user id"},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, "timeout"},
		{"no attempts", func(c *Config) { c.Retry.MaxAttempts = 0 }, "retry attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	// Missing file is not an error.
	require.NoError(t, LoadDotEnv())

	t.Setenv("VECTORTUTOR_BACKEND_URL", "")
	require.NoError(t, os.Unsetenv("VECTORTUTOR_BACKEND_URL"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"),
		[]byte("VECTORTUTOR_BACKEND_URL=http://dotenv:8123\n"), 0o600))

	require.NoError(t, LoadDotEnv())
	assert.Equal(t, "http://dotenv:8123", FromEnv().BackendURL)
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vectortutor", "journal.db"), p)

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
