package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeKVs(t *testing.T) {
	out := sanitizeKVs([]any{
		"action", "upload",
		"api_key", "sk-123",
		"user_id", "demo-user",
		"dangling",
	})

	require.Len(t, out, 7)
	assert.Equal(t, "upload", out[1])
	assert.Equal(t, "[REDACTED]", out[3])
	assert.True(t, strings.HasPrefix(out[5].(string), "hash:"))
	assert.NotContains(t, out[5], "demo-user")
	assert.Equal(t, "dangling", out[6])
}

func TestHashValueStable(t *testing.T) {
	assert.Equal(t, hashValue("demo-user"), hashValue("demo-user"))
	assert.NotEqual(t, hashValue("demo-user"), hashValue("other-user"))
	assert.Equal(t, "", hashValue(""))
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.log")
	log, err := New("prod", path)
	require.NoError(t, err)

	log.With("component", "test").Info("hello", "user_id", "demo-user")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "component")
	assert.NotContains(t, string(data), "demo-user")
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Debug("ignored")
	log.Error("ignored", "k", "v")
	log.Sync()
}
