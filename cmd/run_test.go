package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDepsLogsJournalFailure(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "vectortutor.log")

	c := &cobra.Command{}
	c.Flags().String("db", "", "")
	c.Flags().String("log-file", "", "")
	// A directory cannot be opened as a SQLite database.
	require.NoError(t, c.Flags().Set("db", dir))
	require.NoError(t, c.Flags().Set("log-file", logPath))

	d, err := newDeps(c)
	require.Error(t, err)
	assert.Nil(t, d)

	data, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "open journal failed")
}
