package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanupOldLogs(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	names := []string{
		"app-2024-03-01.log",
		"app-2024-03-05.log",
		"app-2024-03-10.log",
		"app-garbage.log",
		"other-2024-01-01.log",
	}
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	cleanupOldLogs(dir, 7, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	kept := []string{}
	for _, entry := range entries {
		kept = append(kept, entry.Name())
	}
	assert.ElementsMatch(t, []string{
		"app-2024-03-05.log",
		"app-2024-03-10.log",
		"app-garbage.log",
		"other-2024-01-01.log",
	}, kept)
}
