package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialize_DiscardsWhenDebugOff(t *testing.T) {
	t.Setenv("TALLY_DEBUG", "")
	t.Setenv("TALLY_DEBUG_FILE", "")

	path, err := Initialize(false, "", 1000)

	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NotNil(t, Logger)
}

func TestInitialize_WritesToCustomFile(t *testing.T) {
	t.Setenv("TALLY_DEBUG", "1")
	t.Setenv("TALLY_DEBUG_FILE", "")
	logFile := filepath.Join(t.TempDir(), "nested", "debug.log")

	path, err := Initialize(false, logFile, 1000)
	require.NoError(t, err)
	assert.Equal(t, logFile, path)

	Logger.Info("hello", "key", "value")

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
	assert.Contains(t, string(data), `"key":"value"`)
}

func TestRotateLogs_RemovesOldest(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	for i, name := range []string{"a.log", "b.log", "c.log"} {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte("x"), 0644))
		ts := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, ts, ts))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "keep.txt"), []byte("x"), 0644))

	require.NoError(t, rotateLogs(dir, 2))

	assert.NoFileExists(t, filepath.Join(dir, "a.log"))
	assert.NoFileExists(t, filepath.Join(dir, "b.log"))
	assert.FileExists(t, filepath.Join(dir, "c.log"))
	assert.FileExists(t, filepath.Join(dir, "keep.txt"))
}
