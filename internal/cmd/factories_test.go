package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tally/internal/services"
)

func TestContainer_OpensHistoryLazily(t *testing.T) {
	home := t.TempDir()
	t.Setenv("TALLY_HOME", home)
	dbPath := filepath.Join(home, "history.db")

	c, err := NewContainer()
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	c.NewAcquisitionService(nil, false, services.AcquisitionOptions{ScratchRoot: t.TempDir()})
	assert.NoFileExists(t, dbPath)

	history, err := c.History()
	require.NoError(t, err)
	require.NotNil(t, history)
	assert.FileExists(t, dbPath)

	again, err := c.History()
	require.NoError(t, err)
	assert.Same(t, history, again)
}

func TestContainer_HistoryUnavailable(t *testing.T) {
	// TALLY_HOME is a file, so the database directory can't be created
	home := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(home, []byte("x"), 0644))
	t.Setenv("TALLY_HOME", home)

	c, err := NewContainer()
	require.NoError(t, err)

	svc := c.NewAcquisitionService(nil, true, services.AcquisitionOptions{ScratchRoot: t.TempDir()})
	assert.NotNil(t, svc)

	history, err := c.History()
	assert.Error(t, err)
	assert.Nil(t, history)
	assert.NoError(t, c.Close())
}
