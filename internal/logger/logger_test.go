package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesAtConfiguredLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devdir.log")

	log, err := New(&Config{Level: "info", OutputPath: path, Format: "json"})
	require.NoError(t, err)

	log.Debug("hidden message")
	log.With("repo", "alpha").Info("cloned", "ordinal", 1)
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"cloned"`)
	assert.Contains(t, string(data), `"repo":"alpha"`)
	assert.NotContains(t, string(data), "hidden message")
}

func TestNewFallsBackOnUnknownLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devdir.log")

	log, err := New(&Config{Level: "chatty", OutputPath: path})
	require.NoError(t, err)

	log.Info("suppressed")
	log.Warn("kept")
	log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "suppressed")
	assert.Contains(t, string(data), "kept")
}

func TestNop(t *testing.T) {
	log := NewNop()
	log.Error("discarded")
	assert.NotNil(t, log.With("k", "v"))
}
