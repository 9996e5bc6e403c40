package main

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	prev := log.GetLevel()
	t.Cleanup(func() { log.SetLevel(prev) })

	require.NoError(t, setupLogger("debug"))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	assert.Error(t, setupLogger("loud"))
	assert.Equal(t, log.InfoLevel, log.GetLevel())
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()

	assert.NoError(t, loadEnvFile(filepath.Join(dir, "missing.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_TEST_ENV_FILE=loaded\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("STORE_TEST_ENV_FILE") })

	require.NoError(t, loadEnvFile(path))
	assert.Equal(t, "loaded", os.Getenv("STORE_TEST_ENV_FILE"))
}
