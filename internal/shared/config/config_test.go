package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "")
	t.Setenv("FAVORITES_STORE", "")
	t.Setenv("DATASET_RELOAD_INTERVAL", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, "data.json", cfg.DatasetKey)
	assert.Equal(t, 6*time.Hour, cfg.DatasetReloadInterval)
	assert.Equal(t, "object", cfg.FavoritesStore)
	assert.Equal(t, defaultStatusAPIBase, cfg.StatusAPIBase)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("MAGANG_TEST_ONLY=from-file\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("MAGANG_TEST_ONLY") })

	_ = Load()
	assert.Equal(t, "from-file", os.Getenv("MAGANG_TEST_ONLY"))
}

func TestNormalizeFavoritesStore(t *testing.T) {
	assert.Equal(t, "postgres", normalizeFavoritesStore("", "postgres://x"))
	assert.Equal(t, "object", normalizeFavoritesStore("", ""))
	assert.Equal(t, "sqlite", normalizeFavoritesStore("SQLite", "postgres://x"))
	assert.Equal(t, "memory", normalizeFavoritesStore("memory", ""))
}

func TestGetDurationFallsBackOnInvalid(t *testing.T) {
	t.Setenv("SOME_INTERVAL", "soon")
	assert.Equal(t, time.Minute, getDuration("SOME_INTERVAL", time.Minute))
	t.Setenv("SOME_INTERVAL", "90s")
	assert.Equal(t, 90*time.Second, getDuration("SOME_INTERVAL", time.Minute))
}

// chdir changes the working directory for the duration of the test,
// equivalent to testing.T.Chdir (Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
