package bootstrap

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magang-intel/internal/favorites"
	"magang-intel/internal/shared/config"
)

const sampleDataset = `[
  {"id_posisi": "1", "posisi": "Data Analyst", "nama_perusahaan": "PT A", "nama_provinsi": "DKI Jakarta",
   "jumlah_kuota": 2, "jumlah_terdaftar": 10, "skills_norm": ["sql", "python"]},
  {"id_posisi": "2", "posisi": "Staff Admin", "nama_perusahaan": "PT B", "nama_provinsi": "Jawa Barat",
   "jumlah_kuota": 0, "jumlah_terdaftar": 3}
]`

func testConfig(t *testing.T) config.Config {
	t.Helper()
	dir := t.TempDir()
	return config.Config{
		Env:              "dev",
		ObjectStoreType:  "local",
		LocalStoreDir:    dir,
		DatasetKey:       "data.json",
		FavoritesStore:   "object",
		SQLitePath:       filepath.Join(dir, "favorites.db"),
		StatusRatePerMin: 12,
	}
}

func get(t *testing.T, app *App, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.Header.Set("X-Client-Id", "browser-1")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestBuildLoadsDatasetFromLocalStore(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(filepath.Join(cfg.LocalStoreDir, "data.json"), []byte(sampleDataset), 0o644))

	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.True(t, app.Dataset.Status().Loaded)
	assert.Equal(t, 2, app.Dataset.Status().Records)
	assert.Nil(t, app.DB)

	rec := get(t, app, "/api/v1/vacancies?max_ratio=100")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total":2`)
}

func TestBuildWithoutDatasetServes503(t *testing.T) {
	app, err := Build(testConfig(t))
	require.NoError(t, err)
	defer app.Close()

	assert.False(t, app.Dataset.Status().Loaded)
	assert.Equal(t, http.StatusServiceUnavailable, get(t, app, "/api/v1/vacancies").Code)
	assert.Equal(t, http.StatusOK, get(t, app, "/api/v1/health").Code)
}

func TestBuildSQLiteFavorites(t *testing.T) {
	cfg := testConfig(t)
	cfg.FavoritesStore = "sqlite"

	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.DB)
	_, ok := app.FavoritesService.Repo.(*favorites.SQLiteRepo)
	assert.True(t, ok)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/favorites/toggle", strings.NewReader(`{"key":"1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Client-Id", "browser-1")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = get(t, app, "/api/v1/favorites")
	assert.Contains(t, rec.Body.String(), `"keys":["1"]`)
	assert.Contains(t, get(t, app, "/api/v1/health").Body.String(), `"database":"ok"`)
}

func TestBuildPostgresWithoutURLFallsBackInDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.FavoritesStore = "postgres"

	app, err := Build(cfg)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.DB)
	_, ok := app.FavoritesService.Repo.(*favorites.MemoryRepo)
	assert.True(t, ok)
}

func TestBuildPostgresWithoutURLFailsInProduction(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"
	cfg.FavoritesStore = "postgres"

	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuildS3RequiresBucket(t *testing.T) {
	cfg := testConfig(t)
	cfg.ObjectStoreType = "s3"
	_, err := Build(cfg)
	assert.Error(t, err)
}
