package vacancies_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magang-intel/internal/shared/telemetry"
	"magang-intel/internal/vacancies"
)

type staticProvider struct {
	snap *vacancies.Snapshot
}

func (p staticProvider) Current() *vacancies.Snapshot { return p.snap }

func newRouter(t *testing.T, snap *vacancies.Snapshot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	restore := telemetry.SetOutput(io.Discard)
	t.Cleanup(restore)

	h := vacancies.NewHandler(vacancies.NewService(staticProvider{snap: snap}))
	h.Now = func() time.Time { return time.Date(2026, time.October, 16, 8, 0, 0, 0, time.UTC) }
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func loaded() *vacancies.Snapshot {
	records := []vacancies.Vacancy{
		{PositionID: "1", Title: "Data Analyst", Company: "PT A", Province: "Jawa Barat", Quota: 2, Registered: 10, Skills: []string{"sql", "python"}},
		{PositionID: "2", Title: "Web Developer", Company: "PT B", Province: "Jawa Barat", Quota: 4, Registered: 4, Skills: []string{"javascript"}},
		{PositionID: "3", Title: "Staf Gudang", Company: "PT C", Province: "Bali", Quota: 0, Registered: 0},
		{PositionID: "4", Title: "Admin Data", Company: "PT A", Province: "Bali", Quota: 1, Registered: 30},
	}
	return vacancies.NewSnapshot(records, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.UTC), "v1")
}

func get(t *testing.T, r http.Handler, url string) *httptest.ResponseRecorder {
	t.Helper()
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, url, nil))
	return resp
}

type pageBody struct {
	Total int `json:"total"`
	Items []struct {
		Key              string   `json:"key"`
		Category         string   `json:"category"`
		MatchCount       int      `json:"matchCount"`
		CompetitionRatio *float64 `json:"competitionRatio"`
	} `json:"items"`
	Facets  vacancies.FacetValues `json:"facets"`
	Version string                `json:"version"`
}

func decodePage(t *testing.T, resp *httptest.ResponseRecorder) pageBody {
	t.Helper()
	var body pageBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	return body
}

func TestListDefaults(t *testing.T) {
	r := newRouter(t, loaded())
	resp := get(t, r, "/api/v1/vacancies")
	require.Equal(t, http.StatusOK, resp.Code)

	body := decodePage(t, resp)
	assert.Equal(t, 3, body.Total)
	require.Len(t, body.Items, 3)
	assert.Equal(t, "1", body.Items[0].Key)
	assert.Equal(t, 2, body.Items[0].MatchCount)
	assert.Equal(t, "Data & AI", body.Items[0].Category)
	assert.Nil(t, body.Items[2].CompetitionRatio)
	assert.Equal(t, "v1", body.Version)
}

func TestListFiltersAndLimit(t *testing.T) {
	r := newRouter(t, loaded())

	body := decodePage(t, get(t, r, "/api/v1/vacancies?province=Jawa+Barat&limit=1"))
	assert.Equal(t, 2, body.Total)
	assert.Len(t, body.Items, 1)
	assert.Equal(t, []string{"Bali", "Jawa Barat"}, body.Facets.Provinces)

	body = decodePage(t, get(t, r, "/api/v1/vacancies?max_ratio=50&limit=all"))
	assert.Equal(t, 4, body.Total)
	assert.Len(t, body.Items, 4)

	body = decodePage(t, get(t, r, "/api/v1/vacancies?max_ratio=0&limit=all"))
	assert.Equal(t, 1, body.Total)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "3", body.Items[0].Key)

	body = decodePage(t, get(t, r, "/api/v1/vacancies?max_ratio=1&limit=all"))
	assert.Equal(t, 2, body.Total)

	body = decodePage(t, get(t, r, "/api/v1/vacancies?province=+Bali+"))
	assert.Equal(t, 0, body.Total)

	body = decodePage(t, get(t, r, "/api/v1/vacancies?skills="))
	for _, it := range body.Items {
		assert.Zero(t, it.MatchCount)
	}
}

func TestListColumnSort(t *testing.T) {
	r := newRouter(t, loaded())
	body := decodePage(t, get(t, r, "/api/v1/vacancies?sort=ratio&dir=desc"))
	require.Len(t, body.Items, 3)
	assert.Equal(t, "1", body.Items[0].Key)
	assert.Equal(t, "3", body.Items[2].Key)
}

func TestListRejectsBadInput(t *testing.T) {
	r := newRouter(t, loaded())
	for _, url := range []string{
		"/api/v1/vacancies?sort=salary",
		"/api/v1/vacancies?limit=-3",
		"/api/v1/vacancies?max_ratio=-1",
		"/api/v1/vacancies?max_ratio=abc",
		"/api/v1/vacancies?dir=up",
	} {
		resp := get(t, r, url)
		assert.Equal(t, http.StatusBadRequest, resp.Code, url)
		assert.Contains(t, resp.Body.String(), "validation_error", url)
	}
}

func TestDatasetUnavailable(t *testing.T) {
	r := newRouter(t, nil)
	for _, url := range []string{"/api/v1/vacancies", "/api/v1/reports/national", "/api/v1/vacancies/export.csv"} {
		resp := get(t, r, url)
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code, url)
		assert.Contains(t, resp.Body.String(), "dataset_unavailable", url)
	}
}

func TestExportCSV(t *testing.T) {
	r := newRouter(t, loaded())
	resp := get(t, r, "/api/v1/vacancies/export.csv?province=Bali&max_ratio=100")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, `attachment; filename="magang-intel-results-2026-10-16.csv"`, resp.Header().Get("Content-Disposition"))
	assert.True(t, strings.HasPrefix(resp.Header().Get("Content-Type"), "text/csv"))

	lines := strings.Split(strings.TrimRight(resp.Body.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Posisi,Perusahaan,Provinsi,Kategori,Kuota,Pendaftar,Rasio", lines[0])
	assert.Equal(t, "Admin Data,PT A,Bali,Data & AI,1,30,30.00", lines[1])
	assert.Equal(t, "Staf Gudang,PT C,Bali,Operations & Logistics,0,0,—", lines[2])
}

func TestReports(t *testing.T) {
	r := newRouter(t, loaded())

	var national vacancies.NationalStats
	resp := get(t, r, "/api/v1/reports/national")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &national))
	assert.Equal(t, 4, national.Positions)
	assert.Equal(t, 3, national.UniqueCompanies)

	var list struct {
		Items []vacancies.GroupAggregate `json:"items"`
		Total int                        `json:"total"`
	}
	resp = get(t, r, "/api/v1/reports/companies/top?n=1")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Items, 1)
	assert.Equal(t, "PT A", list.Items[0].Key)
	assert.Equal(t, 2, list.Items[0].Positions)

	resp = get(t, r, "/api/v1/reports/provinces?sort=registered&dir=asc")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &list))
	require.Len(t, list.Items, 2)
	assert.Equal(t, "Jawa Barat", list.Items[0].Key)
	assert.Equal(t, 14, list.Items[0].TotalRegistered)
	assert.Equal(t, 2, list.Items[0].UniqueCompanies)

	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/reports/provinces?sort=nope").Code)
	resp = get(t, r, "/api/v1/reports/provinces?sort=registered&dir=up")
	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "validation_error")
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/reports/categories?n=x").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, r, "/api/v1/reports/categories?metric=salary").Code)
}
