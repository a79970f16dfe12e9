package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"magang-intel/internal/shared/telemetry"
)

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	restore := telemetry.SetOutput(&buf)
	defer restore()

	router := gin.New()
	router.Use(RequestID(), ClientID(), Logging())
	router.GET("/api/v1/vacancies", func(c *gin.Context) {
		c.Set("resultCount", 12)
		c.Set("datasetVersion", "2026-10-01T00:00:00Z")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/vacancies", nil)
	req.Header.Set("X-Client-Id", "browser-1")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &payload))

	for _, key := range []string{"request_id", "client_id", "duration_ms", "status", "route", "result_count"} {
		assert.Contains(t, payload, key)
	}
	assert.Equal(t, "request.complete", payload["msg"])
	assert.Equal(t, "browser-1", payload["client_id"])
	assert.Equal(t, "/api/v1/vacancies", payload["route"])
	assert.EqualValues(t, 12, payload["result_count"])
	assert.EqualValues(t, 200, payload["status"])
	assert.Equal(t, resp.Header().Get("X-Request-Id"), payload["request_id"])
}
