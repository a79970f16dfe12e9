package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"magang-intel/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		resultCount, _ := c.Get("resultCount")
		datasetVersion, _ := c.Get("datasetVersion")

		telemetry.Info("request.complete", map[string]any{
			"request_id":      RequestIDFromContext(c),
			"method":          c.Request.Method,
			"path":            c.Request.URL.Path,
			"route":           c.FullPath(),
			"status":          c.Writer.Status(),
			"duration_ms":     float64(latency.Microseconds()) / 1000.0,
			"client_id":       ClientIDFromContext(c),
			"result_count":    resultCount,
			"dataset_version": datasetVersion,
			"client_ip":       c.ClientIP(),
			"user_agent":      c.Request.UserAgent(),
		})
	}
}
