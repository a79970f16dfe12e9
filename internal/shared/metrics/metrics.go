package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	datasetReloadTotal   atomic.Uint64
	datasetReloadFailed  atomic.Uint64
	datasetRecords       atomic.Int64
	statusLookupTotal    atomic.Uint64
	statusLookupFailed   atomic.Uint64
	favoritesToggleTotal atomic.Uint64
	csvExportTotal       atomic.Uint64

	queryDuration = newHistogram([]float64{1, 5, 10, 25, 50, 100, 250, 500, 1000})
)

// IncDatasetReload counts a successful dataset (re)load and records its size.
func IncDatasetReload(records int) {
	datasetReloadTotal.Add(1)
	datasetRecords.Store(int64(records))
}

// IncDatasetReloadFailed counts a failed dataset (re)load.
func IncDatasetReloadFailed() {
	datasetReloadFailed.Add(1)
}

// IncStatusLookup counts an upstream status lookup.
func IncStatusLookup() {
	statusLookupTotal.Add(1)
}

// IncStatusLookupFailed counts a failed upstream status lookup.
func IncStatusLookupFailed() {
	statusLookupFailed.Add(1)
}

// IncFavoritesToggle counts a favorites toggle.
func IncFavoritesToggle() {
	favoritesToggleTotal.Add(1)
}

// IncCSVExport counts a CSV export.
func IncCSVExport() {
	csvExportTotal.Add(1)
}

// ObserveQueryDurationMs records a vacancy query duration in milliseconds.
func ObserveQueryDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	queryDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounter(&buf, "dataset_reload_total", "Total successful dataset loads", datasetReloadTotal.Load())
	writeCounter(&buf, "dataset_reload_failed_total", "Total failed dataset loads", datasetReloadFailed.Load())
	writeGauge(&buf, "dataset_records", "Records in the current dataset snapshot", datasetRecords.Load())
	writeCounter(&buf, "status_lookup_total", "Total upstream status lookups", statusLookupTotal.Load())
	writeCounter(&buf, "status_lookup_failed_total", "Total failed upstream status lookups", statusLookupFailed.Load())
	writeCounter(&buf, "favorites_toggle_total", "Total favorites toggles", favoritesToggleTotal.Load())
	writeCounter(&buf, "csv_export_total", "Total CSV exports", csvExportTotal.Load())
	writeHistogram(&buf, "vacancy_query_duration_ms", "Vacancy query duration in milliseconds", queryDuration.Snapshot())
	return buf.String()
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
	return out
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeGauge(buf *bytes.Buffer, name, help string, value int64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s gauge\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
