package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderIncludesCountersAndHistogram(t *testing.T) {
	IncDatasetReload(42)
	IncStatusLookup()
	ObserveQueryDurationMs(3)
	ObserveQueryDurationMs(-1)

	out := Render()
	for _, want := range []string{
		"# TYPE dataset_reload_total counter",
		"dataset_records 42",
		"# TYPE vacancy_query_duration_ms histogram",
		`vacancy_query_duration_ms_bucket{le="+Inf"}`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in metrics output:\n%s", want, out)
		}
	}
}

func TestHistogramRendersCumulativeBuckets(t *testing.T) {
	h := newHistogram([]float64{1, 10})
	h.Observe(0.5)
	h.Observe(5)
	h.Observe(50)
	snap := h.Snapshot()
	if snap.count != 3 {
		t.Fatalf("expected count 3, got %d", snap.count)
	}
	if snap.counts[0] != 1 || snap.counts[1] != 1 {
		t.Fatalf("unexpected bucket counts: %v", snap.counts)
	}

	var buf bytes.Buffer
	writeHistogram(&buf, "h", "test", snap)
	if !strings.Contains(buf.String(), `h_bucket{le="10"} 2`) {
		t.Fatalf("expected cumulative le=10 bucket of 2:\n%s", buf.String())
	}
}
