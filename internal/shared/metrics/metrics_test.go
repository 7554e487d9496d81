package metrics

import (
	"bytes"
	"strings"
	"testing"
)

func TestHistogramBucketsAreCumulative(t *testing.T) {
	h := newHistogram([]float64{10, 100})
	h.Observe(5)
	h.Observe(50)
	h.Observe(500)

	var buf bytes.Buffer
	writeHistogram(&buf, "x", "test", h.Snapshot())
	rendered := buf.String()

	for _, want := range []string{
		`x_bucket{le="10"} 1`,
		`x_bucket{le="100"} 2`,
		`x_bucket{le="+Inf"} 3`,
		`x_sum 555`,
		`x_count 3`,
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("expected %q in output:\n%s", want, rendered)
		}
	}
}

func TestRenderIncludesCounters(t *testing.T) {
	IncUsernameCreated()
	out := Render()
	if !strings.Contains(out, "# TYPE usernames_created_total counter") {
		t.Fatalf("missing usernames counter:\n%s", out)
	}
	if !strings.Contains(out, "resume_llm_duration_ms_count") {
		t.Fatalf("missing llm histogram:\n%s", out)
	}
}
