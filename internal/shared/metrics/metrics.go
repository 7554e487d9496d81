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
	textExtractionsTotal       atomic.Uint64
	structuredExtractionsTotal atomic.Uint64
	extractionFailuresTotal    atomic.Uint64
	usernamesCreatedTotal      atomic.Uint64
	usernameFailuresTotal      atomic.Uint64

	llmDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 30000, 60000, 120000})
)

// IncTextExtraction counts a completed résumé text extraction.
func IncTextExtraction() {
	textExtractionsTotal.Add(1)
}

// IncStructuredExtraction counts a completed LLM structured extraction.
func IncStructuredExtraction() {
	structuredExtractionsTotal.Add(1)
}

// IncExtractionFailure counts a failed text or structured extraction.
func IncExtractionFailure() {
	extractionFailuresTotal.Add(1)
}

// IncUsernameCreated counts a newly created username mapping.
func IncUsernameCreated() {
	usernamesCreatedTotal.Add(1)
}

// IncUsernameFailure counts a rejected username mapping.
func IncUsernameFailure() {
	usernameFailuresTotal.Add(1)
}

// ObserveLLMDurationMs records an LLM call duration in milliseconds.
func ObserveLLMDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	llmDuration.Observe(value)
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
	writeCounter(&buf, "resume_text_extractions_total", "Total résumé text extractions", textExtractionsTotal.Load())
	writeCounter(&buf, "resume_structured_extractions_total", "Total LLM structured extractions", structuredExtractionsTotal.Load())
	writeCounter(&buf, "resume_extraction_failures_total", "Total failed extractions", extractionFailuresTotal.Load())
	writeCounter(&buf, "usernames_created_total", "Total username mappings created", usernamesCreatedTotal.Load())
	writeCounter(&buf, "username_failures_total", "Total username mappings rejected", usernameFailuresTotal.Load())
	writeHistogram(&buf, "resume_llm_duration_ms", "LLM structured extraction duration in milliseconds", llmDuration.Snapshot())
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

// Observe counts value into the first bucket whose bound holds it; Snapshot
// consumers accumulate.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
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
