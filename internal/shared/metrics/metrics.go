package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
)

var (
	cropOpenedTotal    atomic.Uint64
	cropConfirmedTotal atomic.Uint64
	cropCancelledTotal atomic.Uint64
	cropExpiredTotal   atomic.Uint64
	cropActive         atomic.Int64
	exportTotal        atomic.Uint64

	renderDuration = newHistogram([]float64{1, 2, 5, 10, 25, 50, 100, 250})
	exportDuration = newHistogram([]float64{10, 25, 50, 100, 250, 500, 1000})
)

// IncCropOpened records a new crop session.
func IncCropOpened() {
	cropOpenedTotal.Add(1)
	cropActive.Add(1)
}

// IncCropConfirmed records a confirmed crop session.
func IncCropConfirmed() {
	cropConfirmedTotal.Add(1)
	cropActive.Add(-1)
}

// IncCropCancelled records a cancelled crop session.
func IncCropCancelled() {
	cropCancelledTotal.Add(1)
	cropActive.Add(-1)
}

// IncCropExpired records a crop session swept after going idle.
func IncCropExpired() {
	cropExpiredTotal.Add(1)
	cropActive.Add(-1)
}

// IncExport counts a generated PDF.
func IncExport() {
	exportTotal.Add(1)
}

// ObserveRender records a crop composition duration.
func ObserveRender(d time.Duration) {
	renderDuration.Observe(millis(d))
}

// ObserveExport records a PDF export duration.
func ObserveExport(d time.Duration) {
	exportDuration.Observe(millis(d))
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
	writeCounter(&buf, "crop_sessions_opened_total", "Crop sessions opened", cropOpenedTotal.Load())
	writeCounter(&buf, "crop_sessions_confirmed_total", "Crop sessions confirmed", cropConfirmedTotal.Load())
	writeCounter(&buf, "crop_sessions_cancelled_total", "Crop sessions cancelled", cropCancelledTotal.Load())
	writeCounter(&buf, "crop_sessions_expired_total", "Crop sessions swept after idling", cropExpiredTotal.Load())
	writeGauge(&buf, "crop_sessions_active", "Crop sessions currently open", cropActive.Load())
	writeCounter(&buf, "resume_exports_total", "PDF exports generated", exportTotal.Load())
	writeHistogram(&buf, "crop_render_duration_ms", "Crop render duration in milliseconds", renderDuration.Snapshot())
	writeHistogram(&buf, "resume_export_duration_ms", "PDF export duration in milliseconds", exportDuration.Snapshot())
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
	if value < 0 {
		value = 0
	}
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

func millis(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
