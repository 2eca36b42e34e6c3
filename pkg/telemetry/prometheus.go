package metrics

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"sort"
	"strings"
)

// PrometheusExporter exports metrics in Prometheus text format.
type PrometheusExporter struct {
	collector *Collector
	namespace string
}

// NewPrometheusExporter creates a new Prometheus exporter for the given collector.
// The namespace is prepended to all metric names (e.g., "mlkem").
func NewPrometheusExporter(c *Collector, namespace string) *PrometheusExporter {
	return &PrometheusExporter{
		collector: c,
		namespace: namespace,
	}
}

// Handler returns an http.Handler that serves Prometheus metrics.
func (e *PrometheusExporter) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4; charset=utf-8")
		e.WriteMetrics(w)
	})
}

// WriteMetrics writes all metrics in Prometheus text format to the writer.
func (e *PrometheusExporter) WriteMetrics(w io.Writer) {
	snap := e.collector.Snapshot()
	labels := e.formatLabels(snap.Labels)

	// --- Key generation metrics ---
	e.writeHelp(w, "keygen_total", "Total number of KeyGen calls")
	e.writeType(w, "keygen_total", "counter")
	e.writeMetric(w, "keygen_total", labels, float64(snap.KeyGenTotal))

	e.writeHelp(w, "keygen_failed_total", "Total number of failed KeyGen calls")
	e.writeType(w, "keygen_failed_total", "counter")
	e.writeMetric(w, "keygen_failed_total", labels, float64(snap.KeyGenFailed))

	// --- Encapsulation metrics ---
	e.writeHelp(w, "encapsulate_total", "Total number of Encapsulate calls")
	e.writeType(w, "encapsulate_total", "counter")
	e.writeMetric(w, "encapsulate_total", labels, float64(snap.EncapsTotal))

	e.writeHelp(w, "encapsulate_failed_total", "Total number of failed Encapsulate calls")
	e.writeType(w, "encapsulate_failed_total", "counter")
	e.writeMetric(w, "encapsulate_failed_total", labels, float64(snap.EncapsFailed))

	// --- Decapsulation metrics ---
	e.writeHelp(w, "decapsulate_total", "Total number of Decapsulate calls")
	e.writeType(w, "decapsulate_total", "counter")
	e.writeMetric(w, "decapsulate_total", labels, float64(snap.DecapsTotal))

	e.writeHelp(w, "decapsulate_failed_total", "Total number of Decapsulate calls that returned an error")
	e.writeType(w, "decapsulate_failed_total", "counter")
	e.writeMetric(w, "decapsulate_failed_total", labels, float64(snap.DecapsFailed))

	e.writeHelp(w, "decapsulate_implicit_rejections_total", "Total number of Decapsulate calls that fell back to the implicit-rejection secret")
	e.writeType(w, "decapsulate_implicit_rejections_total", "counter")
	e.writeMetric(w, "decapsulate_implicit_rejections_total", labels, float64(snap.DecapsImplicitRejections))

	// --- Self-test metrics ---
	e.writeHelp(w, "post_failures_total", "Total power-on self-test failures")
	e.writeType(w, "post_failures_total", "counter")
	e.writeMetric(w, "post_failures_total", labels, float64(snap.POSTFailures))

	e.writeHelp(w, "cst_failures_total", "Total conditional self-test failures")
	e.writeType(w, "cst_failures_total", "counter")
	e.writeMetric(w, "cst_failures_total", labels, float64(snap.CSTFailures))

	// --- Uptime ---
	e.writeHelp(w, "uptime_seconds", "Time since the collector was created")
	e.writeType(w, "uptime_seconds", "gauge")
	e.writeMetric(w, "uptime_seconds", labels, snap.Uptime.Seconds())

	// --- Histograms ---
	e.writeHistogram(w, "keygen_duration_microseconds", "KeyGen duration in microseconds", labels, snap.KeyGenLatency)
	e.writeHistogram(w, "encapsulate_duration_microseconds", "Encapsulate duration in microseconds", labels, snap.EncapsLatency)
	e.writeHistogram(w, "decapsulate_duration_microseconds", "Decapsulate duration in microseconds", labels, snap.DecapsLatency)
}

// writeHelp writes a HELP line.
func (e *PrometheusExporter) writeHelp(w io.Writer, name, help string) {
	fmt.Fprintf(w, "# HELP %s_%s %s\n", e.namespace, name, help)
}

// writeType writes a TYPE line.
func (e *PrometheusExporter) writeType(w io.Writer, name, typ string) {
	fmt.Fprintf(w, "# TYPE %s_%s %s\n", e.namespace, name, typ)
}

// writeMetric writes a single metric line.
func (e *PrometheusExporter) writeMetric(w io.Writer, name, labels string, value float64) {
	if labels != "" {
		fmt.Fprintf(w, "%s_%s{%s} %g\n", e.namespace, name, labels, value)
	} else {
		fmt.Fprintf(w, "%s_%s %g\n", e.namespace, name, value)
	}
}

// writeHistogram writes a histogram in Prometheus format.
func (e *PrometheusExporter) writeHistogram(w io.Writer, name, help, labels string, h HistogramSummary) {
	e.writeHelp(w, name, help)
	e.writeType(w, name, "histogram")

	fullName := e.namespace + "_" + name

	// Write bucket counts
	for _, b := range h.Buckets {
		le := fmt.Sprintf("%g", b.UpperBound)
		if math.IsInf(b.UpperBound, 1) {
			le = "+Inf"
		}
		if labels != "" {
			fmt.Fprintf(w, "%s_bucket{%s,le=\"%s\"} %d\n", fullName, labels, le, b.Count)
		} else {
			fmt.Fprintf(w, "%s_bucket{le=\"%s\"} %d\n", fullName, le, b.Count)
		}
	}

	// Write sum and count
	if labels != "" {
		fmt.Fprintf(w, "%s_sum{%s} %g\n", fullName, labels, h.Sum)
		fmt.Fprintf(w, "%s_count{%s} %d\n", fullName, labels, h.Count)
	} else {
		fmt.Fprintf(w, "%s_sum %g\n", fullName, h.Sum)
		fmt.Fprintf(w, "%s_count %d\n", fullName, h.Count)
	}
}

// formatLabels converts Labels to Prometheus label format.
func (e *PrometheusExporter) formatLabels(labels Labels) string {
	if len(labels) == 0 {
		return ""
	}

	// Sort keys for consistent output
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		// Escape label values
		v := escapePromValue(labels[k])
		parts = append(parts, fmt.Sprintf("%s=\"%s\"", k, v))
	}

	return strings.Join(parts, ",")
}

// escapePromValue escapes a string for use as a Prometheus label value.
func escapePromValue(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// --- Convenience Functions ---

// ServePrometheus starts an HTTP server serving Prometheus metrics.
// This is a convenience function for simple use cases.
func ServePrometheus(addr string, c *Collector, namespace string) error {
	exp := NewPrometheusExporter(c, namespace)
	http.Handle("/metrics", exp.Handler())
	return http.ListenAndServe(addr, nil)
}
