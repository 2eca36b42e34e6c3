// Package metrics (import path pkg/telemetry) provides observability
// primitives for the mlkem-go library.
//
// The package includes:
//   - A Collector of atomic counters and latency Histograms
//   - Prometheus-compatible metrics export
//   - OpenTelemetry tracing support
//   - Structured logging with levels
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates metrics from ML-KEM key generation,
// encapsulation, and decapsulation operations.
type Collector struct {
	// Key generation metrics
	keyGenTotal   atomic.Uint64
	keyGenFailed  atomic.Uint64
	keyGenLatency *Histogram

	// Encapsulation metrics
	encapsTotal   atomic.Uint64
	encapsFailed  atomic.Uint64
	encapsLatency *Histogram

	// Decapsulation metrics
	decapsTotal              atomic.Uint64
	decapsFailed             atomic.Uint64
	decapsImplicitRejections atomic.Uint64
	decapsLatency            *Histogram

	// Self-test metrics
	postFailures atomic.Uint64
	cstFailures  atomic.Uint64

	createdAt time.Time
	labels    Labels
}

// Labels represents key-value pairs for metric labeling.
type Labels map[string]string

// NewCollector creates a new metrics collector.
func NewCollector(labels Labels) *Collector {
	if labels == nil {
		labels = make(Labels)
	}

	return &Collector{
		keyGenLatency: NewHistogram(OperationLatencyBuckets),
		encapsLatency: NewHistogram(OperationLatencyBuckets),
		decapsLatency: NewHistogram(OperationLatencyBuckets),
		createdAt:     time.Now(),
		labels:        labels,
	}
}

// OperationLatencyBuckets bounds latency observations for KeyGen,
// Encapsulate, and Decapsulate (microseconds).
var OperationLatencyBuckets = []float64{10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000}

// --- Key generation metrics ---

// RecordKeyGen records the outcome and latency of a KeyGen call.
func (c *Collector) RecordKeyGen(d time.Duration, err error) {
	c.keyGenTotal.Add(1)
	if err != nil {
		c.keyGenFailed.Add(1)
	}
	c.keyGenLatency.Observe(float64(d.Microseconds()))
}

// --- Encapsulation metrics ---

// RecordEncapsulate records the outcome and latency of an Encapsulate
// call.
func (c *Collector) RecordEncapsulate(d time.Duration, err error) {
	c.encapsTotal.Add(1)
	if err != nil {
		c.encapsFailed.Add(1)
	}
	c.encapsLatency.Observe(float64(d.Microseconds()))
}

// --- Decapsulation metrics ---

// RecordDecapsulate records the outcome and latency of a Decapsulate
// call. implicitRejection should be true when the re-encryption check
// failed and the pseudorandom fallback secret was returned; this is not
// an error, so it is tracked separately from decapsFailed.
func (c *Collector) RecordDecapsulate(d time.Duration, err error, implicitRejection bool) {
	c.decapsTotal.Add(1)
	if err != nil {
		c.decapsFailed.Add(1)
	}
	if implicitRejection {
		c.decapsImplicitRejections.Add(1)
	}
	c.decapsLatency.Observe(float64(d.Microseconds()))
}

// --- Self-test metrics ---

// RecordPOSTFailure increments the power-on self-test failure counter.
func (c *Collector) RecordPOSTFailure() {
	c.postFailures.Add(1)
}

// RecordCSTFailure increments the conditional self-test failure counter.
func (c *Collector) RecordCSTFailure() {
	c.cstFailures.Add(1)
}

// --- Snapshot ---

// Snapshot is a point-in-time view of all metrics.
type Snapshot struct {
	Timestamp time.Time
	Uptime    time.Duration

	KeyGenTotal  uint64
	KeyGenFailed uint64

	EncapsTotal  uint64
	EncapsFailed uint64

	DecapsTotal              uint64
	DecapsFailed             uint64
	DecapsImplicitRejections uint64

	POSTFailures uint64
	CSTFailures  uint64

	KeyGenLatency HistogramSummary
	EncapsLatency HistogramSummary
	DecapsLatency HistogramSummary

	Labels Labels
}

// Snapshot returns a point-in-time snapshot of all metrics.
func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Timestamp:                time.Now(),
		Uptime:                   time.Since(c.createdAt),
		KeyGenTotal:              c.keyGenTotal.Load(),
		KeyGenFailed:             c.keyGenFailed.Load(),
		EncapsTotal:              c.encapsTotal.Load(),
		EncapsFailed:             c.encapsFailed.Load(),
		DecapsTotal:              c.decapsTotal.Load(),
		DecapsFailed:             c.decapsFailed.Load(),
		DecapsImplicitRejections: c.decapsImplicitRejections.Load(),
		POSTFailures:             c.postFailures.Load(),
		CSTFailures:              c.cstFailures.Load(),
		KeyGenLatency:            c.keyGenLatency.Summary(),
		EncapsLatency:            c.encapsLatency.Summary(),
		DecapsLatency:            c.decapsLatency.Summary(),
		Labels:                   c.labels,
	}
}

// Reset clears all metrics. Intended for tests.
func (c *Collector) Reset() {
	c.keyGenTotal.Store(0)
	c.keyGenFailed.Store(0)
	c.encapsTotal.Store(0)
	c.encapsFailed.Store(0)
	c.decapsTotal.Store(0)
	c.decapsFailed.Store(0)
	c.decapsImplicitRejections.Store(0)
	c.postFailures.Store(0)
	c.cstFailures.Store(0)
	c.keyGenLatency.Reset()
	c.encapsLatency.Reset()
	c.decapsLatency.Reset()
	c.createdAt = time.Now()
}

// --- Global collector ---

var (
	globalCollector     *Collector
	globalCollectorOnce sync.Once
)

// Global returns the global metrics collector, creating one with
// default settings if not already initialized.
func Global() *Collector {
	globalCollectorOnce.Do(func() {
		globalCollector = NewCollector(Labels{"instance": "default"})
	})
	return globalCollector
}

// SetGlobal sets the global metrics collector. Should be called during
// initialization before any metrics are recorded.
func SetGlobal(c *Collector) {
	// Consume the Once so a later Global() does not replace c.
	globalCollectorOnce.Do(func() {})
	globalCollector = c
}
