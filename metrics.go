package molfeat

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
type MetricsCollector interface {
	// RecordScan is called after each batch scan phase.
	// count is the number of molecules scanned, err is nil if successful.
	RecordScan(count int, duration time.Duration, err error)

	// RecordRepresent is called after each per-molecule transform.
	RecordRepresent(duration time.Duration, err error)

	// RecordBatch is called after each batch call.
	// count is the number of molecules attempted, failed is 0 or 1 since
	// batches fail fast on the first error.
	RecordBatch(count, failed int, duration time.Duration)

	// RecordWrite is called after each table write.
	RecordWrite(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordScan(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRepresent(time.Duration, error) {}
func (NoopMetricsCollector) RecordBatch(int, int, time.Duration)  {}
func (NoopMetricsCollector) RecordWrite(time.Duration, error)     {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	ScanCount           atomic.Int64
	ScanErrors          atomic.Int64
	RepresentCount      atomic.Int64
	RepresentErrors     atomic.Int64
	RepresentTotalNanos atomic.Int64
	BatchCount          atomic.Int64
	BatchItems          atomic.Int64
	BatchFailed         atomic.Int64
	WriteCount          atomic.Int64
	WriteErrors         atomic.Int64
	WriteTotalNanos     atomic.Int64
}

// RecordScan implements MetricsCollector.
func (b *BasicMetricsCollector) RecordScan(count int, duration time.Duration, err error) {
	b.ScanCount.Add(1)
	if err != nil {
		b.ScanErrors.Add(1)
	}
}

// RecordRepresent implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRepresent(duration time.Duration, err error) {
	b.RepresentCount.Add(1)
	b.RepresentTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RepresentErrors.Add(1)
	}
}

// RecordBatch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBatch(count, failed int, duration time.Duration) {
	b.BatchCount.Add(1)
	b.BatchItems.Add(int64(count))
	b.BatchFailed.Add(int64(failed))
}

// RecordWrite implements MetricsCollector.
func (b *BasicMetricsCollector) RecordWrite(duration time.Duration, err error) {
	b.WriteCount.Add(1)
	b.WriteTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.WriteErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		ScanCount:         b.ScanCount.Load(),
		ScanErrors:        b.ScanErrors.Load(),
		RepresentCount:    b.RepresentCount.Load(),
		RepresentErrors:   b.RepresentErrors.Load(),
		RepresentAvgNanos: b.getAvgRepresentNanos(),
		BatchCount:        b.BatchCount.Load(),
		BatchItems:        b.BatchItems.Load(),
		BatchFailed:       b.BatchFailed.Load(),
		WriteCount:        b.WriteCount.Load(),
		WriteErrors:       b.WriteErrors.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRepresentNanos() int64 {
	count := b.RepresentCount.Load()
	if count == 0 {
		return 0
	}
	return b.RepresentTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	ScanCount         int64
	ScanErrors        int64
	RepresentCount    int64
	RepresentErrors   int64
	RepresentAvgNanos int64
	BatchCount        int64
	BatchItems        int64
	BatchFailed       int64
	WriteCount        int64
	WriteErrors       int64
}
