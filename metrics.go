package hashgeo

import (
	"fmt"
	"sync/atomic"
	"time"
)

// LookupOp identifies a hash lookup for metrics.
type LookupOp uint8

const (
	// LookupIdentifier is IdentifierFromHash.
	LookupIdentifier LookupOp = iota
	// LookupPosition is PositionFromHash.
	LookupPosition
	// LookupDistance is DistanceBetween.
	LookupDistance
)

func (op LookupOp) String() string {
	switch op {
	case LookupIdentifier:
		return "identifier"
	case LookupPosition:
		return "position"
	case LookupDistance:
		return "distance"
	default:
		return fmt.Sprintf("LookupOp(%d)", uint8(op))
	}
}

// SnapshotOp identifies a snapshot operation for metrics and logs.
type SnapshotOp uint8

const (
	// SnapshotWrite is HashedGeometry.Write.
	SnapshotWrite SnapshotOp = iota
	// SnapshotRead is Read.
	SnapshotRead
	// SnapshotSave is HashedGeometry.Save.
	SnapshotSave
	// SnapshotLoad is Load.
	SnapshotLoad
)

func (op SnapshotOp) String() string {
	switch op {
	case SnapshotWrite:
		return "write"
	case SnapshotRead:
		return "read"
	case SnapshotSave:
		return "save"
	case SnapshotLoad:
		return "load"
	default:
		return fmt.Sprintf("SnapshotOp(%d)", uint8(op))
	}
}

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see examples/observability).
type MetricsCollector interface {
	// RecordBuild is called after each construction of a HashedGeometry,
	// including rebuilds from a snapshot.
	RecordBuild(modules int, duration time.Duration, err error)

	// RecordLookup is called after each hash lookup.
	RecordLookup(op LookupOp, err error)

	// RecordSnapshot is called after each snapshot write, read, save or load.
	// bytes is the encoded size moved.
	RecordSnapshot(op SnapshotOp, bytes int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(int, time.Duration, error)                  {}
func (NoopMetricsCollector) RecordLookup(LookupOp, error)                          {}
func (NoopMetricsCollector) RecordSnapshot(SnapshotOp, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount        atomic.Int64
	BuildErrors       atomic.Int64
	BuildModules      atomic.Int64
	BuildTotalNanos   atomic.Int64
	IdentifierLookups atomic.Int64
	PositionLookups   atomic.Int64
	DistanceLookups   atomic.Int64
	LookupErrors      atomic.Int64
	SnapshotCount     atomic.Int64
	SnapshotErrors    atomic.Int64
	SnapshotBytes     atomic.Int64
	SnapshotNanos     atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(modules int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildModules.Add(int64(modules))
}

// RecordLookup implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLookup(op LookupOp, err error) {
	switch op {
	case LookupIdentifier:
		b.IdentifierLookups.Add(1)
	case LookupPosition:
		b.PositionLookups.Add(1)
	case LookupDistance:
		b.DistanceLookups.Add(1)
	}
	if err != nil {
		b.LookupErrors.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(_ SnapshotOp, bytes int, duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(int64(bytes))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:        b.BuildCount.Load(),
		BuildErrors:       b.BuildErrors.Load(),
		BuildModules:      b.BuildModules.Load(),
		BuildAvgNanos:     avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		IdentifierLookups: b.IdentifierLookups.Load(),
		PositionLookups:   b.PositionLookups.Load(),
		DistanceLookups:   b.DistanceLookups.Load(),
		LookupErrors:      b.LookupErrors.Load(),
		SnapshotCount:     b.SnapshotCount.Load(),
		SnapshotErrors:    b.SnapshotErrors.Load(),
		SnapshotBytes:     b.SnapshotBytes.Load(),
		SnapshotAvgNanos:  avg(b.SnapshotNanos.Load(), b.SnapshotCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount        int64
	BuildErrors       int64
	BuildModules      int64
	BuildAvgNanos     int64
	IdentifierLookups int64
	PositionLookups   int64
	DistanceLookups   int64
	LookupErrors      int64
	SnapshotCount     int64
	SnapshotErrors    int64
	SnapshotBytes     int64
	SnapshotAvgNanos  int64
}
