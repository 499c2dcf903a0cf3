package hashgeo

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBasicMetricsCollector(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	g, err := New(twoModules(), WithMetricsCollector(metrics))
	require.NoError(t, err)

	_, _ = g.IdentifierFromHash(0)
	_, _ = g.IdentifierFromHash(7)
	_, _ = g.PositionFromHash(1)
	_, _ = g.DistanceBetween(0, 1)
	_, _ = g.DistanceBetween(0, 9)

	_, err = New(GeometryMap{}, WithMetricsCollector(metrics))
	require.Error(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(2), stats.BuildCount)
	assert.Equal(t, int64(1), stats.BuildErrors)
	assert.Equal(t, int64(2), stats.BuildModules)
	assert.Equal(t, int64(2), stats.IdentifierLookups)
	assert.Equal(t, int64(1), stats.PositionLookups)
	assert.Equal(t, int64(2), stats.DistanceLookups)
	assert.Equal(t, int64(2), stats.LookupErrors)
}

func TestBasicMetricsAverages(t *testing.T) {
	metrics := &BasicMetricsCollector{}

	assert.Zero(t, metrics.GetStats().BuildAvgNanos)
	assert.Zero(t, metrics.GetStats().SnapshotAvgNanos)

	metrics.RecordBuild(10, 2*time.Millisecond, nil)
	metrics.RecordBuild(10, 4*time.Millisecond, nil)
	metrics.RecordSnapshot(SnapshotSave, 100, time.Second, nil)
	metrics.RecordSnapshot(SnapshotLoad, 50, 3*time.Second, errors.New("boom"))

	stats := metrics.GetStats()
	assert.Equal(t, (3 * time.Millisecond).Nanoseconds(), stats.BuildAvgNanos)
	assert.Equal(t, (2 * time.Second).Nanoseconds(), stats.SnapshotAvgNanos)
	assert.Equal(t, int64(100), stats.SnapshotBytes)
	assert.Equal(t, int64(1), stats.SnapshotErrors)
}

func TestNilOptionsFallBack(t *testing.T) {
	g, err := New(twoModules(), WithMetricsCollector(nil), WithLogger(nil), nil)
	require.NoError(t, err)

	_, err = g.IdentifierFromHash(5)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestOpStrings(t *testing.T) {
	assert.Equal(t, "identifier", LookupIdentifier.String())
	assert.Equal(t, "position", LookupPosition.String())
	assert.Equal(t, "distance", LookupDistance.String())
	assert.Equal(t, "LookupOp(9)", LookupOp(9).String())

	assert.Equal(t, "write", SnapshotWrite.String())
	assert.Equal(t, "read", SnapshotRead.String())
	assert.Equal(t, "save", SnapshotSave.String())
	assert.Equal(t, "load", SnapshotLoad.String())
	assert.Equal(t, "SnapshotOp(7)", SnapshotOp(7).String())
}
