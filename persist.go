package hashgeo

import (
	"context"
	"io"
	"time"

	"github.com/hupe1980/hashgeo/blobstore"
	"github.com/hupe1980/hashgeo/snapshot"
)

// Snapshot returns the persistable content of g in hash order.
func (g *HashedGeometry) Snapshot() *snapshot.Snapshot {
	return &snapshot.Snapshot{
		Keys:      g.hasher.Keys(),
		Positions: g.positions.Table(),
	}
}

// Write encodes g as a snapshot to w and returns the number of bytes written.
func (g *HashedGeometry) Write(w io.Writer, c snapshot.Compression) (int64, error) {
	start := time.Now()
	n, err := snapshot.Write(w, g.Snapshot(), c)
	g.metrics.RecordSnapshot(SnapshotWrite, int(n), time.Since(start), err)
	return n, err
}

// Read decodes a snapshot from r and rebuilds the geometry. Hashes are
// identical to those of the geometry that wrote it.
func Read(r io.Reader, optFns ...Option) (*HashedGeometry, error) {
	o := applyOptions(optFns)
	start := time.Now()

	cr := &countingReader{r: r}
	s, err := snapshot.Read(cr)
	o.metricsCollector.RecordSnapshot(SnapshotRead, int(cr.n), time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return fromSnapshot(s, o)
}

// Save encodes g and stores it under name in store.
func (g *HashedGeometry) Save(ctx context.Context, store blobstore.BlobStore, name string, c snapshot.Compression) error {
	start := time.Now()

	data, err := snapshot.Encode(g.Snapshot(), c)
	if err == nil {
		err = store.Put(ctx, name, data)
	}
	err = snapshotError(SnapshotSave, name, err)

	g.metrics.RecordSnapshot(SnapshotSave, len(data), time.Since(start), err)
	g.logger.WithModules(g.Size()).LogSnapshot(ctx, SnapshotSave, name, len(data), err)
	return err
}

// Load reads the snapshot stored under name and rebuilds the geometry.
// A missing blob yields an error matching ErrNotFound.
func Load(ctx context.Context, store blobstore.BlobStore, name string, optFns ...Option) (*HashedGeometry, error) {
	o := applyOptions(optFns)
	start := time.Now()

	data, err := blobstore.Get(ctx, store, name)
	var s *snapshot.Snapshot
	if err == nil {
		s, err = snapshot.Decode(data)
	}
	err = snapshotError(SnapshotLoad, name, err)

	o.metricsCollector.RecordSnapshot(SnapshotLoad, len(data), time.Since(start), err)
	o.logger.LogSnapshot(ctx, SnapshotLoad, name, len(data), err)
	if err != nil {
		return nil, err
	}
	return fromSnapshot(s, o)
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
