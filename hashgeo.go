package hashgeo

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"runtime"
	"time"

	"github.com/hupe1980/hashgeo/distance"
	"github.com/hupe1980/hashgeo/keyhash"
	"github.com/hupe1980/hashgeo/model"
	"github.com/hupe1980/hashgeo/position"
	"github.com/hupe1980/hashgeo/snapshot"
)

// Re-exported model types, so callers need only import hashgeo.
type (
	// Hash is a dense module hash in [0, Size).
	Hash = model.Hash
	// ModuleKey identifies a module by string and OM number.
	ModuleKey = model.ModuleKey
	// Position is a 3D module position in metres.
	Position = model.Position
	// GeometryMap maps module keys to positions.
	GeometryMap = model.GeometryMap
)

// HashedGeometry is an immutable index over a geometry. Each module key gets
// a dense hash in [0, Size), assigned in ascending (string, OM) order, and
// lookups by hash are constant time.
//
// A HashedGeometry is safe for concurrent use by multiple goroutines.
type HashedGeometry struct {
	hasher    *keyhash.Service
	positions *position.Service
	distances *distance.Service

	logger  *Logger
	metrics MetricsCollector
}

// New hashes every module in geo.
//
// It returns ErrInvalidInput if geo is empty or holds a non-finite position.
// The map is copied, so later changes to geo are not observed.
func New(geo GeometryMap, optFns ...Option) (*HashedGeometry, error) {
	o := applyOptions(optFns)
	start := time.Now()

	g, err := func() (*HashedGeometry, error) {
		if err := geo.Validate(); err != nil {
			return nil, err
		}
		hasher, err := keyhash.New(geo.Keys())
		if err != nil {
			return nil, err
		}
		pos, err := position.New(geo, hasher)
		if err != nil {
			return nil, err
		}
		return build(pos, o)
	}()

	finishBuild(o, len(geo), start, err)
	return g, err
}

// NewSubset hashes only the listed keys of geo. Duplicate keys collapse.
//
// It returns ErrInvalidInput if keys is empty, or a key is missing from geo
// or has a non-finite position. Modules of geo outside keys are ignored.
func NewSubset(geo GeometryMap, keys []ModuleKey, optFns ...Option) (*HashedGeometry, error) {
	o := applyOptions(optFns)
	start := time.Now()

	g, err := func() (*HashedGeometry, error) {
		hasher, err := keyhash.New(keys)
		if err != nil {
			return nil, err
		}
		pos, err := position.New(geo, hasher)
		if err != nil {
			return nil, err
		}
		return build(pos, o)
	}()

	finishBuild(o, len(keys), start, err)
	return g, err
}

// FromPositionService builds a geometry over an existing position service.
// The hash assignment of pos is kept as is; only the distance service is new.
//
// It returns ErrInvalidInput if pos is nil.
func FromPositionService(pos *position.Service, optFns ...Option) (*HashedGeometry, error) {
	if pos == nil {
		return nil, fmt.Errorf("%w: nil position service", ErrInvalidInput)
	}

	o := applyOptions(optFns)
	start := time.Now()

	g, err := build(pos, o)

	finishBuild(o, pos.HashService().Size(), start, err)
	return g, err
}

// fromSnapshot rebuilds a geometry from a decoded snapshot.
func fromSnapshot(s *snapshot.Snapshot, o options) (*HashedGeometry, error) {
	start := time.Now()

	g, err := func() (*HashedGeometry, error) {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		hasher, err := keyhash.New(s.Keys)
		if err != nil {
			return nil, err
		}
		pos, err := position.FromTable(hasher, s.Positions)
		if err != nil {
			return nil, err
		}
		return build(pos, o)
	}()

	finishBuild(o, s.Len(), start, err)
	return g, err
}

func build(pos *position.Service, o options) (*HashedGeometry, error) {
	var distOpts []distance.ServiceOption
	if o.precompute {
		workers := o.workers
		if workers <= 0 {
			workers = runtime.GOMAXPROCS(0)
		}
		distOpts = append(distOpts, distance.WithPrecompute(workers))
	}

	dist, err := distance.NewService(pos, distOpts...)
	if err != nil {
		return nil, err
	}

	return &HashedGeometry{
		hasher:    pos.HashService(),
		positions: pos,
		distances: dist,
		logger:    o.logger,
		metrics:   o.metricsCollector,
	}, nil
}

func finishBuild(o options, modules int, start time.Time, err error) {
	elapsed := time.Since(start)
	o.metricsCollector.RecordBuild(modules, elapsed, err)
	o.logger.LogBuild(context.Background(), modules, o.precompute, elapsed, err)
}

// recordLookup counts a hash lookup and logs rejected hashes at debug level.
func (g *HashedGeometry) recordLookup(op LookupOp, err error) {
	g.metrics.RecordLookup(op, err)
	if err == nil {
		return
	}

	logger := g.logger
	var oor *OutOfRangeError
	if errors.As(err, &oor) {
		logger = logger.WithHash(oor.Hash)
	}
	logger.LogLookupRejected(context.Background(), op, err)
}

// Size returns the number of hashed modules.
func (g *HashedGeometry) Size() int {
	return g.hasher.Size()
}

// IdentifierFromHash returns the module key of h.
// It returns an *OutOfRangeError (ErrOutOfRange) if h is not in [0, Size).
func (g *HashedGeometry) IdentifierFromHash(h Hash) (ModuleKey, error) {
	k, err := g.hasher.KeyFromHash(h)
	g.recordLookup(LookupIdentifier, err)
	return k, err
}

// PositionFromHash returns the position of h.
// It returns an *OutOfRangeError (ErrOutOfRange) if h is not in [0, Size).
func (g *HashedGeometry) PositionFromHash(h Hash) (Position, error) {
	p, err := g.positions.Position(h)
	g.recordLookup(LookupPosition, err)
	return p, err
}

// DistanceBetween returns the Euclidean distance between the modules of a and b.
// The result is symmetric and zero when a == b.
// It returns an *OutOfRangeError (ErrOutOfRange) if either hash is not in [0, Size).
func (g *HashedGeometry) DistanceBetween(a, b Hash) (float64, error) {
	d, err := g.distances.Distance(a, b)
	g.recordLookup(LookupDistance, err)
	return d, err
}

// HashFromIdentifier returns the hash of k, or ErrUnknownKey.
func (g *HashedGeometry) HashFromIdentifier(k ModuleKey) (Hash, error) {
	return g.hasher.HashFromKey(k)
}

// PositionOf returns the position of k, or ErrUnknownKey.
func (g *HashedGeometry) PositionOf(k ModuleKey) (Position, error) {
	return g.positions.PositionOf(k)
}

// DistanceBetweenKeys returns the distance between the modules a and b,
// or ErrUnknownKey if either is not hashed.
func (g *HashedGeometry) DistanceBetweenKeys(a, b ModuleKey) (float64, error) {
	return g.distances.DistanceKeys(a, b)
}

// HoldsHash reports whether h is in [0, Size).
func (g *HashedGeometry) HoldsHash(h Hash) bool {
	return g.hasher.HoldsHash(h)
}

// HoldsKey reports whether k is hashed.
func (g *HashedGeometry) HoldsKey(k ModuleKey) bool {
	return g.hasher.HoldsKey(k)
}

// Keys returns the hashed keys in hash order. The slice is a copy.
func (g *HashedGeometry) Keys() []ModuleKey {
	return g.hasher.Keys()
}

// All iterates (hash, key) pairs in hash order.
func (g *HashedGeometry) All() iter.Seq2[Hash, ModuleKey] {
	return func(yield func(Hash, ModuleKey) bool) {
		for i := range g.hasher.Size() {
			h := Hash(i)
			k, _ := g.hasher.KeyFromHash(h)
			if !yield(h, k) {
				return
			}
		}
	}
}

// Select returns the hashes whose key satisfies pred.
//
//	deepCore := geo.Select(topology.IsDeepCore)
func (g *HashedGeometry) Select(pred func(ModuleKey) bool) *keyhash.HashSet {
	set := keyhash.NewHashSet()
	for h, k := range g.All() {
		if pred(k) {
			set.Add(h)
		}
	}
	return set
}

// VerifyAgainst checks that every hashed module is present in geo at the
// same position. It returns an error wrapping ErrGeometryMismatch otherwise.
// Modules of geo that are not hashed are ignored.
func (g *HashedGeometry) VerifyAgainst(geo GeometryMap) error {
	if err := g.positions.VerifyAgainst(geo); err != nil {
		g.logger.LogMismatch(context.Background(), err)
		return err
	}
	return nil
}

// HashService returns the underlying key hash service.
func (g *HashedGeometry) HashService() *keyhash.Service {
	return g.hasher
}

// PositionService returns the underlying position service.
func (g *HashedGeometry) PositionService() *position.Service {
	return g.positions
}

// DistanceService returns the underlying distance service.
func (g *HashedGeometry) DistanceService() *distance.Service {
	return g.distances
}

// Fingerprint returns the BLAKE3 digest of the canonical snapshot encoding.
// Geometries built from the same keys and positions share a fingerprint.
func (g *HashedGeometry) Fingerprint() (snapshot.Digest, error) {
	return snapshot.Fingerprint(g.Snapshot())
}
