package testutil

import (
	"math"
	"math/rand"
	"slices"
	"sync"

	"github.com/hupe1980/hashgeo/model"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Position returns a position with every coordinate uniform in [-span, span).
func (r *RNG) Position(span float64) model.Position {
	r.mu.Lock()
	defer r.mu.Unlock()
	return model.Position{
		X: (r.rand.Float64()*2 - 1) * span,
		Y: (r.rand.Float64()*2 - 1) * span,
		Z: (r.rand.Float64()*2 - 1) * span,
	}
}

// Geometry builds a detector-like geometry: strings 1..numStrings on a
// 125 m square grid, OMs 1..omsPerString spaced 17 m apart, each module
// jittered by up to 1 m. Strings are laid out in shuffled order so that
// string number and position are uncorrelated.
func (r *RNG) Geometry(numStrings, omsPerString int) model.GeometryMap {
	r.mu.Lock()
	defer r.mu.Unlock()

	side := int(math.Ceil(math.Sqrt(float64(numStrings))))
	slots := r.rand.Perm(side * side)

	geo := make(model.GeometryMap, numStrings*omsPerString)
	for s := range numStrings {
		slot := slots[s]
		x := float64(slot%side) * 125
		y := float64(slot/side) * 125
		for om := 1; om <= omsPerString; om++ {
			k := model.ModuleKey{Str: int32(s + 1), OM: uint32(om)}
			geo[k] = model.Position{
				X: x + r.rand.Float64()*2 - 1,
				Y: y + r.rand.Float64()*2 - 1,
				Z: 500 - float64(om)*17 + r.rand.Float64()*2 - 1,
			}
		}
	}
	return geo
}

// SampleKeys returns n distinct keys of geo in random order.
// If n exceeds len(geo), all keys are returned.
func (r *RNG) SampleKeys(geo model.GeometryMap, n int) []model.ModuleKey {
	keys := geo.Keys()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Shuffle(len(keys), func(i, j int) {
		keys[i], keys[j] = keys[j], keys[i]
	})
	return keys[:min(n, len(keys))]
}

// Hashes returns n pseudo-random hashes in [0, size).
func (r *RNG) Hashes(n, size int) []model.Hash {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Hash, n)
	for i := range out {
		out[i] = model.Hash(r.rand.Intn(size))
	}
	return out
}

// HexagonGeometry returns seven strings on a unit hexagon (string 1 at the
// centre) with five modules each, spaced one unit apart vertically below
// the origin.
func HexagonGeometry() model.GeometryMap {
	xy := [][2]float64{{0, 0}, {1, 0}, {0.5, 0.866}, {-0.5, 0.866}, {-1, 0}, {-0.5, -0.866}, {0.5, -0.866}}
	geo := make(model.GeometryMap, len(xy)*5)
	for s, p := range xy {
		for om := 1; om <= 5; om++ {
			k := model.ModuleKey{Str: int32(s + 1), OM: uint32(om)}
			geo[k] = model.Position{X: p[0], Y: p[1], Z: float64(-om)}
		}
	}
	return geo
}

// BruteForceDistance computes the distance between a and b straight from
// geo. It panics if either key is missing.
func BruteForceDistance(geo model.GeometryMap, a, b model.ModuleKey) float64 {
	pa, ok := geo[a]
	if !ok {
		panic("testutil: missing key " + a.String())
	}
	pb, ok := geo[b]
	if !ok {
		panic("testutil: missing key " + b.String())
	}
	dx, dy, dz := pa.X-pb.X, pa.Y-pb.Y, pa.Z-pb.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// SortedKeys returns the keys of geo in ascending (string, OM) order,
// independently of model.GeometryMap.Keys.
func SortedKeys(geo model.GeometryMap) []model.ModuleKey {
	keys := make([]model.ModuleKey, 0, len(geo))
	for k := range geo {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b model.ModuleKey) int {
		if a.Str != b.Str {
			if a.Str < b.Str {
				return -1
			}
			return 1
		}
		if a.OM < b.OM {
			return -1
		}
		if a.OM > b.OM {
			return 1
		}
		return 0
	})
	return keys
}
