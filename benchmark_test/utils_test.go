package benchmark_test

import (
	"testing"

	"github.com/hupe1980/hashgeo"
	"github.com/hupe1980/hashgeo/testutil"
	"github.com/hupe1980/hashgeo/topology"
)

const benchSeed = 4711

// newIC86 hashes the ideal IC86 geometry or fails the benchmark.
func newIC86(b *testing.B, opts ...hashgeo.Option) *hashgeo.HashedGeometry {
	b.Helper()

	geo, err := hashgeo.New(topology.BuildIC86Geometry(), opts...)
	if err != nil {
		b.Fatal(err)
	}
	return geo
}

// hashPairs returns n pseudo-random hash pairs valid for geo.
func hashPairs(geo *hashgeo.HashedGeometry, n int) [][2]hashgeo.Hash {
	rng := testutil.NewRNG(benchSeed)
	hs := rng.Hashes(2*n, geo.Size())

	pairs := make([][2]hashgeo.Hash, n)
	for i := range pairs {
		pairs[i] = [2]hashgeo.Hash{hs[2*i], hs[2*i+1]}
	}
	return pairs
}
