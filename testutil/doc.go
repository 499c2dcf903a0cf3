// Package testutil provides testing utilities for hashgeo.
//
// This package is intended for use in tests and benchmarks only.
// It provides deterministic geometries and brute-force reference
// distances to check indexed lookups against.
//
// # Geometries
//
//	geo := testutil.HexagonGeometry()              // 7 strings x 5 OMs
//	rng := testutil.NewRNG(seed)
//	geo := rng.Geometry(80, 60)                     // jittered grid, 4800 modules
//	keys := rng.SampleKeys(geo, 100)                // random subset
//
// # Reference Distances
//
//	d := testutil.BruteForceDistance(geo, a, b)
package testutil
