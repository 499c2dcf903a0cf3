// Package distance provides distances between module positions.
//
// # Functions
//
//   - Euclidean: straight-line distance between two positions
//   - SquaredEuclidean: squared straight-line distance (no square root)
//
// # Service
//
// Service answers distances between hashed modules. It can be built with a
// precomputed symmetric distance matrix, filled in parallel at construction:
//
//	svc, _ := distance.NewService(posService, distance.WithPrecompute(runtime.GOMAXPROCS(0)))
//	d, _ := svc.Distance(0, 1)
//
// Without precomputation every lookup computes the distance from the cached
// positions, which is also O(1). Both modes return identical values.
package distance
