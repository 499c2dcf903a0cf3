// Package model defines core types used throughout hashgeo.
//
// # Identity Types
//
//   - ModuleKey: identifies one physical detector module (string, OM)
//   - Hash: dense, index-local handle in [0, N) assigned to a ModuleKey
//
// # Data Types
//
//   - Position: 3D coordinate of a module
//   - GeometryMap: all modules of one detector configuration and their positions
//
// ModuleKeys are totally ordered by (Str, OM). Dense hashes are assigned in
// that order, so the same GeometryMap always yields the same hash assignment.
package model
