// Package hashgeo provides dense hashing of detector geometries.
//
// A detector geometry maps sparse module identifiers (string number, OM
// number) to 3D positions. hashgeo assigns every module a dense hash in
// [0, N), so per-module data can live in plain slices and identity,
// position and distance lookups become constant-time table reads.
//
// # Quick Start
//
//	geo, err := hashgeo.New(topology.BuildIC86Geometry())
//	if err != nil {
//	    return err
//	}
//
//	k, _ := geo.IdentifierFromHash(0)     // 1:1
//	p, _ := geo.PositionFromHash(0)
//	d, _ := geo.DistanceBetween(0, 1)     // 17m
//
// # Hash Order
//
// Hashes are assigned in ascending (string, OM) order, so the same set of
// modules always hashes identically, whichever process builds it. Hash 0 is
// the smallest key.
//
// # Distances
//
// By default distances are computed from the position table on each call.
// WithPrecomputedDistances fills the full pairwise matrix up front in
// parallel. Both modes return the exact float64 Euclidean distance.
//
// # Selecting Modules
//
// Select collects the hashes of modules matching a predicate into a
// roaring-backed keyhash.HashSet:
//
//	deepCore := geo.Select(topology.IsDeepCore)
//	ring := geo.Select(topology.Matcher(topology.FlagIceCube))
//
// # Persistence
//
// A hashed geometry can be written to any blobstore.BlobStore as a
// checksummed, optionally compressed snapshot and loaded back with
// identical hashes:
//
//	store := blobstore.NewLocalStore("./data")
//	err = geo.Save(ctx, store, "ic86.hgeo", snapshot.CompressionZSTD)
//	geo, err = hashgeo.Load(ctx, store, "ic86.hgeo")
//
// # Errors
//
//   - ErrInvalidInput: empty geometry, non-finite position, missing subset key
//   - ErrOutOfRange: hash outside [0, Size) (typed as *OutOfRangeError)
//   - ErrUnknownKey: module key not hashed
//   - ErrGeometryMismatch: VerifyAgainst failed
//   - ErrCorrupt: snapshot failed framing or checksum checks
//
// A HashedGeometry is immutable and safe for concurrent use.
package hashgeo
