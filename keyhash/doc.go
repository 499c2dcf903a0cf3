// Package keyhash provides compact hashing of ModuleKeys onto consecutive
// natural numbers.
//
// A Service is built once from a set of keys. The keys are sorted ascending and
// each receives its position in that order as its hash, giving a bijection
// between the key set and [0, N):
//
//	svc, _ := keyhash.New(geo.Keys())
//	h, _ := svc.HashFromKey(model.ModuleKey{Str: 36, OM: 30})
//	k, _ := svc.KeyFromHash(h)
//
// HashSet is a compressed set of hashes (Roaring bitmap), used to select groups
// of modules such as detector regions.
package keyhash
