// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent integer overflow
// when converting between Go's platform-dependent int and the fixed-width
// uint32 used for hashes and snapshot header fields.
//
// Use cases:
//   - Counting keys into the uint32 hash space
//   - Writing and validating snapshot header lengths
//
// For conversions that are provably safe by domain constraints (e.g., loop
// indices below Size), use direct type casts instead to avoid overhead.
package conv
