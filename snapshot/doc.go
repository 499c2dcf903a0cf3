// Package snapshot implements the persisted form of a hashed geometry.
//
// A snapshot holds the module keys in hash order and their positions. Hashes
// are implicit: the key at index i has hash i.
//
// # Binary Format
//
// All integers are little-endian.
//
//	Header (24 bytes):
//	  Magic       uint32  "HGEO"
//	  Version     uint32  1
//	  Compression uint32  0=none 1=lz4 2=zstd
//	  Checksum    uint32  CRC32C of the stored payload
//	  RawLen      uint32  payload length before compression
//	  StoredLen   uint32  payload length as stored
//	Payload (StoredLen bytes):
//	  CBOR, core deterministic encoding, optionally compressed
//
// The CBOR encoding is canonical, so equal snapshots encode to identical
// bytes. Fingerprint hashes those bytes with BLAKE3.
package snapshot
