package snapshot

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// Digest is a 32-byte BLAKE3 fingerprint of a snapshot.
type Digest [32]byte

// fingerprintKey separates snapshot fingerprints from other BLAKE3 uses.
// It is the ASCII domain name zero-padded to 32 bytes.
var fingerprintKey = [32]byte{
	'h', 'a', 's', 'h', 'g', 'e', 'o', '.', 's', 'n', 'a', 'p', 's', 'h', 'o', 't',
}

// Fingerprint returns the keyed BLAKE3 digest of the canonical encoding of s.
// The digest does not depend on compression.
func Fingerprint(s *Snapshot) (Digest, error) {
	raw, err := marshal(s)
	if err != nil {
		return Digest{}, err
	}

	hasher, err := blake3.NewKeyed(fingerprintKey[:])
	if err != nil {
		return Digest{}, err
	}
	_, _ = hasher.Write(raw)

	var d Digest
	copy(d[:], hasher.Sum(nil))
	return d, nil
}

// String returns d as lower-case hex.
func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

// Short returns the first 12 hex characters of d.
func (d Digest) Short() string {
	return d.String()[:12]
}

// ParseDigest parses the 64-character hex form produced by Digest.String.
func ParseDigest(s string) (Digest, error) {
	var d Digest
	b, err := hex.DecodeString(s)
	if err != nil {
		return d, fmt.Errorf("parsing digest: %w", err)
	}
	if len(b) != len(d) {
		return d, fmt.Errorf("digest is %d bytes, want %d", len(b), len(d))
	}
	copy(d[:], b)
	return d, nil
}
