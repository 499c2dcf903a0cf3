package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when a geometry or key set cannot be hashed
	// (empty, missing or non-finite positions, unknown keys in a subset).
	ErrInvalidInput = errors.New("invalid input")

	// ErrOutOfRange is returned when a hash is not in [0, N).
	ErrOutOfRange = errors.New("hash out of range")

	// ErrUnknownKey is returned when a ModuleKey is not part of the hashed set.
	ErrUnknownKey = errors.New("unknown module key")

	// ErrGeometryMismatch is returned when a hashed geometry does not verify
	// against a GeometryMap.
	ErrGeometryMismatch = errors.New("geometry mismatch")
)

// OutOfRangeError reports a hash lookup outside [0, Size).
//
// It matches ErrOutOfRange via errors.Is.
type OutOfRangeError struct {
	Hash Hash
	Size int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("hash out of range: %d not in [0, %d)", e.Hash, e.Size)
}

// Is reports whether target is ErrOutOfRange.
func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// CheckHash returns an *OutOfRangeError if h is not in [0, size).
func CheckHash(h Hash, size int) error {
	if int64(h) >= int64(size) {
		return &OutOfRangeError{Hash: h, Size: size}
	}
	return nil
}
