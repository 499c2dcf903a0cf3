package hashgeo

import (
	"fmt"

	"github.com/hupe1980/hashgeo/blobstore"
	"github.com/hupe1980/hashgeo/model"
	"github.com/hupe1980/hashgeo/snapshot"
)

var (
	// ErrInvalidInput is returned when a geometry cannot be hashed: the map
	// is empty, a position is non-finite, or a subset key is absent.
	ErrInvalidInput = model.ErrInvalidInput

	// ErrOutOfRange is returned for a hash outside [0, Size).
	ErrOutOfRange = model.ErrOutOfRange

	// ErrUnknownKey is returned for a ModuleKey that is not hashed.
	ErrUnknownKey = model.ErrUnknownKey

	// ErrGeometryMismatch is returned by VerifyAgainst.
	ErrGeometryMismatch = model.ErrGeometryMismatch

	// ErrCorrupt is returned when a snapshot fails framing or checksum checks.
	ErrCorrupt = snapshot.ErrCorrupt

	// ErrNotFound is returned by Load when the named blob does not exist.
	ErrNotFound = blobstore.ErrNotFound
)

// OutOfRangeError reports the offending hash and the index size.
// It matches ErrOutOfRange via errors.Is.
type OutOfRangeError = model.OutOfRangeError

// SnapshotError wraps a failure while saving or loading a named snapshot.
//
// The underlying error can be accessed via errors.Unwrap, so errors.Is
// still matches ErrNotFound, ErrCorrupt and friends.
type SnapshotError struct {
	Op    SnapshotOp
	Name  string
	cause error
}

func (e *SnapshotError) Error() string {
	return fmt.Sprintf("snapshot %s %q: %v", e.Op, e.Name, e.cause)
}

func (e *SnapshotError) Unwrap() error { return e.cause }

func snapshotError(op SnapshotOp, name string, err error) error {
	if err == nil {
		return nil
	}
	return &SnapshotError{Op: op, Name: name, cause: err}
}
