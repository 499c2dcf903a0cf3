package model

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Hash is a dense handle for a module within one hashed geometry.
// Valid hashes of a geometry with N modules are exactly [0, N).
type Hash uint32

// ModuleKey identifies one physical sensor module: the string (cable) it hangs on
// and its position along that string.
type ModuleKey struct {
	Str int32
	OM  uint32
}

// Compare orders keys by Str, then OM.
func (k ModuleKey) Compare(o ModuleKey) int {
	if c := cmp.Compare(k.Str, o.Str); c != 0 {
		return c
	}
	return cmp.Compare(k.OM, o.OM)
}

// Less reports whether k sorts before o.
func (k ModuleKey) Less(o ModuleKey) bool {
	return k.Compare(o) < 0
}

// String returns the text form "<string>:<om>".
func (k ModuleKey) String() string {
	return strconv.FormatInt(int64(k.Str), 10) + ":" + strconv.FormatUint(uint64(k.OM), 10)
}

// MarshalText implements encoding.TextMarshaler.
func (k ModuleKey) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ModuleKey) UnmarshalText(text []byte) error {
	parsed, err := ParseModuleKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseModuleKey parses the "<string>:<om>" form produced by ModuleKey.String.
func ParseModuleKey(s string) (ModuleKey, error) {
	str, om, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return ModuleKey{}, fmt.Errorf("%w: module key %q: missing ':'", ErrInvalidInput, s)
	}
	si, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return ModuleKey{}, fmt.Errorf("%w: module key %q: string: %w", ErrInvalidInput, s, err)
	}
	oi, err := strconv.ParseUint(om, 10, 32)
	if err != nil {
		return ModuleKey{}, fmt.Errorf("%w: module key %q: om: %w", ErrInvalidInput, s, err)
	}
	return ModuleKey{Str: int32(si), OM: uint32(oi)}, nil
}

// Position is a 3D coordinate in detector coordinates (metres).
type Position struct {
	X, Y, Z float64
}

// Sub returns p - o.
func (p Position) Sub(o Position) Position {
	return Position{X: p.X - o.X, Y: p.Y - o.Y, Z: p.Z - o.Z}
}

// Magnitude returns the length of p seen as a vector.
func (p Position) Magnitude() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y + p.Z*p.Z)
}

// IsFinite reports whether no coordinate is NaN or infinite.
// A non-finite position is treated as missing.
func (p Position) IsFinite() bool {
	return isFinite(p.X) && isFinite(p.Y) && isFinite(p.Z)
}

// String returns a string representation of the Position.
func (p Position) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// GeometryMap maps every module of a detector configuration to its position.
// It is owned by the caller; hashed geometries copy what they need.
type GeometryMap map[ModuleKey]Position

// Keys returns the keys of g in ascending order.
func (g GeometryMap) Keys() []ModuleKey {
	keys := make([]ModuleKey, 0, len(g))
	for k := range g {
		keys = append(keys, k)
	}
	SortKeys(keys)
	return keys
}

// Validate checks that g is non-empty and every position is finite.
func (g GeometryMap) Validate() error {
	if len(g) == 0 {
		return fmt.Errorf("%w: empty geometry", ErrInvalidInput)
	}
	for k, p := range g {
		if !p.IsFinite() {
			return fmt.Errorf("%w: module %s has no valid position %s", ErrInvalidInput, k, p)
		}
	}
	return nil
}

// SortKeys sorts keys in place in ascending (Str, OM) order.
func SortKeys(keys []ModuleKey) {
	slices.SortFunc(keys, ModuleKey.Compare)
}
