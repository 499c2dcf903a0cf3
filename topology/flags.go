package topology

import (
	"fmt"
	"math/bits"
	"strings"

	"github.com/hupe1980/hashgeo/model"
)

// Flags is a set of topology properties of a module.
type Flags uint8

// Topology flags.
const (
	FlagIceTop Flags = 1 << iota
	FlagInIce
	FlagIceCube
	FlagDeepCore
	FlagGen2
	FlagPingu
	FlagDeepCoreFiducial
	FlagDeepCoreCap
)

var flagNames = [...]string{
	"IceTop",
	"InIce",
	"IceCube",
	"DeepCore",
	"Gen2",
	"Pingu",
	"DeepCoreFiducial",
	"DeepCoreCap",
}

// ParseFlags builds a Flags value from flag names. Names are matched case
// insensitively; an unknown name is an error.
func ParseFlags(names ...string) (Flags, error) {
	var f Flags
	for _, name := range names {
		flag, ok := lookupFlag(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown topology flag %q", model.ErrInvalidInput, name)
		}
		f |= flag
	}
	return f, nil
}

func lookupFlag(name string) (Flags, bool) {
	name = strings.TrimSpace(name)
	for i, n := range flagNames {
		if strings.EqualFold(n, name) {
			return 1 << i, true
		}
	}
	// historical spelling
	if strings.EqualFold(name, "DeepCoreFidutial") {
		return FlagDeepCoreFiducial, true
	}
	return 0, false
}

// Has reports whether all flags in o are set in f.
func (f Flags) Has(o Flags) bool {
	return f&o == o
}

// Set returns f with o set or cleared.
func (f Flags) Set(o Flags, on bool) Flags {
	if on {
		return f | o
	}
	return f &^ o
}

// Common reports whether f and o share at least one flag.
func (f Flags) Common(o Flags) bool {
	return f&o != 0
}

// Names returns the names of the set flags in bit order.
func (f Flags) Names() []string {
	names := make([]string, 0, bits.OnesCount8(uint8(f)))
	for i, n := range flagNames {
		if f&(1<<i) != 0 {
			names = append(names, n)
		}
	}
	return names
}

// String returns the set flags joined by "|", or "None".
func (f Flags) String() string {
	if f == 0 {
		return "None"
	}
	return strings.Join(f.Names(), "|")
}

// IC86Flags returns the topology flags of k in the IC86 configuration.
// Keys outside IC86 have no flags.
func IC86Flags(k model.ModuleKey) Flags {
	switch {
	case IsInIce(k):
		f := FlagInIce
		f = f.Set(FlagIceCube, IsIceCube(k))
		f = f.Set(FlagDeepCore, IsDeepCore(k))
		f = f.Set(FlagDeepCoreFiducial, IsDeepCoreFiducial(k))
		f = f.Set(FlagDeepCoreCap, IsDeepCoreCap(k))
		return f
	case IsIceTop(k):
		return FlagIceTop
	default:
		return 0
	}
}

// BuildIC86TopologyMap returns the flags of every IC86 module.
func BuildIC86TopologyMap() map[model.ModuleKey]Flags {
	m := make(map[model.ModuleKey]Flags, IC86Modules)
	for str := int32(1); str <= 86; str++ {
		for om := uint32(1); om <= 64; om++ {
			k := model.ModuleKey{Str: str, OM: om}
			if f := IC86Flags(k); f != 0 {
				m[k] = f
			}
		}
	}
	return m
}

// Matcher returns a predicate that matches IC86 modules sharing any of flags.
func Matcher(flags Flags) func(model.ModuleKey) bool {
	return func(k model.ModuleKey) bool {
		return IC86Flags(k).Common(flags)
	}
}

// MapMatcher is like Matcher but looks flags up in m. Keys absent from m never match.
func MapMatcher(flags Flags, m map[model.ModuleKey]Flags) func(model.ModuleKey) bool {
	return func(k model.ModuleKey) bool {
		return m[k].Common(flags)
	}
}
