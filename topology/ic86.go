// Package topology describes the IC86 detector layout: an ideal synthetic
// geometry, region predicates over module keys and per-module topology flags.
package topology

import (
	"math"

	"github.com/hupe1980/hashgeo/model"
)

// IC86 layout constants.
const (
	// StringSpacing is the inter-string distance of the hexagonal grid.
	StringSpacing = 125.0
	// SurfaceDepth is the distance from the detector centre to the ice surface.
	SurfaceDepth = 1948.0

	icOMSpacing     = 17.0
	icZeroOM        = 30
	dcTopSpacing    = 10.0
	dcBottomSpacing = 7.0
	dcVetoDepth     = 190.0
	dcInfillDepth   = -160.0

	// IC86Modules is the number of modules in BuildIC86Geometry.
	IC86Modules = 86*60 + 81*4
)

// IsIceTop reports whether k is a surface tank module (strings 1-81, OMs 61-64).
func IsIceTop(k model.ModuleKey) bool {
	return inRange(k.Str, 1, 81) && inRange(k.OM, 61, 64)
}

// IsInIce reports whether k is an in-ice module.
func IsInIce(k model.ModuleKey) bool {
	return inRange(k.Str, 1, 86) && inRange(k.OM, 1, 60)
}

// IsIceCube reports whether k lies on a regular IceCube string.
func IsIceCube(k model.ModuleKey) bool {
	return inRange(k.Str, 1, 78) && inRange(k.OM, 1, 60)
}

// IsDeepCore reports whether k lies on a DeepCore infill string.
func IsDeepCore(k model.ModuleKey) bool {
	return inRange(k.Str, 79, 86) && inRange(k.OM, 1, 60)
}

// IsDeepCoreTop reports whether k is one of the upper ten DeepCore modules.
func IsDeepCoreTop(k model.ModuleKey) bool {
	return inRange(k.Str, 79, 86) && inRange(k.OM, 1, 10)
}

// IsDeepCoreBottom reports whether k is in the dense lower part of a DeepCore string.
func IsDeepCoreBottom(k model.ModuleKey) bool {
	return inRange(k.Str, 79, 86) && inRange(k.OM, 11, 60)
}

// IsDeepCoreFiducial reports whether k is inside the densely instrumented
// DeepCore volume, including the bottom of the surrounding IceCube strings.
func IsDeepCoreFiducial(k model.ModuleKey) bool {
	return IsDeepCoreBottom(k) || (isDeepCoreNeighbour(k.Str) && inRange(k.OM, 40, 60))
}

// IsDeepCoreCap reports whether k is in the DeepCore veto cap.
func IsDeepCoreCap(k model.ModuleKey) bool {
	return IsDeepCoreTop(k) || (isDeepCoreNeighbour(k.Str) && inRange(k.OM, 20, 25))
}

// IsDeepCoreDense reports whether k is in any densely instrumented region.
func IsDeepCoreDense(k model.ModuleKey) bool {
	return IsDeepCoreFiducial(k) || IsDeepCoreCap(k)
}

// isDeepCoreNeighbour reports whether str is the centre string or one of the
// IceCube strings around it.
func isDeepCoreNeighbour(str int32) bool {
	switch str {
	case 26, 27, 35, 36, 37, 45, 46:
		return true
	}
	return false
}

func inRange[T int32 | uint32](v, lo, hi T) bool {
	return lo <= v && v <= hi
}

// stringXY holds the surface (x, y) of every IC86 string. Strings 1-78 sit on the regular hexagonal grid, 79-86 on the infill grid
// with a third of the spacing.
var stringXY = func() map[int32][2]float64 {
	xic := StringSpacing
	yic := xic * math.Sqrt(3.0/4.0)
	xip := xic / 3
	yip := yic / 3

	// rows of the regular grid: y multiple, x multiple of the first string, count
	rows := []struct {
		y      float64
		firstX float64
		count  int
	}{
		{-4, -3, 6},
		{-3, -3.5, 7},
		{-2, -4, 8},
		{-1, -4.5, 9},
		{0, -5, 10},
		{1, -4.5, 10},
		{2, -4, 9},
		{3, -3.5, 8},
		{4, -3, 7},
		{5, -2.5, 4},
	}

	m := make(map[int32][2]float64, 86)
	str := int32(1)
	for _, r := range rows {
		for i := 0; i < r.count; i++ {
			m[str] = [2]float64{(r.firstX + float64(i)) * xic, r.y * yic}
			str++
		}
	}

	infill := [][2]float64{
		{-0.5, -1},
		{0.5, -1},
		{0, 2},
		{1.5, 1},
		{1.5, -1},
		{0, -2},
		{-1.5, -1},
		{-1.5, 1},
	}
	for _, p := range infill {
		m[str] = [2]float64{p[0] * xip, p[1] * yip}
		str++
	}
	return m
}()

// StringPosition returns the surface (x, y) of a string, or false if the
// string is not part of IC86.
func StringPosition(str int32) (x, y float64, ok bool) {
	p, ok := stringXY[str]
	return p[0], p[1], ok
}

// BuildIC86Geometry constructs an ideal IC86 geometry:
//
//   - centred on string 36, grid major axis along x
//   - 125 m string spacing
//   - OM30 of regular strings at z=0, 17 m vertical spacing
//   - DeepCore OMs 1-10 spaced 10 m below z=190, OMs 11-60 spaced 7 m below z=-160
//   - IceTop tanks (OMs 61-64) on strings 1-81 at z=1948
//
// The returned map has IC86Modules entries and belongs to the caller.
func BuildIC86Geometry() model.GeometryMap {
	geo := make(model.GeometryMap, IC86Modules)

	for str := int32(1); str <= 86; str++ {
		x, y, _ := StringPosition(str)
		for om := uint32(1); om <= 60; om++ {
			var z float64
			switch {
			case str <= 78:
				z = float64(icZeroOM-int(om)) * icOMSpacing
			case om <= 10:
				z = dcVetoDepth - float64(om)*dcTopSpacing
			default:
				z = dcInfillDepth - float64(om-11)*dcBottomSpacing
			}
			geo[model.ModuleKey{Str: str, OM: om}] = model.Position{X: x, Y: y, Z: z}
		}
	}

	for str := int32(1); str <= 81; str++ {
		x, y, _ := StringPosition(str)
		for om := uint32(61); om <= 64; om++ {
			geo[model.ModuleKey{Str: str, OM: om}] = model.Position{X: x, Y: y, Z: SurfaceDepth}
		}
	}

	return geo
}
