package distance

import (
	"math"

	"github.com/hupe1980/hashgeo/model"
)

// SquaredEuclidean calculates the squared Euclidean distance between a and b.
func SquaredEuclidean(a, b model.Position) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	dz := a.Z - b.Z
	return dx*dx + dy*dy + dz*dz
}

// Euclidean calculates the Euclidean distance between a and b.
// It does not overflow for coordinates whose differences are finite.
func Euclidean(a, b model.Position) float64 {
	return math.Hypot(math.Hypot(a.X-b.X, a.Y-b.Y), a.Z-b.Z)
}
