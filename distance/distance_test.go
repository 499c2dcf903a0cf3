package distance

import (
	"math"
	"testing"

	"github.com/hupe1980/hashgeo/model"
	"github.com/stretchr/testify/assert"
)

func TestSquaredEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     model.Position
		expected float64
	}{
		{"Simple", model.Position{X: 1, Y: 2, Z: 3}, model.Position{X: 4, Y: 5, Z: 6}, 27},
		{"Zero", model.Position{}, model.Position{}, 0},
		{"Identical", model.Position{X: 1, Y: 2, Z: 3}, model.Position{X: 1, Y: 2, Z: 3}, 0},
		{"Mixed", model.Position{X: 1, Y: -1}, model.Position{X: -1, Y: 1}, 8}, // (1 - -1)^2 + (-1 - 1)^2 = 4 + 4 = 8
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SquaredEuclidean(tt.a, tt.b)
			assert.InDelta(t, tt.expected, got, 1e-12)
		})
	}
}

func TestEuclidean(t *testing.T) {
	tests := []struct {
		name     string
		a, b     model.Position
		expected float64
	}{
		{"Pythagorean", model.Position{}, model.Position{X: 3, Y: 4}, 5},
		{"Vertical", model.Position{Z: 30}, model.Position{Z: -30}, 60},
		{"Identical", model.Position{X: 7, Y: 7, Z: 7}, model.Position{X: 7, Y: 7, Z: 7}, 0},
		{"Diagonal", model.Position{}, model.Position{X: 1, Y: 2, Z: 2}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Euclidean(tt.a, tt.b), 1e-12)
			assert.InDelta(t, tt.expected, Euclidean(tt.b, tt.a), 1e-12)
		})
	}
}

func TestEuclideanLargeCoordinates(t *testing.T) {
	a := model.Position{X: 1e200, Z: 4e199}
	b := model.Position{X: -1e200, Z: -4e199}

	// The squared form overflows, the distance itself does not.
	assert.True(t, math.IsInf(SquaredEuclidean(a, b), 1))

	d := Euclidean(a, b)
	assert.False(t, math.IsInf(d, 0))
	assert.InEpsilon(t, math.Hypot(2e200, 8e199), d, 1e-12)

	tiny := model.Position{X: 3e-200, Y: 4e-200}
	assert.InEpsilon(t, 5e-200, Euclidean(model.Position{}, tiny), 1e-12)
}
