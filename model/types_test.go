package model

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleKeyCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b ModuleKey
		want int
	}{
		{"Equal", ModuleKey{1, 1}, ModuleKey{1, 1}, 0},
		{"StringFirst", ModuleKey{1, 60}, ModuleKey{2, 1}, -1},
		{"ThenOM", ModuleKey{2, 2}, ModuleKey{2, 1}, 1},
		{"NegativeString", ModuleKey{-1, 5}, ModuleKey{0, 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(tt.a))
		})
	}
}

func TestModuleKeyText(t *testing.T) {
	k := ModuleKey{Str: 36, OM: 30}
	assert.Equal(t, "36:30", k.String())

	text, err := k.MarshalText()
	require.NoError(t, err)

	var back ModuleKey
	require.NoError(t, back.UnmarshalText(text))
	assert.Equal(t, k, back)

	neg, err := ParseModuleKey("-3:7")
	require.NoError(t, err)
	assert.Equal(t, ModuleKey{Str: -3, OM: 7}, neg)

	for _, bad := range []string{"", "36", "a:1", "1:b", "1:-1"} {
		_, err := ParseModuleKey(bad)
		assert.ErrorIs(t, err, ErrInvalidInput, bad)
	}
}

func TestPosition(t *testing.T) {
	a := Position{X: 3, Y: 4, Z: 0}
	assert.InDelta(t, 5.0, a.Magnitude(), 1e-12)
	assert.Equal(t, Position{X: 2, Y: 3, Z: -1}, a.Sub(Position{X: 1, Y: 1, Z: 1}))

	assert.True(t, a.IsFinite())
	assert.False(t, Position{X: math.NaN()}.IsFinite())
	assert.False(t, Position{Z: math.Inf(-1)}.IsFinite())
}

func TestGeometryMapKeysSorted(t *testing.T) {
	g := GeometryMap{
		{2, 1}:  {},
		{1, 60}: {},
		{1, 2}:  {},
		{-5, 3}: {},
	}
	assert.Equal(t, []ModuleKey{{-5, 3}, {1, 2}, {1, 60}, {2, 1}}, g.Keys())
}

func TestGeometryMapValidate(t *testing.T) {
	assert.ErrorIs(t, GeometryMap{}.Validate(), ErrInvalidInput)
	assert.ErrorIs(t, GeometryMap{{1, 1}: {X: math.NaN()}}.Validate(), ErrInvalidInput)
	assert.NoError(t, GeometryMap{{1, 1}: {X: 1}}.Validate())
}

func TestCheckHash(t *testing.T) {
	assert.NoError(t, CheckHash(0, 1))

	err := CheckHash(3, 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	var oor *OutOfRangeError
	require.True(t, errors.As(err, &oor))
	assert.Equal(t, Hash(3), oor.Hash)
	assert.Equal(t, 3, oor.Size)
	assert.Contains(t, oor.Error(), "[0, 3)")
}
