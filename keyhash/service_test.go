package keyhash

import (
	"testing"

	"github.com/hupe1980/hashgeo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridKeys(strings, oms int) []model.ModuleKey {
	keys := make([]model.ModuleKey, 0, strings*oms)
	// Reverse order to make sure New sorts.
	for s := strings; s >= 1; s-- {
		for om := oms; om >= 1; om-- {
			keys = append(keys, model.ModuleKey{Str: int32(s), OM: uint32(om)})
		}
	}
	return keys
}

func TestService(t *testing.T) {
	keys := gridKeys(100, 100)
	svc, err := New(keys)
	require.NoError(t, err)

	assert.Equal(t, len(keys), svc.Size())
	require.NoError(t, svc.VerifyAgainst(keys))

	// Hashes follow ascending key order and round trip.
	var prev model.ModuleKey
	for i := 0; i < svc.Size(); i++ {
		h := model.Hash(i)
		k, err := svc.KeyFromHash(h)
		require.NoError(t, err)
		if i > 0 {
			assert.True(t, prev.Less(k), "keys must be strictly ascending")
		}
		back, err := svc.HashFromKey(k)
		require.NoError(t, err)
		assert.Equal(t, h, back)
		prev = k
	}

	k, err := svc.KeyFromHash(100)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleKey{Str: 2, OM: 1}, k)

	h, err := svc.HashFromKey(model.ModuleKey{Str: 55, OM: 55})
	require.NoError(t, err)
	assert.Equal(t, model.Hash(54*100+54), h)
}

func TestServiceErrors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	svc, err := New([]model.ModuleKey{{Str: 1, OM: 1}, {Str: 1, OM: 2}})
	require.NoError(t, err)

	_, err = svc.KeyFromHash(2)
	assert.ErrorIs(t, err, model.ErrOutOfRange)

	_, err = svc.HashFromKey(model.ModuleKey{Str: 9, OM: 9})
	assert.ErrorIs(t, err, model.ErrUnknownKey)

	err = svc.VerifyAgainst([]model.ModuleKey{{Str: 1, OM: 1}, {Str: 3, OM: 3}})
	assert.ErrorIs(t, err, model.ErrUnknownKey)
}

func TestServiceDeduplicates(t *testing.T) {
	in := []model.ModuleKey{{Str: 2, OM: 1}, {Str: 1, OM: 1}, {Str: 2, OM: 1}}
	svc, err := New(in)
	require.NoError(t, err)

	assert.Equal(t, 2, svc.Size())
	assert.Equal(t, []model.ModuleKey{{Str: 1, OM: 1}, {Str: 2, OM: 1}}, svc.Keys())
	// Input untouched.
	assert.Equal(t, model.ModuleKey{Str: 2, OM: 1}, in[0])

	assert.True(t, svc.HoldsHash(1))
	assert.False(t, svc.HoldsHash(2))
	assert.True(t, svc.HoldsKey(model.ModuleKey{Str: 1, OM: 1}))
	assert.False(t, svc.HoldsKey(model.ModuleKey{Str: 1, OM: 2}))
}

func TestServiceKeysIsCopy(t *testing.T) {
	svc, err := New([]model.ModuleKey{{Str: 1, OM: 1}})
	require.NoError(t, err)

	keys := svc.Keys()
	keys[0] = model.ModuleKey{Str: 7, OM: 7}

	k, err := svc.KeyFromHash(0)
	require.NoError(t, err)
	assert.Equal(t, model.ModuleKey{Str: 1, OM: 1}, k)
}
