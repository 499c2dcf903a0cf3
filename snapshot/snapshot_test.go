package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"runtime"
	"testing"

	"github.com/hupe1980/hashgeo/internal/hash"
	"github.com/hupe1980/hashgeo/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid returns a snapshot of strings×oms modules with a regular layout.
func grid(strings, oms int) *Snapshot {
	s := &Snapshot{}
	for str := 1; str <= strings; str++ {
		for om := 1; om <= oms; om++ {
			s.Keys = append(s.Keys, model.ModuleKey{Str: int32(str), OM: uint32(om)})
			s.Positions = append(s.Positions, model.Position{
				X: float64(str) * 125,
				Y: float64(str%7) * 108.25,
				Z: float64(30-om) * 17,
			})
		}
	}
	return s
}

func TestRoundTrip(t *testing.T) {
	want := grid(20, 60)

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			var buf bytes.Buffer
			n, err := Write(&buf, want, c)
			require.NoError(t, err)
			assert.Equal(t, int64(buf.Len()), n)

			got, err := Read(&buf)
			require.NoError(t, err)
			assert.Equal(t, want.Keys, got.Keys)
			assert.Equal(t, want.Positions, got.Positions)
			assert.Equal(t, 0, buf.Len(), "reader consumed exactly one snapshot")
		})
	}
}

func TestCompressionIsApplied(t *testing.T) {
	s := grid(20, 60)

	plain, err := Encode(s, CompressionNone)
	require.NoError(t, err)

	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		packed, err := Encode(s, c)
		require.NoError(t, err)
		assert.Less(t, len(packed), len(plain), c.String())
		assert.Equal(t, uint32(c), binary.LittleEndian.Uint32(packed[8:12]))
	}
}

func TestIncompressibleFallsBackToNone(t *testing.T) {
	s := &Snapshot{
		Keys:      []model.ModuleKey{{Str: 1, OM: 1}},
		Positions: []model.Position{{X: math.Pi, Y: math.E, Z: math.Sqrt2}},
	}
	data, err := Encode(s, CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, uint32(CompressionNone), binary.LittleEndian.Uint32(data[8:12]))

	got, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, s.Positions, got.Positions)
}

func TestEncodingIsDeterministic(t *testing.T) {
	a, err := Encode(grid(5, 10), CompressionZSTD)
	require.NoError(t, err)
	b, err := Encode(grid(5, 10), CompressionZSTD)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestReadCorrupt(t *testing.T) {
	valid, err := Encode(grid(3, 5), CompressionLZ4)
	require.NoError(t, err)

	mutate := func(fn func(b []byte) []byte) []byte {
		b := bytes.Clone(valid)
		return fn(b)
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Empty", nil, ErrCorrupt},
		{"ShortHeader", valid[:10], ErrCorrupt},
		{"Magic", mutate(func(b []byte) []byte { b[0] = 'X'; return b }), ErrInvalidMagic},
		{"Version", mutate(func(b []byte) []byte { b[4] = 9; return b }), ErrUnsupportedVersion},
		{"Compression", mutate(func(b []byte) []byte { b[8] = 7; return b }), ErrUnknownCompression},
		{"Checksum", mutate(func(b []byte) []byte { b[len(b)-1] ^= 0xFF; return b }), ErrChecksumMismatch},
		{"Truncated", valid[:len(valid)-3], ErrCorrupt},
		{"HugeLength", mutate(func(b []byte) []byte {
			binary.LittleEndian.PutUint32(b[20:24], math.MaxUint32)
			return b
		}), ErrCorrupt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.data)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

// allocated returns the bytes allocated while fn runs.
func allocated(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestDecodeBoundsAllocation(t *testing.T) {
	const limit = 16 << 20

	t.Run("HeaderOnly", func(t *testing.T) {
		data := header{Compression: CompressionNone, RawLen: maxPayload, StoredLen: maxPayload}.marshal()

		var err error
		n := allocated(func() { _, err = Decode(data) })
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Less(t, n, uint64(limit))
	})

	// Checksums are not secret; a forged header can pass the CRC and still
	// claim an absurd raw length.
	forge := func(c Compression, stored []byte, rawLen uint32) []byte {
		h := header{Compression: c, Checksum: hash.CRC32C(stored), RawLen: rawLen, StoredLen: uint32(len(stored))}
		return append(h.marshal(), stored...)
	}

	t.Run("LZ4RawLength", func(t *testing.T) {
		data := forge(CompressionLZ4, []byte{0x10, 'x'}, maxPayload)

		var err error
		n := allocated(func() { _, err = Decode(data) })
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Less(t, n, uint64(limit))
	})

	t.Run("ZSTDRawLength", func(t *testing.T) {
		valid, err := Encode(grid(10, 60), CompressionZSTD)
		require.NoError(t, err)
		require.Equal(t, CompressionZSTD, Compression(binary.LittleEndian.Uint32(valid[8:12])))

		data := forge(CompressionZSTD, valid[headerSize:], maxPayload)

		n := allocated(func() { _, err = Decode(data) })
		assert.ErrorIs(t, err, ErrCorrupt)
		assert.Less(t, n, uint64(limit))
	})
}

func TestZstdCoderPool(t *testing.T) {
	raw, err := marshal(grid(4, 60))
	require.NoError(t, err)

	// Round trip more often than the pools hold coders, including fresh ones.
	for range 4 {
		stored, used, err := compress(raw, CompressionZSTD)
		require.NoError(t, err)
		require.Equal(t, CompressionZSTD, used)

		got, err := decompress(stored, used, len(raw))
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}

	enc, err := getZstdEncoder()
	require.NoError(t, err)
	require.NotNil(t, enc)
	putZstdEncoder(enc)

	dec, err := getZstdDecoder()
	require.NoError(t, err)
	require.NotNil(t, dec)
	putZstdDecoder(dec)
}

func TestSignedZeroFingerprint(t *testing.T) {
	negZero := math.Copysign(0, -1)
	pos := &Snapshot{
		Keys:      []model.ModuleKey{{Str: 1, OM: 1}, {Str: 1, OM: 2}},
		Positions: []model.Position{{X: 0, Y: 0, Z: 0}, {X: 1, Z: 0}},
	}
	neg := &Snapshot{
		Keys:      pos.Keys,
		Positions: []model.Position{{X: negZero, Y: negZero, Z: negZero}, {X: 1, Z: negZero}},
	}

	a, err := Fingerprint(pos)
	require.NoError(t, err)
	b, err := Fingerprint(neg)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	data, err := Encode(neg, CompressionNone)
	require.NoError(t, err)
	got, err := Decode(data)
	require.NoError(t, err)
	assert.False(t, math.Signbit(got.Positions[0].X))
}

func TestReadRejectsInvalidContent(t *testing.T) {
	unsorted := &Snapshot{
		Keys:      []model.ModuleKey{{Str: 2, OM: 1}, {Str: 1, OM: 1}},
		Positions: []model.Position{{}, {}},
	}
	data, err := Encode(unsorted, CompressionNone)
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestWriteErrors(t *testing.T) {
	_, err := Encode(&Snapshot{Keys: []model.ModuleKey{{Str: 1, OM: 1}}}, CompressionNone)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = Encode(grid(1, 1), Compression(9))
	assert.ErrorIs(t, err, ErrUnknownCompression)

	_, err = Write(failingWriter{}, grid(1, 1), CompressionNone)
	assert.ErrorIs(t, err, errWrite)
}

func TestValidate(t *testing.T) {
	require.NoError(t, grid(2, 2).Validate())

	tests := []struct {
		name string
		s    *Snapshot
	}{
		{"Empty", &Snapshot{}},
		{"LengthMismatch", &Snapshot{Keys: []model.ModuleKey{{Str: 1, OM: 1}}}},
		{"Duplicate", &Snapshot{
			Keys:      []model.ModuleKey{{Str: 1, OM: 1}, {Str: 1, OM: 1}},
			Positions: []model.Position{{}, {}},
		}},
		{"NaN", &Snapshot{
			Keys:      []model.ModuleKey{{Str: 1, OM: 1}},
			Positions: []model.Position{{X: math.NaN()}},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.s.Validate(), model.ErrInvalidInput)
		})
	}
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		in   string
		want Compression
	}{
		{"", CompressionNone},
		{"none", CompressionNone},
		{"LZ4", CompressionLZ4},
		{" zstd ", CompressionZSTD},
		{"zstandard", CompressionZSTD},
	}
	for _, tt := range tests {
		got, err := ParseCompression(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseCompression("gzip")
	assert.ErrorIs(t, err, ErrUnknownCompression)

	assert.Equal(t, "Compression(9)", Compression(9).String())
}

var errWrite = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errWrite }
