package snapshot

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/hashgeo/internal/conv"
	"github.com/hupe1980/hashgeo/internal/hash"
)

const (
	magic      = 0x4F454748 // "HGEO"
	version    = 1
	headerSize = 24

	// maxPayload bounds allocations when reading untrusted input.
	maxPayload = 1 << 30
)

var (
	// ErrCorrupt is returned for any snapshot that cannot be decoded.
	ErrCorrupt = errors.New("snapshot: corrupt")
	// ErrInvalidMagic is returned when the input is not a snapshot.
	ErrInvalidMagic = fmt.Errorf("%w: invalid magic", ErrCorrupt)
	// ErrUnsupportedVersion is returned for snapshots written by a newer format.
	ErrUnsupportedVersion = fmt.Errorf("%w: unsupported version", ErrCorrupt)
	// ErrChecksumMismatch is returned when the payload checksum does not match.
	ErrChecksumMismatch = fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	// ErrUnknownCompression is returned for an unknown compression id or name.
	ErrUnknownCompression = fmt.Errorf("%w: unknown compression", ErrCorrupt)
)

type header struct {
	Compression Compression
	Checksum    uint32
	RawLen      uint32
	StoredLen   uint32
}

func (h header) marshal() []byte {
	b := make([]byte, headerSize)
	binary.LittleEndian.PutUint32(b[0:4], magic)
	binary.LittleEndian.PutUint32(b[4:8], version)
	binary.LittleEndian.PutUint32(b[8:12], uint32(h.Compression))
	binary.LittleEndian.PutUint32(b[12:16], h.Checksum)
	binary.LittleEndian.PutUint32(b[16:20], h.RawLen)
	binary.LittleEndian.PutUint32(b[20:24], h.StoredLen)
	return b
}

func parseHeader(b []byte) (header, error) {
	if m := binary.LittleEndian.Uint32(b[0:4]); m != magic {
		return header{}, fmt.Errorf("%w: %#x", ErrInvalidMagic, m)
	}
	if v := binary.LittleEndian.Uint32(b[4:8]); v != version {
		return header{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}

	c := binary.LittleEndian.Uint32(b[8:12])
	if c > uint32(CompressionZSTD) {
		return header{}, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	h := header{
		Compression: Compression(c),
		Checksum:    binary.LittleEndian.Uint32(b[12:16]),
		RawLen:      binary.LittleEndian.Uint32(b[16:20]),
		StoredLen:   binary.LittleEndian.Uint32(b[20:24]),
	}
	if h.RawLen > maxPayload || h.StoredLen > maxPayload {
		return header{}, fmt.Errorf("%w: payload too large (%d/%d bytes)", ErrCorrupt, h.RawLen, h.StoredLen)
	}
	return h, nil
}

// Encode returns the binary form of s.
func Encode(s *Snapshot, c Compression) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := Write(&buf, s, c); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write writes the binary form of s to w and returns the number of bytes written.
func Write(w io.Writer, s *Snapshot, c Compression) (int64, error) {
	if c > CompressionZSTD {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCompression, c)
	}

	raw, err := marshal(s)
	if err != nil {
		return 0, err
	}
	if len(raw) > maxPayload {
		return 0, fmt.Errorf("snapshot: payload too large: %d bytes", len(raw))
	}

	stored, used, err := compress(raw, c)
	if err != nil {
		return 0, err
	}

	rawLen, err := conv.IntToUint32(len(raw))
	if err != nil {
		return 0, err
	}
	storedLen, err := conv.IntToUint32(len(stored))
	if err != nil {
		return 0, err
	}

	h := header{
		Compression: used,
		Checksum:    hash.CRC32C(stored),
		RawLen:      rawLen,
		StoredLen:   storedLen,
	}

	var written int64
	n, err := w.Write(h.marshal())
	written += int64(n)
	if err != nil {
		return written, err
	}
	n, err = w.Write(stored)
	written += int64(n)
	return written, err
}

// Decode parses a snapshot from its binary form.
func Decode(data []byte) (*Snapshot, error) {
	return Read(bytes.NewReader(data))
}

// Read reads one snapshot from r. The snapshot is validated before it is returned.
func Read(r io.Reader) (*Snapshot, error) {
	b := make([]byte, headerSize)
	if _, err := io.ReadFull(r, b); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("%w: short header: %w", ErrCorrupt, err)
		}
		return nil, err
	}

	h, err := parseHeader(b)
	if err != nil {
		return nil, err
	}

	// StoredLen is untrusted; the buffer grows with the bytes received.
	crc := hash.NewCRC32C()
	var payload bytes.Buffer
	if _, err := io.CopyN(io.MultiWriter(&payload, crc), r, int64(h.StoredLen)); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: short payload: %d of %d bytes", ErrCorrupt, payload.Len(), h.StoredLen)
		}
		return nil, err
	}
	stored := payload.Bytes()
	if sum := crc.Sum32(); sum != h.Checksum {
		return nil, fmt.Errorf("%w: got %#x, want %#x", ErrChecksumMismatch, sum, h.Checksum)
	}

	rawLen, err := conv.Uint32ToInt(h.RawLen)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	raw, err := decompress(stored, h.Compression, rawLen)
	if err != nil {
		return nil, err
	}

	s, err := unmarshal(raw)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return s, nil
}
