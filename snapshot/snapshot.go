package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/hupe1980/hashgeo/model"
)

// Snapshot is the persisted content of a hashed geometry, in hash order.
type Snapshot struct {
	Keys      []model.ModuleKey
	Positions []model.Position
}

// Len returns the number of modules.
func (s *Snapshot) Len() int {
	return len(s.Keys)
}

// Validate checks the invariants a snapshot must satisfy to be loaded:
// it is non-empty, keys are strictly ascending and every key has a finite position.
func (s *Snapshot) Validate() error {
	if len(s.Keys) == 0 {
		return fmt.Errorf("%w: empty snapshot", model.ErrInvalidInput)
	}
	if len(s.Keys) != len(s.Positions) {
		return fmt.Errorf("%w: %d keys but %d positions", model.ErrInvalidInput, len(s.Keys), len(s.Positions))
	}
	for i := range s.Keys {
		if i > 0 && !s.Keys[i-1].Less(s.Keys[i]) {
			return fmt.Errorf("%w: keys not strictly ascending at %d (%s after %s)",
				model.ErrInvalidInput, i, s.Keys[i], s.Keys[i-1])
		}
		if !s.Positions[i].IsFinite() {
			return fmt.Errorf("%w: module %s has non-finite position", model.ErrInvalidInput, s.Keys[i])
		}
	}
	return nil
}

// wire types keep the payload compact: every record is a CBOR array.
type wireSnapshot struct {
	_       struct{} `cbor:",toarray"`
	Modules []wireModule
}

type wireModule struct {
	_   struct{} `cbor:",toarray"`
	Str int32
	OM  uint32
	X   float64
	Y   float64
	Z   float64
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("snapshot: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxArrayElements: maxModules,
	}.DecMode()
	if err != nil {
		panic("snapshot: CBOR decoder initialization failed: " + err.Error())
	}
}

// maxModules bounds decoding of untrusted input.
const maxModules = 1 << 24

func marshal(s *Snapshot) ([]byte, error) {
	if len(s.Keys) != len(s.Positions) {
		return nil, fmt.Errorf("%w: %d keys but %d positions", model.ErrInvalidInput, len(s.Keys), len(s.Positions))
	}

	w := wireSnapshot{Modules: make([]wireModule, len(s.Keys))}
	for i, k := range s.Keys {
		p := s.Positions[i]
		w.Modules[i] = wireModule{Str: k.Str, OM: k.OM, X: unsignZero(p.X), Y: unsignZero(p.Y), Z: unsignZero(p.Z)}
	}
	return encMode.Marshal(&w)
}

// unsignZero maps -0 to +0. Positions compare equal either way, so the
// encoding must not tell them apart.
func unsignZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

func unmarshal(data []byte) (*Snapshot, error) {
	var w wireSnapshot
	if err := decMode.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("%w: cbor: %w", ErrCorrupt, err)
	}

	s := &Snapshot{
		Keys:      make([]model.ModuleKey, len(w.Modules)),
		Positions: make([]model.Position, len(w.Modules)),
	}
	for i, m := range w.Modules {
		s.Keys[i] = model.ModuleKey{Str: m.Str, OM: m.OM}
		s.Positions[i] = model.Position{X: m.X, Y: m.Y, Z: m.Z}
	}
	return s, nil
}
