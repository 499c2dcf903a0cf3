package keyhash

import (
	"fmt"
	"slices"

	"github.com/hupe1980/hashgeo/internal/conv"
	"github.com/hupe1980/hashgeo/model"
)

// Service resolves ModuleKeys to dense hashes and back.
// It is immutable and safe for concurrent use.
type Service struct {
	keys   []model.ModuleKey              // hash -> key, sorted ascending
	hashes map[model.ModuleKey]model.Hash // key -> hash
}

// New hashes the given keys. Duplicates collapse; the input slice is not modified.
func New(keys []model.ModuleKey) (*Service, error) {
	sorted := slices.Clone(keys)
	model.SortKeys(sorted)
	sorted = slices.Compact(sorted)

	if len(sorted) == 0 {
		return nil, fmt.Errorf("%w: no module keys to hash", model.ErrInvalidInput)
	}
	if _, err := conv.IntToUint32(len(sorted)); err != nil {
		return nil, fmt.Errorf("%w: module keys exceed the hash range: %w", model.ErrInvalidInput, err)
	}

	hashes := make(map[model.ModuleKey]model.Hash, len(sorted))
	for i, k := range sorted {
		hashes[k] = model.Hash(i)
	}

	return &Service{keys: sorted, hashes: hashes}, nil
}

// KeyFromHash returns the key hashed under h.
func (s *Service) KeyFromHash(h model.Hash) (model.ModuleKey, error) {
	if err := model.CheckHash(h, len(s.keys)); err != nil {
		return model.ModuleKey{}, err
	}
	return s.keys[h], nil
}

// HashFromKey returns the hash of k.
func (s *Service) HashFromKey(k model.ModuleKey) (model.Hash, error) {
	h, ok := s.hashes[k]
	if !ok {
		return 0, fmt.Errorf("%w: %s", model.ErrUnknownKey, k)
	}
	return h, nil
}

// HoldsKey reports whether k is hashed.
func (s *Service) HoldsKey(k model.ModuleKey) bool {
	_, ok := s.hashes[k]
	return ok
}

// HoldsHash reports whether h is in [0, Size()).
func (s *Service) HoldsHash(h model.Hash) bool {
	return int64(h) < int64(len(s.keys))
}

// Size returns the number of hashed keys.
func (s *Service) Size() int {
	return len(s.keys)
}

// Keys returns a copy of all hashed keys in hash order.
func (s *Service) Keys() []model.ModuleKey {
	return slices.Clone(s.keys)
}

// VerifyAgainst checks that every key in keys is hashed by s.
func (s *Service) VerifyAgainst(keys []model.ModuleKey) error {
	for _, k := range keys {
		if !s.HoldsKey(k) {
			return fmt.Errorf("%w: %s is not encoded by this hasher", model.ErrUnknownKey, k)
		}
	}
	return nil
}
