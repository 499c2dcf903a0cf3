// Package position caches module positions under their dense hash.
package position

import (
	"fmt"
	"slices"

	"github.com/hupe1980/hashgeo/keyhash"
	"github.com/hupe1980/hashgeo/model"
)

// Service holds the position of every hashed module, indexed by hash.
// It is immutable and safe for concurrent use.
type Service struct {
	hasher    *keyhash.Service
	positions []model.Position
}

// New resolves the position of every key of hasher through geo.
// Every hashed key must be present in geo with a finite position.
func New(geo model.GeometryMap, hasher *keyhash.Service) (*Service, error) {
	positions := make([]model.Position, hasher.Size())
	for i := range positions {
		k, _ := hasher.KeyFromHash(model.Hash(i))
		p, ok := geo[k]
		if !ok {
			return nil, fmt.Errorf("%w: module %s has no entry in the geometry", model.ErrInvalidInput, k)
		}
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: module %s has no valid position %s", model.ErrInvalidInput, k, p)
		}
		positions[i] = p
	}
	return &Service{hasher: hasher, positions: positions}, nil
}

// FromTable rebuilds a Service from positions already laid out in hash order.
func FromTable(hasher *keyhash.Service, positions []model.Position) (*Service, error) {
	if len(positions) != hasher.Size() {
		return nil, fmt.Errorf("%w: %d positions for %d hashed modules", model.ErrInvalidInput, len(positions), hasher.Size())
	}
	for i, p := range positions {
		if !p.IsFinite() {
			return nil, fmt.Errorf("%w: hash %d has no valid position %s", model.ErrInvalidInput, i, p)
		}
	}
	return &Service{hasher: hasher, positions: slices.Clone(positions)}, nil
}

// Position returns the position of the module hashed under h.
func (s *Service) Position(h model.Hash) (model.Position, error) {
	if err := model.CheckHash(h, len(s.positions)); err != nil {
		return model.Position{}, err
	}
	return s.positions[h], nil
}

// PositionOf returns the position of module k.
func (s *Service) PositionOf(k model.ModuleKey) (model.Position, error) {
	h, err := s.hasher.HashFromKey(k)
	if err != nil {
		return model.Position{}, err
	}
	return s.positions[h], nil
}

// HashService returns the hasher the positions are indexed by.
func (s *Service) HashService() *keyhash.Service {
	return s.hasher
}

// Size returns the number of cached positions.
func (s *Service) Size() int {
	return len(s.positions)
}

// Table returns a copy of all positions in hash order.
func (s *Service) Table() []model.Position {
	return slices.Clone(s.positions)
}

// VerifyAgainst checks that every hashed module is present in geo at the
// cached position.
func (s *Service) VerifyAgainst(geo model.GeometryMap) error {
	for i, cached := range s.positions {
		k, _ := s.hasher.KeyFromHash(model.Hash(i))
		p, ok := geo[k]
		if !ok {
			return fmt.Errorf("%w: module %s missing from geometry", model.ErrGeometryMismatch, k)
		}
		if p != cached {
			return fmt.Errorf("%w: module %s at %s, cached %s", model.ErrGeometryMismatch, k, p, cached)
		}
	}
	return nil
}
