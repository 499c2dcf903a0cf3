package keyhash

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/hashgeo/model"
)

// HashSet is a set of dense hashes backed by a Roaring bitmap.
type HashSet struct {
	rb *roaring.Bitmap
}

// NewHashSet creates a set holding the given hashes.
func NewHashSet(hashes ...model.Hash) *HashSet {
	s := &HashSet{rb: roaring.New()}
	for _, h := range hashes {
		s.Add(h)
	}
	return s
}

// Add adds h to the set.
func (s *HashSet) Add(h model.Hash) {
	s.rb.Add(uint32(h))
}

// Contains reports whether h is in the set.
func (s *HashSet) Contains(h model.Hash) bool {
	return s.rb.Contains(uint32(h))
}

// IsEmpty returns true if the set is empty.
func (s *HashSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Cardinality returns the number of hashes in the set.
func (s *HashSet) Cardinality() uint64 {
	return s.rb.GetCardinality()
}

// Union returns a new set with the hashes of s and o.
func (s *HashSet) Union(o *HashSet) *HashSet {
	return &HashSet{rb: roaring.Or(s.rb, o.rb)}
}

// Intersect returns a new set with the hashes present in both s and o.
func (s *HashSet) Intersect(o *HashSet) *HashSet {
	return &HashSet{rb: roaring.And(s.rb, o.rb)}
}

// All iterates the hashes in ascending order.
func (s *HashSet) All() iter.Seq[model.Hash] {
	return func(yield func(model.Hash) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(model.Hash(it.Next())) {
				return
			}
		}
	}
}

// ToSlice returns the hashes in ascending order.
func (s *HashSet) ToSlice() []model.Hash {
	out := make([]model.Hash, 0, s.rb.GetCardinality())
	for h := range s.All() {
		out = append(out, h)
	}
	return out
}
