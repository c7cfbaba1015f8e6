package expand

import "github.com/bindgraph/dicore/binding"

// componentSet tracks LazyComponentWithArgs identities using each
// component's own HashCode/Equal, bucketed by hash to avoid an O(n) scan
// per lookup.
type componentSet struct {
	buckets map[uint64][]binding.Component
}

func newComponentSet() *componentSet {
	return &componentSet{buckets: make(map[uint64][]binding.Component)}
}

// Contains reports whether an equal component is already in the set.
func (s *componentSet) Contains(c binding.Component) bool {
	for _, existing := range s.buckets[c.HashCode()] {
		if existing.Equal(c) {
			return true
		}
	}
	return false
}

// Add inserts c, returning false if an equal component was already
// present.
func (s *componentSet) Add(c binding.Component) bool {
	if s.Contains(c) {
		return false
	}
	h := c.HashCode()
	s.buckets[h] = append(s.buckets[h], c)
	return true
}

// Remove deletes the component equal to c, if present.
func (s *componentSet) Remove(c binding.Component) {
	h := c.HashCode()
	bucket := s.buckets[h]
	for i, existing := range bucket {
		if existing.Equal(c) {
			s.buckets[h] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}
