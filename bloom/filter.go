// Package bloom provides URL deduplication using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Set is a probabilistic set of strings. A false positive makes Insert
// report an unseen string as seen; false negatives are impossible.
type Set struct {
	f *bloom.BloomFilter
}

// NewSet creates a Set sized for n expected items with the given false
// positive rate.
func NewSet(n uint, fpRate float64) *Set {
	return &Set{f: bloom.NewWithEstimates(n, fpRate)}
}

// Insert adds str and reports whether it was new.
func (s *Set) Insert(str string) bool {
	return !s.f.TestAndAddString(str)
}

// EstimatedCount returns the approximate number of items in the set.
func (s *Set) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
