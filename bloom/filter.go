// Package bloom provides posting URL deduplication using Bloom filters.
package bloom

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/jobsift/jobsift"
)

// Ensure Filter implements jobsift.SeenFilter at compile time.
var _ jobsift.SeenFilter = (*Filter)(nil)

// Filter tracks already-processed posting URLs so detail extraction is
// not repeated across runs. False positives skip a fresh posting's
// detail pass; false negatives cannot occur. Safe for concurrent use.
type Filter struct {
	mu sync.RWMutex
	f  *bloom.BloomFilter
}

// NewFilter creates a new Bloom filter sized for n expected items
// with the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add marks a URL as processed.
func (f *Filter) Add(url string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.f.AddString(url)
}

// Seen returns true if the URL might have been processed before.
func (f *Filter) Seen(url string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.f.TestString(url)
}

// EstimatedCount returns the approximate number of tracked URLs.
func (f *Filter) EstimatedCount() uint {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return uint(f.f.ApproximatedSize())
}
