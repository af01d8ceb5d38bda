package dedup

import (
	"github.com/bits-and-blooms/bloom/v3"
)

// Filter remembers query names with a bloom filter. A positive answer may be a
// false positive at the configured rate; a negative answer is always correct.
type Filter struct {
	filter *bloom.BloomFilter
}

// NewFilter creates filter sized for n names at false positive rate fp
func NewFilter(n uint, fp float64) *Filter {
	return &Filter{filter: bloom.NewWithEstimates(n, fp)}
}

// TestAndAdd tests and adds
func (f *Filter) TestAndAdd(name string) bool {
	return f.filter.TestAndAddString(name)
}

// Test tests membership
func (f *Filter) Test(name string) bool {
	return f.filter.TestString(name)
}

// ApproximatedSize estimates how many distinct names were added
func (f *Filter) ApproximatedSize() uint32 {
	return f.filter.ApproximatedSize()
}
