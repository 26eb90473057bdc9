// Package bloom provides the visited-URL set used by crawl frontiers.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// DefaultFalsePositiveRate is the rate used when none is given.
const DefaultFalsePositiveRate = 0.001

// Filter is a probabilistic set of URLs. A false positive makes a crawl
// skip a page it has not seen; a false negative never happens.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter creates a filter sized for n URLs at the given false positive
// rate. A non-positive rate selects DefaultFalsePositiveRate.
func NewFilter(n uint, fpRate float64) *Filter {
	if n == 0 {
		n = 1
	}
	if fpRate <= 0 || fpRate >= 1 {
		fpRate = DefaultFalsePositiveRate
	}
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records url as visited.
func (f *Filter) Add(url string) {
	f.f.AddString(url)
}

// Test reports whether url may have been visited.
func (f *Filter) Test(url string) bool {
	return f.f.TestString(url)
}

// Visit records url and reports whether it was new.
func (f *Filter) Visit(url string) bool {
	return !f.f.TestAndAddString(url)
}

// EstimatedCount returns the approximate number of URLs recorded.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
