package cuckoo

import (
	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-logr/logr"
)

// Option configures a Table at construction
type Option func(*Table)

// WithLogger sets the logger used to trace displacements (log.TraceLevel)
// and failed insertions (log.DebugLevel).
func WithLogger(logger logr.Logger) Option {
	return func(t *Table) {
		t.logger = logger.WithName("table")
	}
}

// WithMaxDisplacements bounds the number of displacement rounds a single
// Insert may perform. 0 means unbounded.
func WithMaxDisplacements(n uint64) Option {
	return func(t *Table) {
		t.maxDisplacements = n
	}
}

// WithFilter puts a bloom filter sized for n keys at false positive rate
// fp in front of Lookup. Every key passed to Insert is added to the filter
// so a filter miss means the key cannot be in the table.
func WithFilter(n uint, fp float64) Option {
	return func(t *Table) {
		t.filter = bloom.NewWithEstimates(max(n, 1), fp)
	}
}

func max(a, b uint) uint {
	if a > b {
		return a
	}

	return b
}
