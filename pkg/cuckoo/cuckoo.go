package cuckoo

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bloom/v3"
	"github.com/go-logr/logr"
	"github.com/optable/cuckoo/pkg/hash"
	mlog "github.com/optable/cuckoo/pkg/log"
)

var (
	// ErrCycleDetected is returned by Insert when the displacement chain
	// evicts the key being inserted back out of table2. The table is left
	// partially displaced and should be rebuilt by the caller.
	ErrCycleDetected = errors.New("cycle detected, rehash")
	// ErrDisplacementLimit is returned by Insert when WithMaxDisplacements
	// is set and an insertion needs more displacement rounds than allowed.
	ErrDisplacementLimit = errors.New("displacement limit reached, rehash")
	ErrInvalidSize       = errors.New("table size must be positive")
	ErrNilHasher         = errors.New("hash function cannot be nil")
)

const (
	// Table1 and Table2 name the two slot arrays for Slot
	Table1 = iota
	Table2
)

// slot holds at most one key
type slot struct {
	key      uint64
	occupied bool
}

// Stats counts what Insert has done over the lifetime of a Table.
type Stats struct {
	Inserts       uint64
	Displacements uint64
	Cycles        uint64
}

// Table is a 2-way cuckoo hash set of uint64 keys. Each key lives either
// in table1 at hash1(key) % size or in table2 at hash2(key) % size.
// A Table is not safe for concurrent use.
type Table struct {
	hash1, hash2   hash.Hasher
	table1, table2 []slot
	size           uint64

	maxDisplacements uint64
	filter           *bloom.BloomFilter
	logger           logr.Logger
	stats            Stats
}

// New instantiates a Table with two slot arrays of size empty slots each.
// hash1 addresses table1 and hash2 addresses table2.
func New(hash1, hash2 hash.Hasher, size uint64, opts ...Option) (*Table, error) {
	if size == 0 {
		return nil, ErrInvalidSize
	}
	if hash1 == nil || hash2 == nil {
		return nil, ErrNilHasher
	}

	t := &Table{
		hash1:  hash1,
		hash2:  hash2,
		table1: make([]slot, size),
		table2: make([]slot, size),
		size:   size,
		logger: logr.Discard(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// Insert places key in the table, evicting occupants to their alternate
// slot as needed. Only a cycle through key itself is detected, a
// displacement loop that never evicts key again is bounded only by
// WithMaxDisplacements.
func (t *Table) Insert(key uint64) error {
	t.stats.Inserts++
	if t.filter != nil {
		t.filter.Add(hash.KeyBytes(key))
	}

	current := key
	for rounds := uint64(0); ; rounds++ {
		if t.maxDisplacements > 0 && rounds >= t.maxDisplacements {
			t.logger.V(mlog.DebugLevel).Info("displacement limit reached", "key", key, "homeless", current, "rounds", rounds)
			return fmt.Errorf("failed to insert %d after %d rounds, %d is homeless: %w", key, rounds, current, ErrDisplacementLimit)
		}

		idx1 := t.index1(current)
		if !t.table1[idx1].occupied {
			t.table1[idx1] = slot{key: current, occupied: true}
			return nil
		}

		// kick the occupant of table1 out
		evicted := t.table1[idx1].key
		t.table1[idx1].key = current
		t.stats.Displacements++
		t.logger.V(mlog.TraceLevel).Info("displaced", "table", 1, "index", idx1, "evicted", evicted, "by", current)

		idx2 := t.index2(evicted)
		if !t.table2[idx2].occupied {
			t.table2[idx2] = slot{key: evicted, occupied: true}
			return nil
		}

		evicted2 := t.table2[idx2].key
		if evicted2 == key {
			t.stats.Cycles++
			t.logger.V(mlog.DebugLevel).Info("cycle detected", "key", key, "rounds", rounds+1)
			return fmt.Errorf("failed to insert %d: %w", key, ErrCycleDetected)
		}

		// kick the occupant of table2 out and reinsert it through table1
		t.table2[idx2].key = evicted
		t.stats.Displacements++
		t.logger.V(mlog.TraceLevel).Info("displaced", "table", 2, "index", idx2, "evicted", evicted2, "by", evicted)
		current = evicted2
	}
}

// Lookup returns true if key sits in one of its two candidate slots.
func (t *Table) Lookup(key uint64) bool {
	if t.filter != nil && !t.filter.Test(hash.KeyBytes(key)) {
		return false
	}

	if s := t.table1[t.index1(key)]; s.occupied && s.key == key {
		return true
	}
	if s := t.table2[t.index2(key)]; s.occupied && s.key == key {
		return true
	}
	return false
}

// Slot returns the content of slot idx in table which (Table1 or Table2),
// ok is false when the slot is empty or out of range.
func (t *Table) Slot(which int, idx uint64) (key uint64, ok bool) {
	if idx >= t.size {
		return 0, false
	}

	var s slot
	switch which {
	case Table1:
		s = t.table1[idx]
	case Table2:
		s = t.table2[idx]
	default:
		return 0, false
	}
	return s.key, s.occupied
}

// Len returns the number of slots of each table
func (t *Table) Len() uint64 {
	return t.size
}

// Count returns the number of occupied slots over both tables
func (t *Table) Count() (n uint64) {
	for i := range t.table1 {
		if t.table1[i].occupied {
			n++
		}
		if t.table2[i].occupied {
			n++
		}
	}

	return n
}

// LoadFactor returns the ratio of occupied slots with the overall
// capacity of both tables.
func (t *Table) LoadFactor() float64 {
	return float64(t.Count()) / float64(2*t.size)
}

// Stats returns the insertion counters
func (t *Table) Stats() Stats {
	return t.stats
}

func (t *Table) index1(key uint64) uint64 {
	return t.hash1.Hash(key) % t.size
}

func (t *Table) index2(key uint64) uint64 {
	return t.hash2.Hash(key) % t.size
}
