// Package tt caches search results keyed by position hash so that positions
// reached through different move orders are only searched once.
package tt

import (
	"sync"
	"sync/atomic"

	"mill/game"
)

type Bound uint8

const (
	Exact Bound = iota
	Lower
	Upper
)

func (b Bound) String() string {
	switch b {
	case Exact:
		return "exact"
	case Lower:
		return "lower"
	case Upper:
		return "upper"
	}
	return "unknown"
}

// Entries older than this many generations may be overwritten by shallower results.
const staleGenerations = 4

const maxStripes = 64

type Entry struct {
	Key        uint64
	Depth      int
	Value      float64
	Bound      Bound
	BestMove   game.Move
	Generation uint32
	Valid      bool
}

// Table is a fixed size bucketed hash table safe for concurrent use.
type Table struct {
	mask    uint64
	buckets int
	entries []Entry
	stripes []sync.RWMutex
	gen     atomic.Uint32
}

// New creates a table with size slots rounded up to a power of two, each
// holding buckets entries.
func New(size uint64, buckets int) *Table {
	if buckets <= 0 {
		buckets = 2
	}
	if size < 1 {
		size = 1
	}
	size = nextPowerOfTwo(size)
	stripes := maxStripes
	if size < uint64(stripes) {
		stripes = int(size)
	}
	t := &Table{
		mask:    size - 1,
		buckets: buckets,
		entries: make([]Entry, int(size)*buckets),
		stripes: make([]sync.RWMutex, stripes),
	}
	t.gen.Store(1)
	return t
}

// NextGeneration ages every stored entry by one search.
func (t *Table) NextGeneration() {
	if t.gen.Add(1) == 0 {
		t.gen.CompareAndSwap(0, 1)
	}
}

func (t *Table) Generation() uint32 {
	return t.gen.Load()
}

func (t *Table) Clear() {
	for i := range t.stripes {
		t.stripes[i].Lock()
	}
	defer func() {
		for i := range t.stripes {
			t.stripes[i].Unlock()
		}
	}()
	clear(t.entries)
	t.gen.Store(1)
}

// Len counts the valid entries.
func (t *Table) Len() int {
	for i := range t.stripes {
		t.stripes[i].RLock()
	}
	defer func() {
		for i := range t.stripes {
			t.stripes[i].RUnlock()
		}
	}()
	n := 0
	for _, e := range t.entries {
		if e.Valid {
			n++
		}
	}
	return n
}

func (t *Table) Capacity() int {
	return len(t.entries)
}

func (t *Table) Probe(key uint64) (Entry, bool) {
	lock := t.stripe(key)
	lock.RLock()
	defer lock.RUnlock()
	start := t.bucket(key)
	for _, e := range t.entries[start : start+t.buckets] {
		if e.Valid && e.Key == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Store records a search result. It reports false when every slot of the
// bucket holds a deeper or fresher result.
func (t *Table) Store(key uint64, depth int, value float64, bound Bound, best game.Move) bool {
	lock := t.stripe(key)
	lock.Lock()
	defer lock.Unlock()
	gen := t.gen.Load()
	entry := Entry{Key: key, Depth: depth, Value: value, Bound: bound, BestMove: best, Generation: gen, Valid: true}
	slots := t.entries[t.bucket(key) : t.bucket(key)+t.buckets]

	for i, e := range slots {
		if e.Valid && e.Key == key {
			if !replaces(e, depth, bound, gen) {
				return false
			}
			slots[i] = entry
			return true
		}
	}
	for i, e := range slots {
		if !e.Valid {
			slots[i] = entry
			return true
		}
	}

	victim := -1
	for i, e := range slots {
		if !replaces(e, depth, bound, gen) {
			continue
		}
		if victim == -1 || e.Depth < slots[victim].Depth || gen-e.Generation > gen-slots[victim].Generation {
			victim = i
		}
	}
	if victim == -1 {
		return false
	}
	slots[victim] = entry
	return true
}

func (t *Table) bucket(key uint64) int {
	return int(key&t.mask) * t.buckets
}

func (t *Table) stripe(key uint64) *sync.RWMutex {
	return &t.stripes[int(key&t.mask)%len(t.stripes)]
}

func replaces(e Entry, depth int, bound Bound, gen uint32) bool {
	switch {
	case depth > e.Depth:
		return true
	case depth == e.Depth && (bound == Exact || e.Bound != Exact):
		return true
	default:
		return gen-e.Generation >= staleGenerations
	}
}

func nextPowerOfTwo(v uint64) uint64 {
	v--
	v |= v >> 1
	v |= v >> 2
	v |= v >> 4
	v |= v >> 8
	v |= v >> 16
	v |= v >> 32
	return v + 1
}
