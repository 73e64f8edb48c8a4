package stats

import "github.com/zeebo/xxh3"

// hashTable is an open addressing table with linear probing, keyed by the
// xxh3 hash of the raw key bytes. A zero Count marks a free slot, which
// works because a live aggregate always has Count >= 1.
type hashTable struct {
	entries []hashEntry
	mask    uint64
	n       int
	limit   int
}

type hashEntry struct {
	hash uint64
	name string
	info Info
}

func newHashTable() *hashTable {
	return &hashTable{
		entries: make([]hashEntry, initialTableSize),
		mask:    initialTableSize - 1,
		limit:   initialTableSize * 7 / 10,
	}
}

func (t *hashTable) Add(key []byte, value int64) {
	if t.n == t.limit {
		t.grow()
	}
	h := xxh3.Hash(key)
	i := h & t.mask
	for {
		e := &t.entries[i]
		if e.info.Count == 0 {
			e.hash = h
			e.name = string(key)
			e.info = Info{Min: value, Max: value, Sum: value, Count: 1}
			t.n++
			return
		}
		if e.hash == h && e.name == bytesToString(key) {
			e.info.Update(value)
			return
		}
		i = (i + 1) & t.mask
	}
}

func (t *hashTable) grow() {
	old := t.entries
	size := len(old) * 2
	t.entries = make([]hashEntry, size)
	t.mask = uint64(size - 1)
	t.limit = size * 7 / 10
	for i := range old {
		e := &old[i]
		if e.info.Count == 0 {
			continue
		}
		j := e.hash & t.mask
		for t.entries[j].info.Count != 0 {
			j = (j + 1) & t.mask
		}
		t.entries[j] = *e
	}
}

func (t *hashTable) Drain(f func(name string, info *Info)) {
	for i := range t.entries {
		if e := &t.entries[i]; e.info.Count != 0 {
			f(e.name, &e.info)
		}
	}
}

func (t *hashTable) Len() int {
	return t.n
}
