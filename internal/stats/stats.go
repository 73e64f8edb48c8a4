// Package stats accumulates per-key aggregates and merges them.
package stats

// Info is the running aggregate for a single key. Min, Max and Sum are in
// tenths, as produced by parse.Value; Mean converts back to the decimal
// value. A live aggregate always has Count >= 1.
type Info struct {
	Min   int64
	Max   int64
	Sum   int64
	Count int64
}

func NewInfo(value int64) *Info {
	return &Info{
		Min:   value,
		Max:   value,
		Sum:   value,
		Count: 1,
	}
}

func (info *Info) Update(value int64) {
	info.Sum += value
	info.Count += 1
	if info.Min > value {
		info.Min = value
	}
	if info.Max < value {
		info.Max = value
	}
}

func (info *Info) Merge(other *Info) {
	if info.Min > other.Min {
		info.Min = other.Min
	}
	if info.Max < other.Max {
		info.Max = other.Max
	}
	info.Sum += other.Sum
	info.Count += other.Count
}

// Mean is computed on demand, never stored.
func (info *Info) Mean() float64 {
	return float64(info.Sum) / float64(info.Count) / 10
}

// InfoStore is the merge target for worker tables. It doubles as the
// plain map table engine.
type InfoStore struct {
	m map[string]*Info
}

func NewInfoStore() *InfoStore {
	return &InfoStore{
		m: make(map[string]*Info, initialTableSize),
	}
}

// Merge folds one drained aggregate in. The first aggregate seen for a
// name is adopted as is.
func (store *InfoStore) Merge(name string, other *Info) {
	if mine, ok := store.m[name]; ok {
		mine.Merge(other)
	} else {
		store.m[name] = other
	}
}

func (store *InfoStore) Add(key []byte, value int64) {
	if info, ok := store.m[string(key)]; ok {
		info.Update(value)
	} else {
		name := string(key)
		store.m[name] = NewInfo(value)
	}
}

func (store *InfoStore) Drain(f func(name string, info *Info)) {
	for name, info := range store.m {
		f(name, info)
	}
}

func (store *InfoStore) Len() int {
	return len(store.m)
}

// Map exposes the underlying table for rendering. Callers must not
// modify it.
func (store *InfoStore) Map() map[string]*Info {
	return store.m
}
