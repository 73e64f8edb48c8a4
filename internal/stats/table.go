package stats

import "fmt"

// Table is one worker's private key to aggregate mapping. Add records a
// single observation. Drain hands every entry over to a merge target; the
// table must not be used afterwards.
type Table interface {
	Add(key []byte, value int64)
	Drain(f func(name string, info *Info))
	Len() int
}

type Engine string

const (
	EngineXXH3  Engine = "xxh3"
	EngineSwiss Engine = "swiss"
	EngineMap   Engine = "map"
)

// power of two, the open addressing table relies on it
const initialTableSize = 1024

func NewTable(engine Engine) (Table, error) {
	switch engine {
	case EngineXXH3, "":
		return newHashTable(), nil
	case EngineSwiss:
		return newSwissTable(), nil
	case EngineMap:
		return NewInfoStore(), nil
	}
	return nil, fmt.Errorf("unknown table engine %q", engine)
}
