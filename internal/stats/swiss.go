package stats

import "github.com/dolthub/swiss"

type swissTable struct {
	m *swiss.Map[string, *Info]
}

func newSwissTable() *swissTable {
	return &swissTable{
		m: swiss.NewMap[string, *Info](initialTableSize),
	}
}

func (t *swissTable) Add(key []byte, value int64) {
	if info, ok := t.m.Get(bytesToString(key)); ok {
		info.Update(value)
		return
	}
	t.m.Put(string(key), NewInfo(value))
}

func (t *swissTable) Drain(f func(name string, info *Info)) {
	t.m.Iter(func(name string, info *Info) bool {
		f(name, info)
		return false
	})
}

func (t *swissTable) Len() int {
	return t.m.Count()
}
