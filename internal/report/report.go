// Package report renders the final aggregate table.
package report

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/exp/maps"

	"github.com/Shahab96/1brc/internal/stats"
)

// Render produces the report line: keys in byte order, each rendered as
// name=min/max/mean with one fractional digit.
func Render(store *stats.InfoStore) string {
	m := store.Map()
	keys := maps.Keys(m)
	sort.Strings(keys)

	var b strings.Builder
	b.Grow(32 * len(keys))
	b.WriteByte('{')
	for i, name := range keys {
		if i != 0 {
			b.WriteByte(',')
		}
		info := m[name]
		fmt.Fprintf(&b, "%s=%.1f/%.1f/%.1f",
			name,
			tenths(info.Min),
			tenths(info.Max),
			info.Mean())
	}
	b.WriteByte('}')
	return b.String()
}

func tenths(v int64) float64 {
	return float64(v) / 10
}
