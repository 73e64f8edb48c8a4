// Package chunk splits a line-oriented file into disjoint ranges that can
// be scanned in parallel.
package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// probeWindow is how far Plan looks past a nominal boundary for the next
// line break. It must exceed the longest legal record.
const probeWindow = 128

var ErrNoLineBreak = errors.New("no line break within probe window")

// Range is a half-open byte range [Start, End) whose boundaries fall
// immediately after a line break, at 0 or at the end of the file.
type Range struct {
	Start int64
	End   int64
}

func (r Range) Len() int64 {
	return r.End - r.Start
}

// Plan cuts size bytes into n contiguous line-aligned ranges of roughly
// equal length. Ranges never split a line; a trailing line without a
// final newline stays in the last non-empty range. When n exceeds the
// number of lines the surplus ranges are empty.
func Plan(r io.ReaderAt, size int64, n int) ([]Range, error) {
	if n < 1 {
		return nil, fmt.Errorf("need at least one chunk, got %d", n)
	}

	ranges := make([]Range, n)
	nominal := size / int64(n)
	start := int64(0)
	for i := 0; i < n-1; i++ {
		target := int64(i+1) * nominal
		if target < start {
			target = start
		}
		end, err := alignAfter(r, target, size)
		if err != nil {
			return nil, err
		}
		ranges[i] = Range{Start: start, End: end}
		start = end
	}
	ranges[n-1] = Range{Start: start, End: size}
	return ranges, nil
}

// alignAfter finds the first offset at or past off that begins a line.
func alignAfter(r io.ReaderAt, off, size int64) (int64, error) {
	if off >= size {
		return size, nil
	}
	win := int64(probeWindow)
	if rest := size - off; rest < win {
		win = rest
	}
	buf := make([]byte, win)
	n, err := r.ReadAt(buf, off)
	if err != nil && !errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("failed to probe offset %d: %w", off, err)
	}
	if i := bytes.IndexByte(buf[:n], '\n'); i != -1 {
		return off + int64(i) + 1, nil
	}
	if off+int64(n) >= size {
		// the unterminated tail belongs to the current chunk
		return size, nil
	}
	return 0, fmt.Errorf("%w at offset %d", ErrNoLineBreak, off)
}
