package chunk

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

func lines(n int) []byte {
	var buf bytes.Buffer
	for i := 0; i < n; i++ {
		fmt.Fprintf(&buf, "station-%03d;%d.%d\n", i%100, i%100-50, i%10)
	}
	return buf.Bytes()
}

func checkPlan(t *testing.T, data []byte, n int) []Range {
	t.Helper()
	size := int64(len(data))
	ranges, err := Plan(bytes.NewReader(data), size, n)
	if err != nil {
		t.Fatalf("failed to plan: %v", err)
	}
	if len(ranges) != n {
		t.Fatalf("got %d ranges, want %d", len(ranges), n)
	}
	if ranges[0].Start != 0 {
		t.Errorf("first range starts at %d, want 0", ranges[0].Start)
	}
	if ranges[n-1].End != size {
		t.Errorf("last range ends at %d, want %d", ranges[n-1].End, size)
	}
	for i, r := range ranges {
		if r.Start > r.End {
			t.Errorf("range %d is inverted: %+v", i, r)
		}
		if i > 0 && ranges[i-1].End != r.Start {
			t.Errorf("gap between ranges %d and %d", i-1, i)
		}
		if r.Start > 0 && r.Start < size && data[r.Start-1] != '\n' {
			t.Errorf("range %d starts mid line at offset %d", i, r.Start)
		}
	}
	return ranges
}

func TestPlan(t *testing.T) {
	data := lines(1000)
	for _, n := range []int{1, 2, 4, 17} {
		checkPlan(t, data, n)
	}
}

func TestPlanSingleChunk(t *testing.T) {
	data := lines(3)
	ranges := checkPlan(t, data, 1)
	if ranges[0] != (Range{Start: 0, End: int64(len(data))}) {
		t.Errorf("single range = %+v, want the whole file", ranges[0])
	}
}

func TestPlanEmptyFile(t *testing.T) {
	ranges, err := Plan(bytes.NewReader(nil), 0, 4)
	if err != nil {
		t.Fatalf("failed to plan: %v", err)
	}
	for i, r := range ranges {
		if r.Len() != 0 {
			t.Errorf("range %d not empty: %+v", i, r)
		}
	}
}

func TestPlanMoreChunksThanLines(t *testing.T) {
	data := []byte("a;1.0\nb;2.0\n")
	ranges := checkPlan(t, data, 8)

	nonEmpty := 0
	for _, r := range ranges {
		if r.Len() > 0 {
			nonEmpty++
		}
	}
	if nonEmpty != 2 {
		t.Errorf("got %d non-empty ranges, want 2", nonEmpty)
	}
}

func TestPlanNoTrailingNewline(t *testing.T) {
	data := []byte("a;1.0\nb;2.0")
	ranges := checkPlan(t, data, 2)
	first := string(data[ranges[0].Start:ranges[0].End])
	last := string(data[ranges[1].Start:ranges[1].End])
	if first != "a;1.0\n" || last != "b;2.0" {
		t.Errorf("bad split: %q and %q", first, last)
	}
}

func TestPlanLongLine(t *testing.T) {
	// a line longer than the probe window cannot be aligned
	data := bytes.Repeat([]byte{'x'}, 4*probeWindow)
	_, err := Plan(bytes.NewReader(data), int64(len(data)), 2)
	if !errors.Is(err, ErrNoLineBreak) {
		t.Errorf("err = %v, want ErrNoLineBreak", err)
	}
}

func TestPlanRejectsZeroChunks(t *testing.T) {
	if _, err := Plan(bytes.NewReader(nil), 0, 0); err == nil {
		t.Error("expected an error for zero chunks")
	}
}
