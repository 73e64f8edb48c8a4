package stats

import "unsafe"

// bytesToString gives a string view of b without copying. The view must
// not outlive b, so the table engines use it only for lookups; stored
// keys are always copied with string(key).
func bytesToString(b []byte) string {
	return unsafe.String(unsafe.SliceData(b), len(b))
}
