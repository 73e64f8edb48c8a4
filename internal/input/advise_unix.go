//go:build unix

package input

import "golang.org/x/sys/unix"

// advise hints that the mapping will be scanned front to back.
func advise(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, unix.MADV_SEQUENTIAL)
}
