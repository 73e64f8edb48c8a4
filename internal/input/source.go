// Package input opens measurement files for random access reads.
package input

import (
	"fmt"
	"io"
	"os"
)

// Source is a measurement file open for reading. Implementations are
// safe for concurrent ReadAt calls.
type Source interface {
	io.ReaderAt
	Size() int64
	Close() error
}

// ByteSource is implemented by sources that hold the whole file in
// memory and can hand it out without copying.
type ByteSource interface {
	Bytes() []byte
}

type Mode string

const (
	ModeMmap   Mode = "mmap"
	ModeMmapAt Mode = "mmapat"
	ModePread  Mode = "pread"
)

func Open(path string, mode Mode) (Source, error) {
	switch mode {
	case ModeMmap, "":
		return openMmap(path)
	case ModeMmapAt:
		return openMmapAt(path)
	case ModePread:
		return openFile(path)
	}
	return nil, fmt.Errorf("unknown reader mode %q", mode)
}

type fileSource struct {
	f    *os.File
	size int64
}

func openFile(path string) (*fileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	return &fileSource{f: f, size: fi.Size()}, nil
}

func (s *fileSource) ReadAt(p []byte, off int64) (int, error) {
	return s.f.ReadAt(p, off)
}

func (s *fileSource) Size() int64 {
	return s.size
}

func (s *fileSource) Close() error {
	return s.f.Close()
}
