package input

import (
	"fmt"

	"golang.org/x/exp/mmap"
)

type mmapAtSource struct {
	r *mmap.ReaderAt
}

func openMmapAt(path string) (*mmapAtSource, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	return &mmapAtSource{r: r}, nil
}

func (s *mmapAtSource) ReadAt(p []byte, off int64) (int, error) {
	return s.r.ReadAt(p, off)
}

func (s *mmapAtSource) Size() int64 {
	return int64(s.r.Len())
}

func (s *mmapAtSource) Close() error {
	return s.r.Close()
}
