package input

import (
	"fmt"
	"io"
	"os"

	mmap "github.com/edsrzf/mmap-go"
)

type mmapSource struct {
	f    *os.File
	data mmap.MMap
}

func openMmap(path string) (*mmapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}
	// mapping an empty file fails with EINVAL
	if fi.Size() == 0 {
		return &mmapSource{f: f}, nil
	}
	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file: %w", err)
	}
	advise(data)
	return &mmapSource{f: f, data: data}, nil
}

func (s *mmapSource) Bytes() []byte {
	return s.data
}

func (s *mmapSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s.data)) {
		return 0, fmt.Errorf("invalid offset %d", off)
	}
	n := copy(p, s.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *mmapSource) Size() int64 {
	return int64(len(s.data))
}

func (s *mmapSource) Close() error {
	if s.data != nil {
		if err := s.data.Unmap(); err != nil {
			s.f.Close()
			return fmt.Errorf("failed to unmap file: %w", err)
		}
		s.data = nil
	}
	return s.f.Close()
}
