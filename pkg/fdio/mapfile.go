//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package fdio

import (
	"errors"
	"io"
	"os"

	"golang.org/x/exp/mmap"
)

// ErrReadOnly is returned when writing to a read-only descriptor.
var ErrReadOnly = errors.New("descriptor is read-only")

// MapFile is a read-only Descriptor over a memory-mapped file.
type MapFile struct {
	r   *mmap.ReaderAt
	off int64
}

// OpenMap maps path read-only.
func OpenMap(path string) (*MapFile, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	return &MapFile{r: r}, nil
}

func (m *MapFile) Read(p []byte) (int, error) {
	if m.r == nil {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if m.off >= int64(m.r.Len()) {
		return 0, io.EOF
	}
	n, err := m.r.ReadAt(p, m.off)
	m.off += int64(n)
	if err == io.EOF && n > 0 {
		err = nil
	}
	return n, err
}

func (m *MapFile) Write(p []byte) (int, error) {
	return 0, ErrReadOnly
}

func (m *MapFile) Seek(offset int64, whence int) (int64, error) {
	if m.r == nil {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = m.off + offset
	case io.SeekEnd:
		abs = int64(m.r.Len()) + offset
	default:
		return 0, os.ErrInvalid
	}
	if abs < 0 {
		return 0, os.ErrInvalid
	}
	m.off = abs
	return abs, nil
}

func (m *MapFile) Close() error {
	if m.r == nil {
		return os.ErrClosed
	}
	err := m.r.Close()
	m.r = nil
	return err
}
