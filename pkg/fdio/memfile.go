//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package fdio

import (
	"io"
	"os"

	"github.com/fredli74/bytearray"
)

var zeroChunk [512]byte

// MemFile is an in-memory Descriptor. Unlike the underlying bytearray,
// which keeps separate read and write cursors, it maintains the single
// file position an OS descriptor would have.
type MemFile struct {
	data   bytearray.ByteArray
	pos    int
	closed bool
}

// NewMemFile returns an empty in-memory descriptor.
func NewMemFile() *MemFile {
	return &MemFile{}
}

func (m *MemFile) Read(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	if m.pos >= m.data.Len() {
		return 0, io.EOF
	}
	m.data.ReadSeek(m.pos, bytearray.SEEK_SET)
	n, err := m.data.Read(p)
	if err == io.EOF && n > 0 {
		err = nil
	}
	m.pos += n
	return n, err
}

func (m *MemFile) Write(p []byte) (int, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	if len(p) == 0 {
		return 0, nil
	}
	// Recycled chunks are not cleared, so a position beyond the current
	// end needs an explicit zero fill before the payload goes in.
	for m.data.Len() < m.pos {
		gap := m.pos - m.data.Len()
		if gap > len(zeroChunk) {
			gap = len(zeroChunk)
		}
		m.data.WriteSeek(0, bytearray.SEEK_END)
		m.data.Write(zeroChunk[:gap])
	}
	m.data.WriteSeek(m.pos, bytearray.SEEK_SET)
	n, _ := m.data.Write(p)
	m.pos += n
	return n, nil
}

func (m *MemFile) Seek(offset int64, whence int) (int64, error) {
	if m.closed {
		return 0, os.ErrClosed
	}
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = offset
	case io.SeekCurrent:
		abs = int64(m.pos) + offset
	case io.SeekEnd:
		abs = int64(m.data.Len()) + offset
	default:
		return 0, os.ErrInvalid
	}
	if abs < 0 {
		return 0, os.ErrInvalid
	}
	m.pos = int(abs)
	return abs, nil
}

func (m *MemFile) Close() error {
	if m.closed {
		return os.ErrClosed
	}
	m.closed = true
	m.data.Release()
	return nil
}

// Len returns the current data size.
func (m *MemFile) Len() int {
	return m.data.Len()
}

// Bytes copies out the full contents, mainly for verification.
func (m *MemFile) Bytes() []byte {
	out := make([]byte, m.data.Len())
	if len(out) > 0 {
		m.data.ReadSeek(0, bytearray.SEEK_SET)
		m.data.Read(out)
	}
	return out
}
