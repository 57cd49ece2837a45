//go:build unix

package fdio

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// OSFile is a Descriptor backed by an open file descriptor.
type OSFile struct {
	fd   int
	path string
}

// OpenFile opens path with os.O_* flags and returns the raw descriptor.
func OpenFile(path string, flag int, perm os.FileMode) (*OSFile, error) {
	fd, err := unix.Open(path, flag|unix.O_CLOEXEC, uint32(perm.Perm()))
	if err != nil {
		return nil, err
	}
	return &OSFile{fd: fd, path: path}, nil
}

func (f *OSFile) Read(p []byte) (int, error) {
	if f.fd < 0 {
		return 0, os.ErrClosed
	}
	n, err := unix.Read(f.fd, p)
	if err != nil {
		return 0, err
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

func (f *OSFile) Write(p []byte) (int, error) {
	if f.fd < 0 {
		return 0, os.ErrClosed
	}
	n, err := unix.Write(f.fd, p)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (f *OSFile) Seek(offset int64, whence int) (int64, error) {
	if f.fd < 0 {
		return 0, os.ErrClosed
	}
	return unix.Seek(f.fd, offset, whence)
}

func (f *OSFile) Close() error {
	if f.fd < 0 {
		return os.ErrClosed
	}
	err := unix.Close(f.fd)
	f.fd = -1
	return err
}

// Fd exposes the descriptor number for advisory locking.
func (f *OSFile) Fd() uintptr {
	return uintptr(f.fd)
}
