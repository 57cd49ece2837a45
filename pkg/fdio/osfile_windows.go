//go:build windows

package fdio

import (
	"io"
	"os"

	"golang.org/x/sys/windows"
)

// OSFile is a Descriptor backed by an open file handle.
type OSFile struct {
	h    windows.Handle
	path string
	open bool
}

// OpenFile opens path with os.O_* flags and returns the raw descriptor.
func OpenFile(path string, flag int, perm os.FileMode) (*OSFile, error) {
	name, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return nil, err
	}
	var access uint32
	switch flag & (os.O_RDONLY | os.O_WRONLY | os.O_RDWR) {
	case os.O_WRONLY:
		access = windows.GENERIC_WRITE
	case os.O_RDWR:
		access = windows.GENERIC_READ | windows.GENERIC_WRITE
	default:
		access = windows.GENERIC_READ
	}
	disposition := uint32(windows.OPEN_EXISTING)
	switch {
	case flag&os.O_CREATE != 0 && flag&os.O_TRUNC != 0:
		disposition = windows.CREATE_ALWAYS
	case flag&os.O_CREATE != 0:
		disposition = windows.OPEN_ALWAYS
	case flag&os.O_TRUNC != 0:
		disposition = windows.TRUNCATE_EXISTING
	}
	share := uint32(windows.FILE_SHARE_READ | windows.FILE_SHARE_WRITE)
	h, err := windows.CreateFile(name, access, share, nil, disposition, windows.FILE_ATTRIBUTE_NORMAL, 0)
	if err != nil {
		return nil, err
	}
	return &OSFile{h: h, path: path, open: true}, nil
}

func (f *OSFile) Read(p []byte) (int, error) {
	if !f.open {
		return 0, os.ErrClosed
	}
	var done uint32
	err := windows.ReadFile(f.h, p, &done, nil)
	if err == windows.ERROR_HANDLE_EOF {
		return 0, io.EOF
	}
	if err != nil {
		return 0, err
	}
	if done == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return int(done), nil
}

func (f *OSFile) Write(p []byte) (int, error) {
	if !f.open {
		return 0, os.ErrClosed
	}
	var done uint32
	if err := windows.WriteFile(f.h, p, &done, nil); err != nil {
		return 0, err
	}
	return int(done), nil
}

func (f *OSFile) Seek(offset int64, whence int) (int64, error) {
	if !f.open {
		return 0, os.ErrClosed
	}
	return windows.Seek(f.h, offset, whence)
}

func (f *OSFile) Close() error {
	if !f.open {
		return os.ErrClosed
	}
	f.open = false
	return windows.CloseHandle(f.h)
}

// Fd exposes the handle for advisory locking.
func (f *OSFile) Fd() uintptr {
	return uintptr(f.h)
}
