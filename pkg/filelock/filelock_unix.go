//go:build unix

package filelock

import (
	"os"

	"golang.org/x/sys/unix"
)

// Lock blocks until it holds an exclusive advisory lock on the whole file.
func (l *Locker) Lock() error {
	flock := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: int16(os.SEEK_SET),
		Start:  0,
		Len:    0, // whole file
	}
	return unix.FcntlFlock(l.fd, unix.F_SETLKW, &flock)
}

// TryLock attempts the lock without blocking and reports whether it
// was acquired.
func (l *Locker) TryLock() (bool, error) {
	flock := unix.Flock_t{
		Type:   unix.F_WRLCK,
		Whence: int16(os.SEEK_SET),
		Start:  0,
		Len:    0, // whole file
	}
	err := unix.FcntlFlock(l.fd, unix.F_SETLK, &flock)
	if err == unix.EAGAIN || err == unix.EACCES {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Unlock releases the advisory lock.
func (l *Locker) Unlock() error {
	flock := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: int16(os.SEEK_SET),
		Start:  0,
		Len:    0,
	}
	return unix.FcntlFlock(l.fd, unix.F_SETLK, &flock)
}
