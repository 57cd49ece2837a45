//go:build windows

package filelock

import (
	"golang.org/x/sys/windows"
)

// Lock blocks until it holds an exclusive lock using LockFileEx.
func (l *Locker) Lock() error {
	return lockFileEx(l.fd, windows.LOCKFILE_EXCLUSIVE_LOCK)
}

// TryLock attempts the lock without blocking and reports whether it
// was acquired.
func (l *Locker) TryLock() (bool, error) {
	err := lockFileEx(l.fd, windows.LOCKFILE_EXCLUSIVE_LOCK|windows.LOCKFILE_FAIL_IMMEDIATELY)
	if err == windows.ERROR_LOCK_VIOLATION {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Unlock releases the lock using UnlockFileEx.
func (l *Locker) Unlock() error {
	return unlockFileEx(l.fd)
}

func lockFileEx(fd uintptr, flags uint32) error {
	var ol windows.Overlapped
	return windows.LockFileEx(windows.Handle(fd), flags, 0, 1, 0, &ol)
}

func unlockFileEx(fd uintptr) error {
	var ol windows.Overlapped
	return windows.UnlockFileEx(windows.Handle(fd), 0, 1, 0, &ol)
}
