//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

// Package filelock takes whole-file advisory locks on raw file
// descriptors, so a descriptor opened through pkg/fdio can be guarded
// without reopening the file by name.
package filelock

// Locker wraps a platform-specific file lock on an open descriptor.
// It does not own the descriptor; closing the descriptor drops the
// lock.
type Locker struct {
	fd uintptr
}

// New returns a Locker for an open descriptor without taking the lock.
func New(fd uintptr) *Locker {
	return &Locker{fd: fd}
}
