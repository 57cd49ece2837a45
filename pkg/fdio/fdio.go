//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

// Package fdio provides raw descriptor access with POSIX read, write,
// seek and close semantics. It is the only layer that talks to the OS;
// everything above it works against the Descriptor interface, which
// also has in-memory and memory-mapped implementations.
package fdio

// Descriptor is a raw seekable byte handle. Read returns io.EOF when no
// data is left; a short read with a nil error is legal and callers must
// check counts. Write may be short without an error on POSIX targets,
// so callers must compare the returned count as well. Seek takes the
// io.SeekStart, io.SeekCurrent and io.SeekEnd whence values.
type Descriptor interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Close() error
}
