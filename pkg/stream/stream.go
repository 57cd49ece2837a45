//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

// Package stream implements classic full-buffered file streams on top
// of the raw descriptors in pkg/fdio, without any help from bufio. A
// single fixed-size buffer serves both read-ahead and write-behind
// duty, and the stream keeps the descriptor position consistent with
// what the caller has logically consumed or produced.
package stream

import (
	"fmt"
	"io"
	"os"

	"github.com/fredli74/buffile/pkg/fdio"
)

// BufSiz is the default buffer capacity for new streams.
const BufSiz = 8192

// BufferMode selects the buffering discipline for SetBuffer.
type BufferMode int

const (
	BufferNone BufferMode = iota
	BufferLine
	BufferFull
)

type action byte

const (
	actionNone action = iota
	actionRead
	actionWrite
)

type accessMode byte

const (
	modeRead accessMode = iota
	modeWrite
	modeReadWrite
)

//********************************************************************************//
//                                     Stream                                     //
//********************************************************************************//

// Stream is a buffered file handle. It owns its descriptor and buffer
// exclusively and has no internal locking; each stream must stay on a
// single goroutine.
//
// Invariant: 0 <= bufAt <= bufEnd <= len(buf). In read direction,
// bufEnd-bufAt is how far the descriptor has run ahead of the caller;
// in write direction bufEnd mirrors bufAt because every buffered byte
// is pending output.
type Stream struct {
	fd   fdio.Descriptor
	name string
	mode accessMode

	buf    []byte
	bufAt  int
	bufEnd int
	last   action
	bmode  BufferMode

	fetched int64 // total bytes ever refilled, drives the line-read rollback

	err    error
	atEOF  bool
	closed bool
}

// Open opens name with mode "r", "r+", "w" or "w+" and full buffering.
// "w" and "w+" create or truncate the file. Append modes are not
// supported.
func Open(name, mode string) (*Stream, error) {
	am, flag, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	fd, err := fdio.OpenFile(name, flag, 0o666)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFailure, name, err)
	}
	return newStream(fd, name, am), nil
}

// OpenDescriptor wraps an already open descriptor in a stream, the way
// fdopen wraps a file descriptor. The stream takes ownership of fd and
// closes it on Close. The mode string only selects the access checks;
// it must match what fd actually allows.
func OpenDescriptor(fd fdio.Descriptor, name, mode string) (*Stream, error) {
	am, _, err := parseMode(mode)
	if err != nil {
		return nil, err
	}
	return newStream(fd, name, am), nil
}

func newStream(fd fdio.Descriptor, name string, am accessMode) *Stream {
	return &Stream{
		fd:    fd,
		name:  name,
		mode:  am,
		buf:   make([]byte, BufSiz),
		bmode: BufferFull,
	}
}

func parseMode(mode string) (accessMode, int, error) {
	switch mode {
	case "r":
		return modeRead, os.O_RDONLY, nil
	case "r+":
		return modeReadWrite, os.O_RDWR, nil
	case "w":
		return modeWrite, os.O_WRONLY | os.O_CREATE | os.O_TRUNC, nil
	case "w+":
		return modeReadWrite, os.O_RDWR | os.O_CREATE | os.O_TRUNC, nil
	}
	return 0, 0, fmt.Errorf("%w: %q", ErrBadMode, mode)
}

// record stores the first hard error on the stream and returns the
// composed error for the failing call.
func (f *Stream) record(kind, cause error) error {
	err := kind
	if cause != nil {
		err = fmt.Errorf("%w: %s: %v", kind, f.name, cause)
	}
	if f.err == nil {
		f.err = err
	}
	return err
}

//********************************************************************************//
//                               flush/seek machine                               //
//********************************************************************************//

// sync reconciles the buffer with the real descriptor position: pending
// written bytes are flushed out, and read-ahead the caller never
// consumed is unwound with a relative seek. State is only reset when
// the descriptor operation succeeded, so a failed sync leaves the
// buffer intact for a retry or for teardown to report.
func (f *Stream) sync() error {
	switch f.last {
	case actionWrite:
		n, err := f.fd.Write(f.buf[:f.bufAt])
		if err != nil {
			return f.record(ErrWriteFailure, err)
		}
		if n != f.bufAt {
			return f.record(ErrWriteFailure, fmt.Errorf("short write %d of %d", n, f.bufAt))
		}
	case actionRead:
		ASSERT(f.bufAt <= f.bufEnd, f.bufAt, f.bufEnd)
		if _, err := f.fd.Seek(int64(f.bufAt-f.bufEnd), io.SeekCurrent); err != nil {
			return f.record(ErrSeekFailure, err)
		}
	}
	f.bufAt, f.bufEnd, f.last = 0, 0, actionNone
	return nil
}

// Flush writes out buffered data in write direction, or rewinds the
// descriptor over unconsumed read-ahead in read direction.
func (f *Stream) Flush() error {
	if f.closed {
		return ErrClosed
	}
	return f.sync()
}

// Seek discards the buffer via a sync and repositions the descriptor;
// a sync failure aborts the seek. On success the end-of-stream flag is
// cleared and the new absolute offset returned. whence is io.SeekStart,
// io.SeekCurrent or io.SeekEnd.
func (f *Stream) Seek(offset int64, whence int) (int64, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if err := f.sync(); err != nil {
		return 0, err
	}
	pos, err := f.fd.Seek(offset, whence)
	if err != nil {
		return 0, f.record(ErrSeekFailure, err)
	}
	f.atEOF = false
	return pos, nil
}

// SetBuffer replaces the buffer of a stream that has not started any
// I/O yet. Only BufferFull is functional; BufferNone and BufferLine are
// refused. The stream adopts buf, uses len(buf) as its capacity and
// keeps it until the next SetBuffer or Close.
func (f *Stream) SetBuffer(buf []byte, mode BufferMode) error {
	if f.closed {
		return ErrClosed
	}
	if mode != BufferFull {
		return ErrUnsupportedBuffering
	}
	if len(buf) == 0 {
		return os.ErrInvalid
	}
	if f.last != actionNone || f.err != nil {
		return ErrBufferActive
	}
	f.buf = buf
	f.bmode = mode
	return nil
}

// Close flushes pending writes, then releases the buffer and the
// descriptor. Resources are released even when the flush fails; the
// flush error takes precedence over a descriptor close error.
func (f *Stream) Close() error {
	if f.closed {
		return ErrClosed
	}
	flushErr := f.sync()
	closeErr := f.fd.Close()
	f.buf = nil
	f.closed = true
	if flushErr != nil {
		return flushErr
	}
	if closeErr != nil {
		return f.record(ErrCloseFailure, closeErr)
	}
	return nil
}

// Err returns the first hard error recorded on the stream, if any.
// End-of-stream is not an error and never recorded.
func (f *Stream) Err() error {
	return f.err
}

// AtEOF reports whether a read has observed the end of the underlying
// data. Writes never set it; a successful Seek clears it.
func (f *Stream) AtEOF() bool {
	return f.atEOF
}

// Name returns the name the stream was opened with.
func (f *Stream) Name() string {
	return f.name
}
