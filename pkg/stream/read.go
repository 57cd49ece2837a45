//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package stream

import (
	"io"
)

//********************************************************************************//
//                                   read path                                    //
//********************************************************************************//

// Read fills p from the buffer, refilling from the descriptor as
// needed. Requests larger than the remaining buffered bytes drain the
// buffer, sync, and either bypass the buffer entirely (request larger
// than its capacity) or refill it. A short refill marks end-of-stream
// once the buffered bytes run out; Read then returns what it has, and
// io.EOF only when it has nothing.
func (f *Stream) Read(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.mode == modeWrite {
		return 0, ErrNotReadable
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.last == actionWrite {
		if err := f.sync(); err != nil {
			return 0, err
		}
	}

	at := 0
	if f.last == actionRead && f.bufAt+len(p) > f.bufEnd {
		// Drain what is buffered before giving up the buffer. The sync
		// only has to unwind read-ahead we did not hand out, so the
		// drained bytes are committed first and taken back on failure.
		at += copy(p, f.buf[f.bufAt:f.bufEnd])
		f.bufAt += at
		if err := f.sync(); err != nil {
			f.bufAt -= at
			return 0, err
		}
	}
	if f.last == actionNone {
		if len(p)-at > len(f.buf) {
			return f.readDirect(p, at)
		}
		n, err := f.fd.Read(f.buf)
		if err == io.EOF {
			f.atEOF = true
			if at == 0 {
				return 0, io.EOF
			}
			return at, nil
		}
		if err != nil {
			return at, f.record(ErrReadFailure, err)
		}
		f.bufEnd = n
		f.fetched += int64(n)
		f.last = actionRead
	}
	for at < len(p) {
		if f.bufAt == f.bufEnd {
			if f.bufEnd < len(f.buf) {
				f.atEOF = true
			}
			break
		}
		p[at] = f.buf[f.bufAt]
		at++
		f.bufAt++
	}
	return at, nil
}

// readDirect moves the outstanding part of a large request straight
// from the descriptor into p, skipping the buffer.
func (f *Stream) readDirect(p []byte, at int) (int, error) {
	n, err := f.fd.Read(p[at:])
	if err == io.EOF {
		f.atEOF = true
		if at == 0 {
			return 0, io.EOF
		}
		return at, nil
	}
	if err != nil {
		return at, f.record(ErrReadFailure, err)
	}
	if n < len(p)-at {
		f.atEOF = true
	}
	return at + n, nil
}

// ReadByte reads and returns a single byte.
func (f *Stream) ReadByte() (byte, error) {
	var b [1]byte
	n, err := f.Read(b[:])
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, io.EOF
	}
	return b[0], nil
}

// ReadLine reads bytes into p up to and including the next '\n', the
// end of the stream, or len(p) bytes, whichever comes first, and
// returns how many bytes it stored. A read that ends before any byte
// was stored returns io.EOF.
//
// A line can span several buffer refills. When a hard error interrupts
// it, every byte the call already consumed is put back by seeking the
// descriptor to where the line started, so the stream position is as
// if the call never happened. The distance is the unconsumed
// read-ahead at entry plus whatever the refills fetched since.
func (f *Stream) ReadLine(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.mode == modeWrite {
		return 0, ErrNotReadable
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.last == actionWrite {
		if err := f.sync(); err != nil {
			return 0, err
		}
	}

	ahead := int64(f.bufEnd - f.bufAt)
	mark := f.fetched
	n := 0
	for n < len(p) {
		c, err := f.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			f.rewind(ahead + f.fetched - mark)
			return 0, err
		}
		p[n] = c
		n++
		if c == '\n' {
			break
		}
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// rewind repositions the descriptor delta bytes back and empties the
// buffer. It runs after a hard read failure already recorded on the
// stream; failing to restore the position on top of that leaves the
// stream in a state no caller can reason about, so it aborts.
func (f *Stream) rewind(delta int64) {
	f.bufAt, f.bufEnd, f.last = 0, 0, actionNone
	if delta == 0 {
		return
	}
	if _, err := f.fd.Seek(-delta, io.SeekCurrent); err != nil {
		Abort("reposition failure on %s: %v", f.name, err)
	}
}
