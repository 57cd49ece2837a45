//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package stream

import (
	"fmt"
)

//********************************************************************************//
//                                   write path                                   //
//********************************************************************************//

// Write copies p into the buffer, flushing first when p would not fit
// after the pending bytes. Requests larger than the buffer capacity
// go straight to the descriptor after the flush. Buffered writes
// always succeed in full; direct writes report a recorded failure when
// the descriptor errors or comes up short.
func (f *Stream) Write(p []byte) (int, error) {
	if f.closed {
		return 0, ErrClosed
	}
	if f.mode == modeRead {
		return 0, ErrNotWritable
	}
	if len(p) == 0 {
		return 0, nil
	}
	if f.last == actionRead {
		if err := f.sync(); err != nil {
			return 0, err
		}
	}
	if f.bufAt+len(p) > len(f.buf) {
		if err := f.sync(); err != nil {
			return 0, err
		}
	}
	if len(p) > len(f.buf) {
		n, err := f.fd.Write(p)
		if err != nil {
			return n, f.record(ErrWriteFailure, err)
		}
		if n != len(p) {
			return n, f.record(ErrWriteFailure, fmt.Errorf("short write %d of %d", n, len(p)))
		}
		return n, nil
	}
	copy(f.buf[f.bufAt:], p)
	f.bufAt += len(p)
	f.bufEnd = f.bufAt
	f.last = actionWrite
	return len(p), nil
}

// WriteByte writes a single byte.
func (f *Stream) WriteByte(c byte) error {
	b := [1]byte{c}
	_, err := f.Write(b[:])
	return err
}

// WriteString writes the bytes of s.
func (f *Stream) WriteString(s string) (int, error) {
	return f.Write([]byte(s))
}

const itoaBufSize = 32

// itoa formats i backwards into a, returning the used slice.
func itoa(i int64, a *[itoaBufSize]byte) []byte {
	u := uint64(i)
	if i < 0 {
		u = -u
	}
	at := len(a)
	for u > 0 {
		at--
		a[at] = byte('0' + u%10)
		u /= 10
	}
	if at == len(a) {
		at--
		a[at] = '0'
	}
	if i < 0 {
		at--
		a[at] = '-'
	}
	return a[at:]
}

// Printf writes format to the stream, expanding %d with the next int
// or int64 argument and %s with the next string or []byte argument,
// and returns the number of bytes written. Unknown conversions print
// the character itself, so %% is a literal percent. A conversion with
// no argument left prints verbatim; an argument of the wrong type is
// consumed and the conversion printed verbatim.
func (f *Stream) Printf(format string, args ...interface{}) (int, error) {
	n := 0
	arg := 0
	emit := func(out []byte) error {
		for _, c := range out {
			if err := f.WriteByte(c); err != nil {
				return err
			}
			n++
		}
		return nil
	}
	for i := 0; i < len(format); i++ {
		if format[i] != '%' {
			if err := f.WriteByte(format[i]); err != nil {
				return n, err
			}
			n++
			continue
		}
		i++
		if i == len(format) {
			if err := f.WriteByte('%'); err != nil {
				return n, err
			}
			n++
			break
		}
		switch format[i] {
		case 'd':
			out := []byte{'%', 'd'}
			var scratch [itoaBufSize]byte
			if arg < len(args) {
				switch v := args[arg].(type) {
				case int:
					out = itoa(int64(v), &scratch)
				case int64:
					out = itoa(v, &scratch)
				}
				arg++
			}
			if err := emit(out); err != nil {
				return n, err
			}
		case 's':
			out := []byte{'%', 's'}
			if arg < len(args) {
				switch v := args[arg].(type) {
				case string:
					out = []byte(v)
				case []byte:
					out = v
				}
				arg++
			}
			if err := emit(out); err != nil {
				return n, err
			}
		default:
			if err := f.WriteByte(format[i]); err != nil {
				return n, err
			}
			n++
		}
	}
	return n, nil
}
