//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package stream

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/fredli74/buffile/pkg/fdio"
)

// shortWriter accepts at most max bytes per write call.
type shortWriter struct {
	*fdio.MemFile
	max int
}

func (d *shortWriter) Write(p []byte) (int, error) {
	if len(p) > d.max {
		p = p[:d.max]
	}
	return d.MemFile.Write(p)
}

func TestPrintfFormatting(t *testing.T) {
	cases := []struct {
		format string
		args   []interface{}
		want   string
	}{
		{"%d-%s-%%", []interface{}{-7, "ab"}, "-7-ab-%"},
		{"%d", []interface{}{0}, "0"},
		{"%d", []interface{}{int64(math.MinInt64)}, "-9223372036854775808"},
		{"%s", []interface{}{[]byte("raw")}, "raw"},
		{"a%xb", nil, "axb"},
		{"100%", nil, "100%"},
		{"[%d]", nil, "[%d]"},
		{"%%d", nil, "%d"},
		{"%s", []interface{}{42}, "%s"},
		{"%d%d", []interface{}{1}, "1%d"},
	}
	for _, tc := range cases {
		mem := fdio.NewMemFile()
		f, err := OpenDescriptor(mem, "mem", "w")
		if err != nil {
			t.Fatalf("open descriptor: %v", err)
		}
		n, err := f.Printf(tc.format, tc.args...)
		if err != nil {
			t.Fatalf("printf %q: %v", tc.format, err)
		}
		if n != len(tc.want) {
			t.Fatalf("printf %q wrote %d bytes, want %d", tc.format, n, len(tc.want))
		}
		if err := f.Flush(); err != nil {
			t.Fatalf("flush: %v", err)
		}
		if got := string(mem.Bytes()); got != tc.want {
			t.Fatalf("printf %q = %q, want %q", tc.format, got, tc.want)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("close: %v", err)
		}
	}
}

func TestWriteBuffersUntilOverflow(t *testing.T) {
	mem := fdio.NewMemFile()
	fd := &traceDescriptor{MemFile: mem}
	f, err := OpenDescriptor(fd, "trace", "w")
	if err != nil {
		t.Fatalf("open descriptor: %v", err)
	}
	if err := f.SetBuffer(make([]byte, 16), BufferFull); err != nil {
		t.Fatalf("set buffer: %v", err)
	}

	// Exactly capacity still fits the buffer.
	if _, err := f.Write(make([]byte, 16)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fd.writes) != 0 {
		t.Fatalf("full-buffer write went to the descriptor early: %v", fd.writes)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if len(fd.writes) != 1 || fd.writes[0] != 16 {
		t.Fatalf("flush traffic: %v", fd.writes)
	}

	// One byte over capacity goes straight to the descriptor.
	if _, err := f.Write(make([]byte, 17)); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fd.writes) != 2 || fd.writes[1] != 17 {
		t.Fatalf("oversized write was buffered: %v", fd.writes)
	}

	// And a small write after that is buffered again.
	if _, err := f.Write([]byte("ab")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fd.writes) != 2 {
		t.Fatalf("small write went to the descriptor: %v", fd.writes)
	}
}

func TestWriteFlushesPendingOnOverflow(t *testing.T) {
	mem := fdio.NewMemFile()
	fd := &traceDescriptor{MemFile: mem}
	f, err := OpenDescriptor(fd, "trace", "w")
	if err != nil {
		t.Fatalf("open descriptor: %v", err)
	}
	if err := f.SetBuffer(make([]byte, 16), BufferFull); err != nil {
		t.Fatalf("set buffer: %v", err)
	}

	if _, err := f.Write([]byte("0123456789")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := f.Write([]byte("abcdefghij")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(fd.writes) != 1 || fd.writes[0] != 10 {
		t.Fatalf("overflow did not flush the pending bytes first: %v", fd.writes)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if got := string(mem.Bytes()); got != "0123456789abcdefghij" {
		t.Fatalf("descriptor content %q", got)
	}
}

func TestReadThenWriteSwitch(t *testing.T) {
	dir := t.TempDir()
	path := writeFixture(t, dir, "data", []byte("0123456789"))

	f, err := Open(path, "r+")
	if err != nil {
		t.Fatalf("open r+: %v", err)
	}
	got := make([]byte, 3)
	if n, err := f.Read(got); n != 3 || err != nil {
		t.Fatalf("read = %d, %v", n, err)
	}
	if string(got) != "012" {
		t.Fatalf("read = %q", got)
	}
	// The buffer ran ahead; switching direction must rewind the
	// descriptor so the write lands right after the consumed bytes.
	if _, err := f.WriteString("XY"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if got := readBack(t, path); string(got) != "012XY56789" {
		t.Fatalf("file after switch = %q", got)
	}
}

func TestShortWriteReportsFailure(t *testing.T) {
	mem := fdio.NewMemFile()
	fd := &shortWriter{MemFile: mem, max: 4}
	f, err := OpenDescriptor(fd, "short", "w")
	if err != nil {
		t.Fatalf("open descriptor: %v", err)
	}
	if err := f.SetBuffer(make([]byte, 16), BufferFull); err != nil {
		t.Fatalf("set buffer: %v", err)
	}
	n, err := f.Write(make([]byte, 20))
	if !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("direct short write = %v, want ErrWriteFailure", err)
	}
	if n != 4 {
		t.Fatalf("direct short write count = %d, want 4", n)
	}
	if !errors.Is(f.Err(), ErrWriteFailure) {
		t.Fatalf("recorded error = %v", f.Err())
	}

	mem2 := fdio.NewMemFile()
	fd2 := &shortWriter{MemFile: mem2, max: 4}
	f2, err := OpenDescriptor(fd2, "short", "w")
	if err != nil {
		t.Fatalf("open descriptor: %v", err)
	}
	if err := f2.SetBuffer(make([]byte, 16), BufferFull); err != nil {
		t.Fatalf("set buffer: %v", err)
	}
	if _, err := f2.WriteString("abcdef"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f2.Flush(); !errors.Is(err, ErrWriteFailure) {
		t.Fatalf("short flush = %v, want ErrWriteFailure", err)
	}
}

func TestEndFlagNeverSetByWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")

	f, err := Open(path, "w")
	if err != nil {
		t.Fatalf("open w: %v", err)
	}
	if _, err := f.WriteString("data"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if _, err := f.Write(make([]byte, BufSiz+1)); err != nil {
		t.Fatalf("direct write: %v", err)
	}
	if _, err := f.Printf("%d", 42); err != nil {
		t.Fatalf("printf: %v", err)
	}
	if f.AtEOF() {
		t.Fatal("a write set the end flag")
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}
