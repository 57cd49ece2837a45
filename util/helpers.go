package main

import (
	"io"
	"os"

	"github.com/fredli74/buffile/pkg/fdio"
	"github.com/fredli74/buffile/pkg/filelock"
	"github.com/fredli74/buffile/pkg/stream"
)

// pump moves everything left in src to dst in chunk-sized pieces and
// returns the byte count.
func (c *commandSet) pump(src, dst *stream.Stream, chunk int) int64 {
	p := make([]byte, chunk)
	total := int64(0)
	for {
		n, err := src.Read(p)
		if n > 0 {
			_, werr := dst.Write(p[:n])
			stream.AbortOn(werr, "write %s: %v", dst.Name(), werr)
			total += int64(n)
		}
		if err == io.EOF {
			break
		}
		stream.AbortOn(err, "read %s: %v", src.Name(), err)
		if src.AtEOF() {
			break
		}
	}
	return total
}

// openLocked opens name for writing through a raw descriptor so the
// whole output file can be locked while the stream fills it.
func (c *commandSet) openLocked(name string) (*stream.Stream, *filelock.Locker) {
	fd, err := fdio.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o666)
	stream.AbortOn(err, "open %s: %v", name, err)
	lock := filelock.New(fd.Fd())
	err = lock.Lock()
	stream.AbortOn(err, "lock %s: %v", name, err)
	f, err := stream.OpenDescriptor(fd, name, "w")
	stream.AbortOn(err, "open %s: %v", name, err)
	c.applyBuffer(f)
	return f, lock
}

// closeLocked flushes and closes a locked output stream. The lock is
// released before the descriptor closes, since closing the descriptor
// drops it anyway.
func (c *commandSet) closeLocked(f *stream.Stream, lock *filelock.Locker) {
	err := f.Flush()
	stream.AbortOn(err, "flush %s: %v", f.Name(), err)
	err = lock.Unlock()
	stream.AbortOn(err, "unlock %s: %v", f.Name(), err)
	err = f.Close()
	stream.AbortOn(err, "close %s: %v", f.Name(), err)
}
