package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fredli74/buffile/pkg/fdio"
	"github.com/fredli74/buffile/pkg/stream"
	"github.com/fredli74/lockfile"
	"github.com/smtc/rollsum"
)

type commandSet struct {
	bufSize int64
	out     io.Writer
}

func newCommandSet(bufSize int64) *commandSet {
	return &commandSet{bufSize: bufSize, out: os.Stdout}
}

func (c *commandSet) openStream(name, mode string) *stream.Stream {
	f, err := stream.Open(name, mode)
	stream.AbortOn(err, "open %s: %v", name, err)
	c.applyBuffer(f)
	return f
}

func (c *commandSet) applyBuffer(f *stream.Stream) {
	if c.bufSize > 0 {
		err := f.SetBuffer(make([]byte, c.bufSize), stream.BufferFull)
		stream.AbortOn(err, "set buffer on %s: %v", f.Name(), err)
	}
}

// chunkSize picks a transfer chunk for the configured buffer. direct
// asks for one byte more than the buffer holds, which routes every
// chunk straight to the descriptor.
func (c *commandSet) chunkSize(direct bool) int {
	size := int(c.bufSize)
	if size <= 0 {
		size = stream.BufSiz
	}
	if direct {
		return size + 1
	}
	if size > 4096 {
		size = 4096
	}
	return size
}

func (c *commandSet) cat(names []string) {
	for _, name := range names {
		f := c.openStream(name, "r")
		total := int64(0)
		p := make([]byte, c.chunkSize(false))
		for {
			n, err := f.Read(p)
			if n > 0 {
				_, werr := c.out.Write(p[:n])
				stream.AbortOn(werr, "write output: %v", werr)
				total += int64(n)
			}
			if err == io.EOF {
				break
			}
			stream.AbortOn(err, "read %s: %v", name, err)
			if f.AtEOF() {
				break
			}
		}
		err := f.Close()
		stream.AbortOn(err, "close %s: %v", name, err)
		stream.Log(stream.LogDebug, "%s: %s", name, stream.CompactHumanSize(total))
	}
}

func (c *commandSet) copyFile(srcName, dstName string, direct bool) {
	src := c.openStream(srcName, "r")
	dst, lock := c.openLocked(dstName)
	copied := c.pump(src, dst, c.chunkSize(direct))
	c.closeLocked(dst, lock)
	err := src.Close()
	stream.AbortOn(err, "close %s: %v", srcName, err)
	stream.Log(stream.LogInfo, "copied %s to %s (%s)", srcName, dstName, stream.HumanSize(copied))
}

func (c *commandSet) lines(name string, max int64) {
	f := c.openStream(name, "r")
	p := make([]byte, c.chunkSize(false))
	num := int64(0)
	for max <= 0 || num < max {
		n, err := f.ReadLine(p)
		if err == io.EOF {
			break
		}
		stream.AbortOn(err, "read %s: %v", name, err)
		num++
		fmt.Fprintf(c.out, "%6d  %s\n", num, stream.Escape(strings.TrimSuffix(string(p[:n]), "\n")))
	}
	err := f.Close()
	stream.AbortOn(err, "close %s: %v", name, err)
}

const genPattern = "0123456789abcdefghijklmnopqrstuvwxyz"

// gen writes a self-describing test file of exactly size bytes: a
// header line with the size, then pattern lines. A pidfile keeps
// concurrent generators from interleaving on the same machine.
func (c *commandSet) gen(name string, size int64) {
	pidPath := filepath.Join(os.TempDir(), "buffile-util.pid")
	pid, err := lockfile.Lock(pidPath)
	stream.AbortOn(err, "another generator is running: %v", err)
	defer pid.Unlock()

	mem := fdio.NewMemFile()
	payload, err := stream.OpenDescriptor(mem, "payload", "w+")
	stream.AbortOn(err, "payload stream: %v", err)
	c.applyBuffer(payload)

	n, err := payload.Printf("buffile payload %d\n", size)
	stream.AbortOn(err, "compose payload: %v", err)
	written := int64(n)
	if written > size {
		stream.Abort("size %d too small for payload header", size)
	}
	for written < size {
		remain := size - written - 1
		line := genPattern
		if remain < int64(len(line)) {
			line = line[:remain]
		}
		m, err := payload.WriteString(line)
		stream.AbortOn(err, "compose payload: %v", err)
		err = payload.WriteByte('\n')
		stream.AbortOn(err, "compose payload: %v", err)
		written += int64(m) + 1
	}
	_, err = payload.Seek(0, io.SeekStart)
	stream.AbortOn(err, "rewind payload: %v", err)

	dst, lock := c.openLocked(name)
	c.pump(payload, dst, c.chunkSize(false))
	c.closeLocked(dst, lock)
	err = payload.Close()
	stream.AbortOn(err, "close payload: %v", err)
	fmt.Fprintf(c.out, "generated %s (%s)\n", name, stream.CompactHumanSize(size))
}

func (c *commandSet) sum(names []string, useMmap bool) {
	for _, name := range names {
		var f *stream.Stream
		if useMmap {
			m, err := fdio.OpenMap(name)
			stream.AbortOn(err, "map %s: %v", name, err)
			f, err = stream.OpenDescriptor(m, name, "r")
			stream.AbortOn(err, "open %s: %v", name, err)
			c.applyBuffer(f)
		} else {
			f = c.openStream(name, "r")
		}
		var sum rollsum.Rollsum
		sum.Init()
		total := int64(0)
		p := make([]byte, c.chunkSize(false))
		for {
			n, err := f.Read(p)
			for _, b := range p[:n] {
				sum.Rollin(b)
			}
			total += int64(n)
			if err == io.EOF {
				break
			}
			stream.AbortOn(err, "read %s: %v", name, err)
			if f.AtEOF() {
				break
			}
		}
		err := f.Close()
		stream.AbortOn(err, "close %s: %v", name, err)
		fmt.Fprintf(c.out, "%08x  %s (%s)\n", sum.Digest(), name, stream.CompactHumanSize(total))
	}
}
