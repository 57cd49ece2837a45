package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/fredli74/buffile/pkg/stream"
	cmd "github.com/fredli74/cmdparser"
	"github.com/kardianos/osext"
)

var (
	bufferSize int64
	logLevel   int64 = int64(stream.LogInfo)
	copyDirect bool
	linesMax   int64
	genSize    int64 = 256 * 1024
	sumMmap    bool
)

var Version = "(dev-build)"

func main() {
	defer func() {
		if rec := recover(); rec != nil {
			debug.PrintStack()
			fmt.Fprintf(os.Stderr, "buffile-util: %T %v\n", rec, rec)
			os.Exit(1)
		}
	}()
	cmd.Title = fmt.Sprintf("Buffile Util %s", Version)
	cmd.ShowCurrentDefaults = true

	exeRoot, _ := osext.ExecutableFolder()
	cmd.OptionsFile = filepath.Join(exeRoot, ".buffile-util.options.json")

	// Global options
	cmd.IntOption("buffer", "", "<bytes>", "Stream buffer capacity (0 = default 8 KiB)", &bufferSize, cmd.Standard|cmd.Preference)
	cmd.IntOption("loglevel", "", "<level>", "Set log level (0=errors, 1=warnings, 2=info, 3=debug, 4=trace)", &logLevel, cmd.Standard).OnChange(func() {
		stream.LogLevel = int(logLevel)
	})

	cmd.Command("cat", "<file> [<file>...]", func() {
		if len(cmd.Args) < 3 {
			stream.Abort("file required")
		}
		newCommandSet(bufferSize).cat(cmd.Args[2:])
	})

	cmd.BoolOption("direct", "copy", "Copy in chunks larger than the buffer", &copyDirect, cmd.Standard)
	cmd.Command("copy", "<src> <dst>", func() {
		if len(cmd.Args) < 4 {
			stream.Abort("source and destination required")
		}
		newCommandSet(bufferSize).copyFile(cmd.Args[2], cmd.Args[3], copyDirect)
	})

	cmd.IntOption("max", "lines", "<num>", "Stop after printing this many lines", &linesMax, cmd.Standard)
	cmd.Command("lines", "<file>", func() {
		if len(cmd.Args) < 3 {
			stream.Abort("file required")
		}
		newCommandSet(bufferSize).lines(cmd.Args[2], linesMax)
	})

	cmd.IntOption("size", "gen", "<bytes>", "Size of the generated file", &genSize, cmd.Standard)
	cmd.Command("gen", "<file>", func() {
		if len(cmd.Args) < 3 {
			stream.Abort("target file required")
		}
		newCommandSet(bufferSize).gen(cmd.Args[2], genSize)
	})

	cmd.BoolOption("mmap", "sum", "Checksum through a memory-mapped descriptor", &sumMmap, cmd.Standard)
	cmd.Command("sum", "<file> [<file>...]", func() {
		if len(cmd.Args) < 3 {
			stream.Abort("file required")
		}
		newCommandSet(bufferSize).sum(cmd.Args[2:], sumMmap)
	})

	err := cmd.Parse()
	stream.AbortOn(err, "command parse failed: %v", err)
}
