//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package stream

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Abort panics with a formatted error message.
func Abort(format string, a ...interface{}) {
	panic(fmt.Errorf(format, a...))
}

// AbortOn panics if err is non-nil, with optional formatted message.
func AbortOn(err error, a ...interface{}) {
	if err != nil {
		if len(a) > 0 {
			if format, ok := a[0].(string); ok {
				panic(fmt.Errorf(format, a[1:]...))
			}
		}
		panic(err)
	}
}

const LOGTIMEFORMAT string = "20060102 15:04:05"
const (
	LogError = iota
	LogWarning
	LogInfo
	LogDebug
	LogTrace
)

var LogLevel int = LogInfo
var logMarks = []string{"!", "*", ".", "(", "?"}

var LogMutex sync.Mutex

func Escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r < 32 || r == 127 {
			fmt.Fprintf(&b, "\\x%02x", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func Log(level int, format string, a ...interface{}) {
	LogMutex.Lock()
	defer LogMutex.Unlock()
	if level > LogLevel {
		return
	}

	args := make([]interface{}, len(a))
	for i, v := range a {
		switch s := v.(type) {
		case string:
			args[i] = Escape(s)
		default:
			args[i] = v
		}
	}

	prefix := []interface{}{time.Now().UTC().Format(LOGTIMEFORMAT), logMarks[level]}
	fmt.Printf("%s %s "+format+"\n", append(prefix, args...)...)
}

var humanUnitName []string = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

func unitize(size int64, limit int) (floatSize float64, unit int, precision int) {
	floatSize = float64(size)
	for ; unit < limit && floatSize > 1000; floatSize /= 1024 {
		unit++
	}
	if unit > 0 && floatSize < 10 {
		precision = 2
	} else if unit > 0 && floatSize < 100 {
		precision = 1
	}
	return floatSize, unit, precision
}

func HumanSize(size int64) string {
	s, u, p := unitize(size, len(humanUnitName))
	return fmt.Sprintf("%.*f %s", p, s, humanUnitName[u])
}

// CompactHumanSize is like HumanSize but removes whitespace (e.g. "1.2KiB").
func CompactHumanSize(size int64) string {
	return strings.ReplaceAll(HumanSize(size), " ", "")
}
