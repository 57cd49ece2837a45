//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

package stream

import "errors"

// Stream error sentinels. The first hard failure is recorded on the
// stream and Err keeps returning it; refusals (wrong access mode,
// closed stream, buffer setup) are returned but never recorded, and
// end-of-stream is not an error at all.
var (
	ErrOpenFailure          = errors.New("open failure")
	ErrCloseFailure         = errors.New("close failure")
	ErrReadFailure          = errors.New("read failure")
	ErrWriteFailure         = errors.New("write failure")
	ErrSeekFailure          = errors.New("seek failure")
	ErrNotReadable          = errors.New("stream not open for reading")
	ErrNotWritable          = errors.New("stream not open for writing")
	ErrBadMode              = errors.New("unsupported open mode")
	ErrClosed               = errors.New("stream is closed")
	ErrUnsupportedBuffering = errors.New("only full buffering is supported")
	ErrBufferActive         = errors.New("buffer already in use")
)
