//	 ,+---+
//	+---+´|    BUFFILE SOURCE
//	| # | |    Copyright 2026
//	+---+´

//go:build release

package stream

// ASSERT compiles to nothing in release builds.
func ASSERT(ok bool, v ...interface{}) {}
