// Package goid reports the identity of the calling goroutine.
//
// The reactive engine keeps one tracking context per goroutine and the
// inline scheduler uses the same identity to detect re-entrant calls.
package goid

import "runtime"

// Get returns a unique identifier for the current goroutine.
// It parses the "goroutine <id> " prefix of the runtime stack header.
func Get() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := len("goroutine "); i < n; i++ {
		c := buf[i]
		if c < '0' || c > '9' {
			break
		}
		id = id*10 + uint64(c-'0')
	}
	return id
}
