package bench

import (
	"fmt"
	"io"
	"sync"
)

// reporter serializes report lines from concurrent threads so lines never
// interleave. It remembers the first write error.
type reporter struct {
	mu       sync.Mutex
	w        io.Writer
	firstErr error
}

func newReporter(w io.Writer) *reporter {
	if w == nil {
		w = io.Discard
	}
	return &reporter{w: w}
}

func (r *reporter) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, err := fmt.Fprintf(r.w, format, args...); err != nil && r.firstErr == nil {
		r.firstErr = err
	}
}

func (r *reporter) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.firstErr
}
