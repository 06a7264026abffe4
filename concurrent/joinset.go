package concurrent

import (
	"sync"

	"github.com/goose-lang/std"
)

// A JoinSet is a group of spawned threads that are waited for as a unit.
// Join returning is a barrier: everything every thread in the set did
// happens before the code after Join.
//
// A JoinSet is owned by the goroutine that spawns into it; it is not safe
// for concurrent use.
type JoinSet struct {
	handles []*std.JoinHandle
}

// Spawn starts f on a new thread in the set.
func (s *JoinSet) Spawn(f func()) {
	s.handles = append(s.handles, std.Spawn(f))
}

// Len is the number of threads spawned since the last Join.
func (s *JoinSet) Len() int {
	return len(s.handles)
}

// Join waits for every thread in the set and empties it so it can be reused.
func (s *JoinSet) Join() {
	for _, h := range s.handles {
		h.Join()
	}
	s.handles = s.handles[:0]
}

// SpawnN runs f(0), ..., f(n-1) on n threads, waits for all of them and
// returns their results indexed by thread.
func SpawnN(n int, f func(tid int) uint64) []uint64 {
	results := make([]uint64, n)
	var s JoinSet
	for tid := 0; tid < n; tid++ {
		s.Spawn(func() {
			results[tid] = f(tid)
		})
	}
	s.Join()
	return results
}

// Counter is a uint64 shared between threads.
type Counter struct {
	x  uint64
	mu *sync.Mutex
}

func NewCounter() *Counter {
	return &Counter{x: 0, mu: new(sync.Mutex)}
}

func (c *Counter) Get() uint64 {
	c.mu.Lock()
	x := c.x
	c.mu.Unlock()
	return x
}

func (c *Counter) Add(y uint64) {
	c.mu.Lock()
	c.x = std.SumAssumeNoOverflow(c.x, y)
	c.mu.Unlock()
}
