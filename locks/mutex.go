package locks

import (
	"sync"
	"sync/atomic"

	"github.com/goose-lang/primitive"
)

// Mutex is a blocking lock.
type Mutex struct {
	mu        sync.Mutex
	destroyed atomic.Bool
}

func (m *Mutex) Lock() {
	if m.destroyed.Load() {
		panic(errDestroyed)
	}
	m.mu.Lock()
}

func (m *Mutex) Unlock() {
	m.mu.Unlock()
}

func (m *Mutex) TryLock() bool {
	if m.destroyed.Load() {
		panic(errDestroyed)
	}
	return m.mu.TryLock()
}

func (m *Mutex) Destroy() {
	// a held mutex cannot be destroyed
	primitive.Assert(m.mu.TryLock())
	m.destroyed.Store(true)
	m.mu.Unlock()
}
