package locks

import (
	"runtime"
	"sync/atomic"

	"github.com/goose-lang/primitive"
	"golang.org/x/sys/cpu"
)

const (
	spinUnlocked uint32 = iota
	spinLocked
	spinDestroyed
)

// activeSpins is how many failed attempts a waiter makes before it yields
// the processor.
const activeSpins = 64

// SpinLock is a test-and-test-and-set lock on one atomic word. The word is
// padded to its own cache line so neighbouring locks in a bucket array do not
// false-share.
//
// Waiters never park. After activeSpins failed attempts they call
// runtime.Gosched, which keeps the lock usable when there are more spinning
// goroutines than processors.
type SpinLock struct {
	_     cpu.CacheLinePad
	state atomic.Uint32
	_     cpu.CacheLinePad
}

func (l *SpinLock) Lock() {
	if l.state.CompareAndSwap(spinUnlocked, spinLocked) {
		return
	}
	l.slowLock()
}

func (l *SpinLock) slowLock() {
	spins := 0
	for !l.TryLock() {
		delay(&spins)
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
func (l *SpinLock) TryLock() bool {
	switch l.state.Load() {
	case spinUnlocked:
		return l.state.CompareAndSwap(spinUnlocked, spinLocked)
	case spinDestroyed:
		panic(errDestroyed)
	}
	return false
}

func (l *SpinLock) Unlock() {
	if !l.state.CompareAndSwap(spinLocked, spinUnlocked) {
		panic("locks: unlock of unlocked SpinLock")
	}
}

func (l *SpinLock) Destroy() {
	if l.state.CompareAndSwap(spinUnlocked, spinDestroyed) {
		return
	}
	// a held spin lock cannot be destroyed
	primitive.Assert(l.state.Load() == spinDestroyed)
}

func delay(spins *int) {
	if *spins < activeSpins {
		*spins++
		return
	}
	runtime.Gosched()
	*spins = 0
}
