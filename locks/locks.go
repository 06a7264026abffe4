// Package locks provides the two lock primitives the hash tables are
// benchmarked with: a blocking mutex that parks the calling goroutine, and a
// spin lock that busy-waits.
package locks

import (
	"fmt"
	"strings"
	"sync"
)

// A Locker is a sync.Locker that can be torn down at the end of a run.
//
// Destroy is idempotent. Destroying a held lock is a programming error and
// panics, as does locking a destroyed one.
type Locker interface {
	sync.Locker
	Destroy()
}

// Kind selects a lock primitive.
type Kind int

const (
	// Blocking locks suspend the waiter until the holder unlocks.
	Blocking Kind = iota
	// Spin locks busy-wait on a single atomic word.
	Spin
)

func (k Kind) String() string {
	switch k {
	case Blocking:
		return "mutex"
	case Spin:
		return "spin"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mutex", "blocking":
		return Blocking, nil
	case "spin", "spinlock":
		return Spin, nil
	}
	return 0, fmt.Errorf("locks: unknown lock kind %q", s)
}

// New returns an unlocked lock of the given kind.
func New(k Kind) Locker {
	switch k {
	case Blocking:
		return new(Mutex)
	case Spin:
		return new(SpinLock)
	}
	panic(fmt.Sprintf("locks: unknown lock kind %d", int(k)))
}

const errDestroyed = "locks: use of destroyed lock"
