package sharded_hashmap

import (
	"fmt"
	"sync/atomic"

	"github.com/goose-lang/primitive"
	"github.com/goose-lang/std"

	"parallel_hashtable/locks"
)

// A readerBucket runs a first-reader-locks, last-reader-unlocks protocol on
// top of the bucket's exclusion lock. Each bucket is in one of three states:
//
//   - idle: no readers, exclusion lock free
//   - reading(n): n > 0 readers, exclusion lock held on their behalf
//   - writing: an insert holds the exclusion lock
//
// guard protects only readers (and peak); it is held just long enough to move
// between idle and reading(n).
type readerBucket struct {
	bucket
	guard   locks.Locker
	readers uint64
	peak    uint64
	writing atomic.Bool
}

func newReaderBucket(kind locks.Kind) *readerBucket {
	return &readerBucket{
		bucket: bucket{lock: locks.New(kind)},
		guard:  locks.New(kind),
	}
}

func (b *readerBucket) startRead() {
	b.guard.Lock()
	b.readers = std.SumAssumeNoOverflow(b.readers, 1)
	if b.readers == 1 {
		b.lock.Lock()
		primitive.Assert(!b.writing.Load())
	}
	if b.readers > b.peak {
		b.peak = b.readers
	}
	b.guard.Unlock()
}

func (b *readerBucket) endRead() {
	b.guard.Lock()
	primitive.Assert(b.readers > 0)
	b.readers--
	if b.readers == 0 {
		b.lock.Unlock()
	}
	b.guard.Unlock()
}

// BucketState is a point-in-time view of a reader-preferring bucket.
type BucketState struct {
	Readers uint64
	Writing bool
}

func (s BucketState) String() string {
	switch {
	case s.Writing:
		return "writing"
	case s.Readers > 0:
		return fmt.Sprintf("reading(%d)", s.Readers)
	}
	return "idle"
}

// ReaderPreferringTable lets retrievals of the same bucket proceed
// concurrently while keeping inserts out of any bucket that has active
// readers.
//
// All inserts, whatever their bucket, are serialized through one global
// lock. This limits write scalability and is kept on purpose: it is the
// trade-off this table exists to measure.
//
// The same protocol runs over blocking or spin locks depending on the Kind it
// was created with; every lock in the table is of that kind.
type ReaderPreferringTable struct {
	kind    locks.Kind
	insert  locks.Locker
	buckets [NumBuckets]*readerBucket

	// scanHook, if set, runs while a retrieval is inside its bucket.
	scanHook func(i uint64)
}

func NewReaderPreferring(kind locks.Kind) *ReaderPreferringTable {
	t := &ReaderPreferringTable{kind: kind, insert: locks.New(kind)}
	for i := range t.buckets {
		t.buckets[i] = newReaderBucket(kind)
	}
	return t
}

func (t *ReaderPreferringTable) Insert(key uint64, value uint64) {
	b := t.buckets[bucketIdx(key)]
	e := &Entry{Key: key, Value: value}

	t.insert.Lock()
	b.lock.Lock()
	b.writing.Store(true)
	b.prepend(e)
	b.writing.Store(false)
	b.lock.Unlock()
	t.insert.Unlock()
}

func (t *ReaderPreferringTable) Retrieve(key uint64) (*Entry, bool) {
	i := bucketIdx(key)
	b := t.buckets[i]
	b.startRead()
	if t.scanHook != nil {
		t.scanHook(i)
	}
	e := b.head.find(key)
	b.endRead()
	return e, e != nil
}

func (t *ReaderPreferringTable) Len() int {
	var n = 0
	for _, b := range t.buckets {
		b.startRead()
		n += b.head.count()
		b.endRead()
	}
	return n
}

func (t *ReaderPreferringTable) BucketEntries(i int) []Entry {
	checkBucket(i)
	b := t.buckets[i]
	b.startRead()
	entries := b.head.snapshot()
	b.endRead()
	return entries
}

// PeakReaders reports the largest number of retrievals that have been inside
// bucket i at the same time.
func (t *ReaderPreferringTable) PeakReaders(i int) uint64 {
	checkBucket(i)
	b := t.buckets[i]
	b.guard.Lock()
	p := b.peak
	b.guard.Unlock()
	return p
}

// State reports bucket i's current state.
func (t *ReaderPreferringTable) State(i int) BucketState {
	checkBucket(i)
	b := t.buckets[i]
	b.guard.Lock()
	s := BucketState{Readers: b.readers, Writing: b.writing.Load()}
	b.guard.Unlock()
	return s
}

func (t *ReaderPreferringTable) Destroy() {
	for _, b := range t.buckets {
		b.guard.Destroy()
		b.lock.Destroy()
	}
	t.insert.Destroy()
}

func (t *ReaderPreferringTable) Protocol() Protocol {
	return ReaderPreferring
}

func (t *ReaderPreferringTable) LockKind() locks.Kind {
	return t.kind
}
