package sharded_hashmap

import (
	"fmt"
	"strings"

	"parallel_hashtable/locks"
)

// A Table is a fixed-size hash table from uint64 keys to uint64 values that
// is safe for concurrent use. Keys need not be unique: Retrieve returns the
// most recently inserted entry for a key.
type Table interface {
	Insert(key uint64, value uint64)
	// Retrieve returns the first entry for key in its bucket, or false.
	Retrieve(key uint64) (*Entry, bool)
	// Len counts all entries in the table.
	Len() int
	// BucketEntries returns a copy of bucket i's list, head first.
	BucketEntries(i int) []Entry
	// Destroy tears down the table's locks. It is idempotent; the table must
	// not be used afterwards.
	Destroy()
	Protocol() Protocol
	LockKind() locks.Kind
}

// Protocol names the concurrency-control scheme a Table uses.
type Protocol int

const (
	// Exclusive takes one per-bucket lock for every insert and retrieve.
	Exclusive Protocol = iota
	// ReaderPreferring serializes all inserts through one global lock and
	// lets retrievals on the same bucket run concurrently.
	ReaderPreferring
)

func (p Protocol) String() string {
	switch p {
	case Exclusive:
		return "exclusive"
	case ReaderPreferring:
		return "reader"
	}
	return fmt.Sprintf("Protocol(%d)", int(p))
}

// ParseProtocol is the inverse of Protocol.String.
func ParseProtocol(s string) (Protocol, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "exclusive":
		return Exclusive, nil
	case "reader", "reader-preferring":
		return ReaderPreferring, nil
	}
	return 0, fmt.Errorf("sharded_hashmap: unknown protocol %q", s)
}

// New returns an empty table using protocol p over locks of the given kind.
func New(p Protocol, kind locks.Kind) Table {
	switch p {
	case Exclusive:
		return NewExclusive(kind)
	case ReaderPreferring:
		return NewReaderPreferring(kind)
	}
	panic(fmt.Sprintf("sharded_hashmap: unknown protocol %d", int(p)))
}

func checkBucket(i int) {
	if i < 0 || i >= NumBuckets {
		panic(fmt.Sprintf("sharded_hashmap: bucket %d out of range", i))
	}
}

// ExclusiveTable guards each bucket with a single lock that every operation
// on the bucket holds for its whole duration. Retrievals on the same bucket
// therefore never overlap even though they do not write.
type ExclusiveTable struct {
	kind    locks.Kind
	buckets [NumBuckets]*bucket
}

func NewExclusive(kind locks.Kind) *ExclusiveTable {
	t := &ExclusiveTable{kind: kind}
	for i := range t.buckets {
		t.buckets[i] = newBucket(kind)
	}
	return t
}

func (t *ExclusiveTable) Insert(key uint64, value uint64) {
	b := t.buckets[bucketIdx(key)]
	e := &Entry{Key: key, Value: value}
	b.lock.Lock()
	b.prepend(e)
	b.lock.Unlock()
}

func (t *ExclusiveTable) Retrieve(key uint64) (*Entry, bool) {
	b := t.buckets[bucketIdx(key)]
	b.lock.Lock()
	e := b.head.find(key)
	b.lock.Unlock()
	return e, e != nil
}

func (t *ExclusiveTable) Len() int {
	var n = 0
	for _, b := range t.buckets {
		b.lock.Lock()
		n += b.head.count()
		b.lock.Unlock()
	}
	return n
}

func (t *ExclusiveTable) BucketEntries(i int) []Entry {
	checkBucket(i)
	b := t.buckets[i]
	b.lock.Lock()
	entries := b.head.snapshot()
	b.lock.Unlock()
	return entries
}

func (t *ExclusiveTable) Destroy() {
	for _, b := range t.buckets {
		b.lock.Destroy()
	}
}

func (t *ExclusiveTable) Protocol() Protocol {
	return Exclusive
}

func (t *ExclusiveTable) LockKind() locks.Kind {
	return t.kind
}
