package sharded_hashmap

import (
	"parallel_hashtable/locks"
)

// NumBuckets is the fixed number of buckets in every table.
const NumBuckets = 5

// bucketIdx maps a key to its bucket. The table never resizes, so the
// mapping is stable for the lifetime of the table.
func bucketIdx(key uint64) uint64 {
	return key % NumBuckets
}

// A bucket is the head of a singly linked list of entries plus the lock that
// excludes writers from it. The list is in reverse insertion order.
type bucket struct {
	head *Entry
	lock locks.Locker
}

func newBucket(kind locks.Kind) *bucket {
	return &bucket{lock: locks.New(kind)}
}

// prepend makes e the new head. The caller must hold b.lock.
func (b *bucket) prepend(e *Entry) {
	e.next = b.head
	b.head = e
}
