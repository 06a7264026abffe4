package sharded_hashmap

// An Entry is one key/value pair in a bucket's list. An entry is never
// modified once it is reachable from a bucket head, so a reader that holds a
// pointer to one can use it without any lock.
//
// Entries are never freed individually: a retrieval may still be walking a
// list, so they stay reachable from the table until the whole table is
// dropped.
type Entry struct {
	Key   uint64
	Value uint64
	next  *Entry
}

// Next returns the entry inserted before e into the same bucket.
func (e *Entry) Next() *Entry {
	return e.next
}

// find returns the first entry in the list starting at e with the given key,
// or nil.
func (e *Entry) find(key uint64) *Entry {
	var n = e
	for n != nil {
		if n.Key == key {
			return n
		}
		n = n.next
	}
	return nil
}

func (e *Entry) count() int {
	var l = 0
	for n := e; n != nil; n = n.next {
		l++
	}
	return l
}

// snapshot copies the list starting at e, head first.
func (e *Entry) snapshot() []Entry {
	var out []Entry
	for n := e; n != nil; n = n.next {
		out = append(out, Entry{Key: n.Key, Value: n.Value})
	}
	return out
}
