// Command parallel_spin benchmarks the hash table with globally serialized inserts and
// concurrent per-bucket readers, using spin locks.
//
// Usage:
//
//	./parallel_spin <num_threads>
package main

import (
	"parallel_hashtable/locks"
	"parallel_hashtable/sharded_hashmap"
	"parallel_hashtable/variant"
)

func main() {
	variant.Main(variant.Spec{
		Name:     "parallel_spin",
		Protocol: sharded_hashmap.ReaderPreferring,
		Lock:     locks.Spin,
	})
}
