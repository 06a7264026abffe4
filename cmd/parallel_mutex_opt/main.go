// Command parallel_mutex_opt benchmarks the hash table with globally serialized inserts and
// concurrent per-bucket readers, using blocking locks.
//
// Usage:
//
//	./parallel_mutex_opt <num_threads>
package main

import (
	"parallel_hashtable/locks"
	"parallel_hashtable/sharded_hashmap"
	"parallel_hashtable/variant"
)

func main() {
	variant.Main(variant.Spec{
		Name:     "parallel_mutex_opt",
		Protocol: sharded_hashmap.ReaderPreferring,
		Lock:     locks.Blocking,
	})
}
