// Command parallel_spin_exclusive benchmarks the hash table with one spin lock per bucket
// held by every insert and retrieve.
//
// Usage:
//
//	./parallel_spin_exclusive <num_threads>
package main

import (
	"parallel_hashtable/locks"
	"parallel_hashtable/sharded_hashmap"
	"parallel_hashtable/variant"
)

func main() {
	variant.Main(variant.Spec{
		Name:     "parallel_spin_exclusive",
		Protocol: sharded_hashmap.Exclusive,
		Lock:     locks.Spin,
	})
}
