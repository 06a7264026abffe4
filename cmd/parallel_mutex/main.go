// Command parallel_mutex benchmarks the hash table with one blocking lock per bucket
// held by every insert and retrieve.
//
// Usage:
//
//	./parallel_mutex <num_threads>
package main

import (
	"parallel_hashtable/locks"
	"parallel_hashtable/sharded_hashmap"
	"parallel_hashtable/variant"
)

func main() {
	variant.Main(variant.Spec{
		Name:     "parallel_mutex",
		Protocol: sharded_hashmap.Exclusive,
		Lock:     locks.Blocking,
	})
}
