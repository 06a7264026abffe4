// Package keys generates the synthetic key universe shared by every worker
// and splits it into per-thread strides.
package keys

import (
	"math/rand/v2"
	"time"
)

// DefaultCount is the size of the key universe used by the benchmark.
const DefaultCount = 100000

// Generate returns n pseudo-random non-negative 31-bit keys. A non-zero seed
// always produces the same sequence; seed 0 seeds from the clock.
//
// The returned slice is written only here, so it can be shared read-only
// between any number of goroutines.
func Generate(n int, seed uint64) []uint64 {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	ks := make([]uint64, n)
	for i := range ks {
		ks[i] = uint64(r.Int32())
	}
	return ks
}

// Stride calls f with every index thread tid owns out of n keys when the keys
// are split between numThreads threads: tid, tid+numThreads, ... . It stops
// early if f returns false.
func Stride(tid int, numThreads int, n int, f func(i int) bool) {
	for i := tid; i < n; i += numThreads {
		if !f(i) {
			return
		}
	}
}

// StrideLen is the number of indices Stride visits for thread tid.
func StrideLen(tid int, numThreads int, n int) int {
	if tid >= n {
		return 0
	}
	return (n-tid-1)/numThreads + 1
}
