package keys

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGenerateDeterministic(t *testing.T) {
	assert := assert.New(t)
	a := Generate(20, 42)
	b := Generate(20, 42)
	assert.Len(a, 20)
	assert.Equal(a, b)
	assert.NotEqual(a, Generate(20, 43))

	for _, k := range Generate(1000, 7) {
		assert.Less(k, uint64(1)<<31)
	}
}

func TestGenerateUnseeded(t *testing.T) {
	assert.Len(t, Generate(DefaultCount, 0), DefaultCount)
	assert.Empty(t, Generate(0, 1))
}

func TestStrideSanity(t *testing.T) {
	var got []int
	Stride(1, 4, 10, func(i int) bool {
		got = append(got, i)
		return true
	})
	assert.Equal(t, []int{1, 5, 9}, got)
	assert.Equal(t, 3, StrideLen(1, 4, 10))
	assert.Equal(t, 0, StrideLen(12, 16, 10))
}

func TestStrideStopsEarly(t *testing.T) {
	var n = 0
	Stride(0, 1, 100, func(i int) bool {
		n++
		return i < 4
	})
	assert.Equal(t, 5, n)
}

func TestStridePartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		assert := assert.New(t)
		n := rapid.IntRange(0, 500).Draw(t, "n")
		threads := rapid.IntRange(1, 32).Draw(t, "threads")

		// every index is owned by exactly one thread
		seen := make([]int, n)
		for tid := 0; tid < threads; tid++ {
			var visited = 0
			Stride(tid, threads, n, func(i int) bool {
				assert.Equal(tid, i%threads)
				seen[i]++
				visited++
				return true
			})
			assert.Equal(StrideLen(tid, threads, n), visited)
		}
		for i, c := range seen {
			assert.Equal(1, c, "index %d", i)
		}
	})
}
