package concurrent

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter_Get(t *testing.T) {
	assert := assert.New(t)

	c := NewCounter()
	c.Add(42)
	assert.Equal(uint64(42), c.Get(), "Get")

	c.Add(10)
	assert.Equal(uint64(52), c.Get(), "Get")
}

func TestCounter_concurrent(t *testing.T) {
	assert := assert.New(t)

	c := NewCounter()
	c.Add(42)

	var wg sync.WaitGroup
	wg.Add(100)
	for j := 0; j < 100; j++ {
		go func() {
			c.Add(1)
			wg.Done()
		}()
	}
	wg.Wait()

	assert.Equal(uint64(142), c.Get(), "Get")
}

func TestJoinSetN(t *testing.T) {
	numRun := atomic.Int64{}
	var s JoinSet
	for i := 0; i < 3; i++ {
		s.Spawn(func() {
			numRun.Add(1)
		})
	}
	assert.Equal(t, 3, s.Len())
	s.Join()
	assert.Equal(t, int64(3), numRun.Load())
	assert.Equal(t, 0, s.Len())
}

func TestJoinSetEmpty(t *testing.T) {
	var s JoinSet
	s.Join()
}

func TestJoinSetReuse(t *testing.T) {
	// the second phase must see every write of the first
	var s JoinSet
	shared := make([]uint64, 8)
	for i := 0; i < 8; i++ {
		s.Spawn(func() {
			shared[i] = uint64(i) + 1
		})
	}
	s.Join()

	sums := make([]uint64, 8)
	for i := 0; i < 8; i++ {
		s.Spawn(func() {
			for _, v := range shared {
				sums[i] += v
			}
		})
	}
	s.Join()
	for _, sum := range sums {
		assert.Equal(t, uint64(36), sum)
	}
}

func TestSpawnN(t *testing.T) {
	results := SpawnN(5, func(tid int) uint64 {
		return uint64(tid * tid)
	})
	assert.Equal(t, []uint64{0, 1, 4, 9, 16}, results)
	assert.Empty(t, SpawnN(0, func(int) uint64 { return 1 }))
}
