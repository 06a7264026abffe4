package locks

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var kinds = []Kind{Blocking, Spin}

func TestParseKind(t *testing.T) {
	assert := assert.New(t)
	tests := []struct {
		in       string
		expected Kind
	}{
		{"mutex", Blocking},
		{"blocking", Blocking},
		{"spin", Spin},
		{" SPIN ", Spin},
		{"spinlock", Spin},
	}
	for _, test := range tests {
		k, err := ParseKind(test.in)
		assert.NoError(err, "ParseKind(%q)", test.in)
		assert.Equal(test.expected, k, "ParseKind(%q)", test.in)
	}

	_, err := ParseKind("rwlock")
	assert.Error(err)

	for _, k := range kinds {
		parsed, err := ParseKind(k.String())
		assert.NoError(err)
		assert.Equal(k, parsed)
	}
}

func TestMutualExclusion(t *testing.T) {
	for _, k := range kinds {
		t.Run(k.String(), func(t *testing.T) {
			l := New(k)
			var counter uint64

			var wg sync.WaitGroup
			wg.Add(8)
			for i := 0; i < 8; i++ {
				go func() {
					for j := 0; j < 1000; j++ {
						l.Lock()
						counter++
						l.Unlock()
					}
					wg.Done()
				}()
			}
			wg.Wait()

			assert.Equal(t, uint64(8000), counter)
			l.Destroy()
		})
	}
}

func TestDestroyIdempotent(t *testing.T) {
	for _, k := range kinds {
		l := New(k)
		assert.NotPanics(t, l.Destroy, "first Destroy of %v", k)
		assert.NotPanics(t, l.Destroy, "second Destroy of %v", k)
		assert.Panics(t, l.Lock, "Lock after Destroy of %v", k)
	}
}

func TestDestroyHeld(t *testing.T) {
	for _, k := range kinds {
		l := New(k)
		l.Lock()
		assert.Panics(t, l.Destroy, "Destroy of held %v", k)
		l.Unlock()
	}
}

func TestSpinTryLock(t *testing.T) {
	assert := assert.New(t)
	var l SpinLock
	assert.True(l.TryLock())
	assert.False(l.TryLock())
	l.Unlock()
	assert.True(l.TryLock())
	l.Unlock()
	assert.Panics(l.Unlock, "double unlock")
}
