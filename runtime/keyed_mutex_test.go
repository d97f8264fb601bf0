package runtime

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	req := require.New(t)
	km := NewKeyedMutex()
	counter := 0
	var wg sync.WaitGroup

	// When 100 goroutines increment under the same key
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("alice")
			defer unlock()
			counter++
		}()
	}
	wg.Wait()

	// Then no increment is lost and no entry leaks
	req.Equal(100, counter)
	req.Equal(0, km.size())
}

func TestKeyedMutex_DistinctKeysDoNotBlock(t *testing.T) {
	req := require.New(t)
	km := NewKeyedMutex()

	unlockA := km.Lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("b")
		unlockB()
		close(done)
	}()

	<-done
	req.Equal(1, km.size())
	unlockA()
	req.Equal(0, km.size())
}
