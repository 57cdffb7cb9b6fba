package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	km := newKeyedMutex()

	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.lockPair(bookLockKey(1), userLockKey(2))
			counter++
			unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
}

func TestKeyedMutexOppositePairsDoNotDeadlock(t *testing.T) {
	// Two workflows touching the same book/user pair from both directions
	// must not deadlock: the pair always locks book first.
	km := newKeyedMutex()

	done := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		for i := 0; i < 100; i++ {
			wg.Add(2)
			go func() {
				defer wg.Done()
				unlock := km.lockPair(bookLockKey(1), userLockKey(2))
				unlock()
			}()
			go func() {
				defer wg.Done()
				unlock := km.lockPair(bookLockKey(2), userLockKey(1))
				unlock()
			}()
		}
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock pairs deadlocked")
	}
}
