package service

import (
	"fmt"
	"sync"
)

// keyedMutex serializes operations per entity key. Operations that share a
// key run one at a time; disjoint keys proceed fully in parallel. Entries
// are reference counted so the map does not grow with the keyspace.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*refLock)}
}

func (k *keyedMutex) lock(key string) {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &refLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
}

func (k *keyedMutex) unlock(key string) {
	k.mu.Lock()
	l := k.locks[key]
	l.refs--
	if l.refs == 0 {
		delete(k.locks, key)
	}
	k.mu.Unlock()

	l.Unlock()
}

// lockPair acquires the book key before the user key. Every workflow
// operation uses this same order, which rules out deadlock between
// concurrent borrow/return calls.
func (k *keyedMutex) lockPair(bookKey, userKey string) func() {
	k.lock(bookKey)
	k.lock(userKey)
	return func() {
		k.unlock(userKey)
		k.unlock(bookKey)
	}
}

func bookLockKey(bookID int64) string { return fmt.Sprintf("book/%d", bookID) }
func userLockKey(userID int64) string { return fmt.Sprintf("user/%d", userID) }
