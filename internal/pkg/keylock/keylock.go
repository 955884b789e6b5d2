// Package keylock provides per-key mutual exclusion. The order transaction
// coordinator uses it to serialize the read-validate-write sequence for the
// stock items touched by a commit, closing the race window between reading a
// stock snapshot and writing the deduction.
package keylock

import (
	"sort"
	"sync"
)

// KeyedMutex is a set of named mutexes created on first use.
// Locks for multiple keys are always acquired in sorted key order so two
// commits touching overlapping item sets cannot deadlock.
type KeyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewKeyedMutex creates an empty keyed mutex set.
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (k *KeyedMutex) lockFor(key string) *sync.Mutex {
	k.mu.Lock()
	defer k.mu.Unlock()

	l, ok := k.locks[key]
	if !ok {
		l = &sync.Mutex{}
		k.locks[key] = l
	}
	return l
}

// LockAll acquires the locks for every given key, deduplicated and in sorted
// order, and returns a function releasing them in reverse order.
func (k *KeyedMutex) LockAll(keys []string) (unlock func()) {
	unique := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		unique[key] = struct{}{}
	}

	sorted := make([]string, 0, len(unique))
	for key := range unique {
		sorted = append(sorted, key)
	}
	sort.Strings(sorted)

	held := make([]*sync.Mutex, 0, len(sorted))
	for _, key := range sorted {
		l := k.lockFor(key)
		l.Lock()
		held = append(held, l)
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
