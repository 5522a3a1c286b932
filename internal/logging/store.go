// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging provides the bounded in-process log store for Overseer.
package logging

import (
	"fmt"
	"sync"
)

// =============================================================================
// CAPACITY
// =============================================================================

const (
	// MinCapacity is the enforced floor; smaller requests are clamped up.
	MinCapacity = 100

	// DefaultCapacity is used when no capacity is requested.
	DefaultCapacity = 2000
)

// =============================================================================
// STORE
// =============================================================================

// Store is a thread-safe, capacity-bounded FIFO ring of log entries.
//
// Any goroutine may Add or Clear; any number of goroutines may Snapshot
// concurrently. Readers share an RWMutex read lock so snapshots never block
// each other; writers are exclusive for the duration of the ring mutation
// only. Observers are notified outside the ring's critical section, in
// registration order, on the mutating caller's goroutine; a second mutex is
// handed off before the write lock is released so notification order always
// matches ring insertion order.
type Store struct {
	mu    sync.RWMutex
	ring  []Entry
	head  int // index of the oldest entry
	count int

	// notifyMu serializes observer delivery in ring order.
	notifyMu sync.Mutex

	obsMu     sync.Mutex
	nextObsID int
	onAdded   []addedObserver
	onCleared []clearedObserver
}

type addedObserver struct {
	id int
	fn func(Entry)
}

type clearedObserver struct {
	id int
	fn func()
}

// NewStore creates a store with the given capacity. A capacity of zero or
// less selects DefaultCapacity; anything below MinCapacity is silently
// clamped up, never an error.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if capacity < MinCapacity {
		capacity = MinCapacity
	}
	return &Store{
		ring: make([]Entry, capacity),
	}
}

// Cap returns the fixed capacity of the ring.
func (s *Store) Cap() int {
	return len(s.ring)
}

// Len returns the current number of stored entries.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

// =============================================================================
// MUTATION
// =============================================================================

// Add stores an entry, evicting the oldest first when the ring is full,
// then notifies "added" observers with the entry.
//
// The returned error reports observer panics only: by the time observers
// run, the entry has already been stored, and a failing observer never
// corrupts store state.
func (s *Store) Add(e Entry) error {
	s.mu.Lock()
	if s.count == len(s.ring) {
		// Evict oldest: overwrite its slot and advance head.
		s.ring[s.head] = e
		s.head = (s.head + 1) % len(s.ring)
	} else {
		s.ring[(s.head+s.count)%len(s.ring)] = e
		s.count++
	}
	// Acquire the notify lock before releasing the write lock so observer
	// delivery order matches ring insertion order.
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	return s.notifyAdded(e)
}

// Clear atomically empties the ring and notifies "cleared" observers.
// As with Add, the returned error reports observer panics only.
func (s *Store) Clear() error {
	s.mu.Lock()
	s.head = 0
	s.count = 0
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	return s.notifyCleared()
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Snapshot copies the current contents, in insertion order, into buf,
// replacing its previous contents. The copy reflects a single consistent
// point in time; concurrent Add/Clear calls racing with the snapshot are
// either fully included or fully excluded.
func (s *Store) Snapshot(buf *[]Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	*buf = (*buf)[:0]
	for i := 0; i < s.count; i++ {
		*buf = append(*buf, s.ring[(s.head+i)%len(s.ring)])
	}
}

// =============================================================================
// OBSERVERS
// =============================================================================

// OnAdded registers fn to be called with each stored entry, synchronously
// on the adding goroutine. The returned func unsubscribes.
func (s *Store) OnAdded(fn func(Entry)) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.onAdded = append(s.onAdded, addedObserver{id: id, fn: fn})
	return func() { s.removeAdded(id) }
}

// OnCleared registers fn to be called after each Clear, synchronously on
// the clearing goroutine. The returned func unsubscribes.
func (s *Store) OnCleared(fn func()) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	id := s.nextObsID
	s.nextObsID++
	s.onCleared = append(s.onCleared, clearedObserver{id: id, fn: fn})
	return func() { s.removeCleared(id) }
}

func (s *Store) removeAdded(id int) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for i, o := range s.onAdded {
		if o.id == id {
			s.onAdded = append(s.onAdded[:i], s.onAdded[i+1:]...)
			return
		}
	}
}

func (s *Store) removeCleared(id int) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()
	for i, o := range s.onCleared {
		if o.id == id {
			s.onCleared = append(s.onCleared[:i], s.onCleared[i+1:]...)
			return
		}
	}
}

func (s *Store) notifyAdded(e Entry) error {
	s.obsMu.Lock()
	observers := make([]addedObserver, len(s.onAdded))
	copy(observers, s.onAdded)
	s.obsMu.Unlock()

	var firstErr error
	for _, o := range observers {
		if err := safeNotify(func() { o.fn(e) }); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (s *Store) notifyCleared() error {
	s.obsMu.Lock()
	observers := make([]clearedObserver, len(s.onCleared))
	copy(observers, s.onCleared)
	s.obsMu.Unlock()

	var firstErr error
	for _, o := range observers {
		if err := safeNotify(o.fn); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// safeNotify runs one observer callback, converting a panic into an error
// so a failing observer cannot take down the logging caller.
func safeNotify(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("log observer panic: %v", r)
		}
	}()
	fn()
	return nil
}
