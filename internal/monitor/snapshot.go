package monitor

import (
	"sync"
	"time"
)

// Snapshot holds the latest successfully fetched value of one resource.
// One poller writes it, the render loop reads it. A reader always sees either
// nothing or a complete value, never a partial update.
type Snapshot[T any] struct {
	mu      sync.RWMutex
	value   T
	ok      bool
	updated time.Time
}

// Reading is a copy of a snapshot taken at one instant.
type Reading[T any] struct {
	Value   T
	OK      bool
	Updated time.Time
}

// Set replaces the stored value.
func (s *Snapshot[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	s.ok = true
	s.updated = time.Now()
}

// Get returns the stored value and whether any fetch has succeeded yet.
func (s *Snapshot[T]) Get() (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value, s.ok
}

// Read returns the stored value with its update time.
func (s *Snapshot[T]) Read() Reading[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Reading[T]{Value: s.value, OK: s.ok, Updated: s.updated}
}
