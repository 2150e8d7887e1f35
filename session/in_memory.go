package session

import (
	"sync"

	"keybot/core"
)

// entry is one user's composition buffer plus the mutex that serializes its
// read-modify-write cycles.
type entry struct {
	mu     sync.Mutex
	buffer string
}

// InMemoryStore is a volatile core.BufferStore implementation storing buffers
// in a process local map. It is safe for concurrent access: the outer lock
// only guards map membership, while each entry carries its own mutex so
// operations on different users never contend and same-user mutations are
// serialized.
type InMemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*entry
}

// NewInMemoryStore constructs an empty in-memory buffer store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{entries: make(map[string]*entry)}
}

// Get returns the current buffer for the user and whether a session exists.
func (s *InMemoryStore) Get(userID string) (string, bool) {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok {
		return "", false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buffer, true
}

// Put creates or overwrites the user's buffer.
func (s *InMemoryStore) Put(userID, buffer string) {
	e := s.entryFor(userID)
	e.mu.Lock()
	e.buffer = buffer
	e.mu.Unlock()
}

// Delete removes the user's session entirely.
func (s *InMemoryStore) Delete(userID string) {
	s.mu.Lock()
	delete(s.entries, userID)
	s.mu.Unlock()
}

// Update applies fn to the current buffer under the user's critical section
// and returns the stored result. A fresh session starts from the empty string.
func (s *InMemoryStore) Update(userID string, fn func(current string) string) string {
	e := s.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.buffer = fn(e.buffer)
	return e.buffer
}

// entryFor returns the user's entry, lazily creating it. The double-checked
// upgrade keeps the common path on the read lock.
func (s *InMemoryStore) entryFor(userID string) *entry {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if ok {
		return e
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok = s.entries[userID]; ok {
		return e
	}
	e = &entry{}
	s.entries[userID] = e
	return e
}

// Interface compliance (compile-time assertion)
var _ core.BufferStore = (*InMemoryStore)(nil)
