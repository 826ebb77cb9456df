package library

import "sync"

// Store holds the current library and is safe for concurrent use.
// Readers always see a complete library; reloads swap it atomically.
type Store struct {
	mu      sync.RWMutex
	lib     *Library
	version uint64
}

// NewStore creates a store holding lib (or an empty library).
func NewStore(lib *Library) *Store {
	if lib == nil {
		lib = Empty()
	}
	return &Store{lib: lib, version: 1}
}

// Library returns the current library. Callers must not modify it.
func (s *Store) Library() *Library {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lib
}

// Replace installs a new library.
func (s *Store) Replace(lib *Library) {
	if lib == nil {
		lib = Empty()
	}
	s.mu.Lock()
	s.lib = lib
	s.version++
	s.mu.Unlock()
}

// Version increments on every Replace.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}
