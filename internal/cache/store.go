package cache

import "sync"

// Entity is anything the store can key by id.
type Entity interface {
	EntityID() int64
}

// MergeFunc overlays an incoming entity onto the cached one. The domain
// packages provide one per entity type; the contract is that fields the
// incoming payload omitted keep their cached values and incoming values
// win on conflict.
type MergeFunc[T Entity] func(old, in T) T

// Store is an id-keyed entity cache. There is no eviction: entries live
// for the lifetime of the store, which is bounded by what the backend
// returns for one user session. Instances are constructed and injected,
// never shared through package state.
type Store[T Entity] struct {
	mu      sync.RWMutex
	entries map[int64]T
	merge   MergeFunc[T]
}

func NewStore[T Entity](merge MergeFunc[T]) *Store[T] {
	return &Store[T]{
		entries: make(map[int64]T),
		merge:   merge,
	}
}

// Get returns the cached entity for id. It never triggers a fetch.
func (s *Store[T]) Get(id int64) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[id]
	return e, ok
}

// Upsert merges in into the entry under its id, inserting when absent.
func (s *Store[T]) Upsert(in T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upsertLocked(in)
}

// UpsertMany applies Upsert in array order, so later entries win on
// conflicting ids.
func (s *Store[T]) UpsertMany(ins []T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, in := range ins {
		s.upsertLocked(in)
	}
}

func (s *Store[T]) upsertLocked(in T) {
	id := in.EntityID()
	if old, ok := s.entries[id]; ok {
		s.entries[id] = s.merge(old, in)
		return
	}
	s.entries[id] = in
}

func (s *Store[T]) Delete(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// DeleteWhere removes every entry matching pred and returns how many went.
func (s *Store[T]) DeleteWhere(pred func(T) bool) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if pred(e) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}

// Find returns the first entry matching pred. Iteration order is
// unspecified; callers use it for predicates that match at most once.
func (s *Store[T]) Find(pred func(T) bool) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.entries {
		if pred(e) {
			return e, true
		}
	}
	var zero T
	return zero, false
}

// All returns a snapshot of every cached entity.
func (s *Store[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]T, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	return out
}

func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
