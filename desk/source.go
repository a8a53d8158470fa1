package desk

import (
	"context"
	"fmt"
	"sync"
)

type Lister[T any] interface {
	List(ctx context.Context) ([]T, error)
}

type ListerFunc[T any] func(ctx context.Context) ([]T, error)

func (f ListerFunc[T]) List(ctx context.Context) ([]T, error) { return f(ctx) }

// Reloader is anything that can refetch its collection.
type Reloader interface {
	Reload(ctx context.Context) error
}

// Source holds the latest full collection of one entity type. The slice is
// replaced wholesale on every reload and must be treated as read-only by
// readers of Snapshot.
type Source[T any] struct {
	kind   Kind
	lister Lister[T]

	mu        sync.RWMutex
	items     []T
	loaded    bool
	listeners []func([]T)
	issued    uint64
	applied   uint64

	notifyMu sync.Mutex
}

func NewSource[T any](kind Kind, lister Lister[T]) *Source[T] {
	return &Source[T]{kind: kind, lister: lister}
}

func (s *Source[T]) Kind() Kind { return s.kind }

// Reload fetches the collection and notifies subscribers. On failure the
// previous collection stays in place. A fetch that resolves after a later
// one has been applied is discarded.
func (s *Source[T]) Reload(ctx context.Context) error {
	s.mu.Lock()
	s.issued++
	seq := s.issued
	s.mu.Unlock()

	items, err := s.lister.List(ctx)
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.kind, err)
	}
	if items == nil {
		items = []T{}
	}

	s.mu.Lock()
	if seq < s.applied {
		s.mu.Unlock()
		return nil
	}
	s.items = items
	s.loaded = true
	s.applied = seq
	listeners := append([]func([]T){}, s.listeners...)
	s.mu.Unlock()

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	if !s.current(seq) {
		return nil
	}
	for _, fn := range listeners {
		fn(items)
	}
	return nil
}

// current reports whether seq is still the applied collection.
func (s *Source[T]) current(seq uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.applied == seq
}

func (s *Source[T]) Snapshot() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.items
}

func (s *Source[T]) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Subscribe registers fn to run after every successful reload.
func (s *Source[T]) Subscribe(fn func([]T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Find returns the first item of the current snapshot accepted by match.
func (s *Source[T]) Find(match func(T) bool) (T, bool) {
	for _, item := range s.Snapshot() {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}
