package desk

import (
	"context"
	"sync"
)

// FilteredView keeps the result of filtering a Source by the last settled
// query. Every settled query and every source reload recomputes the result
// from a snapshot; a recomputation overtaken by a newer one is abandoned.
type FilteredView[T any] struct {
	name   string
	source *Source[T]
	match  Predicate[T]
	emit   func(query string, rows []T)

	mu     sync.Mutex
	query  string
	latest Latest[[]T]
}

func NewFilteredView[T any](name string, source *Source[T], match Predicate[T], emit func(query string, rows []T)) *FilteredView[T] {
	v := &FilteredView[T]{
		name:   name,
		source: source,
		match:  match,
		emit:   emit,
	}
	source.Subscribe(func([]T) { v.Refresh() })
	return v
}

func (v *FilteredView[T]) Name() string { return v.name }

// SetQuery records a settled query and recomputes.
func (v *FilteredView[T]) SetQuery(query string) {
	v.mu.Lock()
	v.query = query
	v.mu.Unlock()
	settledQueries.WithLabelValues(v.name).Inc()
	v.recompute()
}

// Refresh recomputes with the current query, typically after a reload.
func (v *FilteredView[T]) Refresh() {
	v.recompute()
}

func (v *FilteredView[T]) Query() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.query
}

// Result is the last delivered result. Before the first delivery it filters
// the current snapshot by the current query inline.
func (v *FilteredView[T]) Result() []T {
	if rows, ok := v.latest.Value(); ok {
		return rows
	}
	return Filter(v.source.Snapshot(), v.Query(), v.match)
}

func (v *FilteredView[T]) Close() {
	v.latest.Close()
}

func (v *FilteredView[T]) recompute() {
	v.mu.Lock()
	query := v.query
	ctx, seq := v.latest.Begin(context.Background())
	v.mu.Unlock()

	snapshot := v.source.Snapshot()
	go func() {
		rows, err := filterContext(ctx, snapshot, query, v.match)
		if err != nil {
			staleResults.WithLabelValues(v.name).Inc()
			return
		}
		delivered := v.latest.Commit(seq, rows, func(rows []T) {
			if v.emit != nil {
				v.emit(query, rows)
			}
		})
		if !delivered {
			staleResults.WithLabelValues(v.name).Inc()
		}
	}()
}
