package desk

import (
	"context"
	"sync"
)

// Latest is a result slot where only the most recently issued ticket may
// commit. Issuing a ticket cancels the context of the previous one.
type Latest[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	value  T
	filled bool
}

// Begin issues a new ticket derived from parent.
func (l *Latest[T]) Begin(parent context.Context) (context.Context, uint64) {
	ctx, cancel := context.WithCancel(parent)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.cancel != nil {
		l.cancel()
	}
	l.seq++
	l.cancel = cancel
	return ctx, l.seq
}

// Commit stores v if seq is still the newest ticket and runs deliver while
// holding the slot, so deliveries happen in ticket order. Stale tickets
// report false and leave the slot untouched.
func (l *Latest[T]) Commit(seq uint64, v T, deliver func(T)) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if seq != l.seq {
		return false
	}
	l.value, l.filled = v, true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if deliver != nil {
		deliver(v)
	}
	return true
}

func (l *Latest[T]) Value() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.filled
}

// Close cancels the outstanding ticket, if any.
func (l *Latest[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
}
