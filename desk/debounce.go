package desk

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// DefaultAuditWindow is how long a query may keep changing before it settles.
const DefaultAuditWindow = 1000 * time.Millisecond

// Debouncer turns raw keystroke values into settled queries. Consecutive
// duplicates are dropped; the first distinct value after idle opens an audit
// window and the value pending when the window closes is emitted. Later
// values inside an open window replace the pending one without extending it.
type Debouncer struct {
	clock  clockwork.Clock
	window time.Duration
	emit   func(string)

	mu      sync.Mutex
	last    string
	seen    bool
	pending string
	timer   clockwork.Timer
	stopped bool
}

func NewDebouncer(clock clockwork.Clock, window time.Duration, emit func(string)) *Debouncer {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if window <= 0 {
		window = DefaultAuditWindow
	}
	return &Debouncer{clock: clock, window: window, emit: emit}
}

func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.seen && value == d.last {
		return
	}
	d.last, d.seen = value, true
	d.pending = value
	if d.timer == nil {
		d.timer = d.clock.AfterFunc(d.window, d.fire)
	}
}

func (d *Debouncer) fire() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.timer = nil
	d.mu.Unlock()

	d.emit(value)
}

// Stop cancels a pending window; nothing is emitted after Stop returns.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
