// Package throttle admits hotkey triggers one capture cycle at a time.
package throttle

import (
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// DefaultDebounce absorbs key-repeat duplicates of a single press.
const DefaultDebounce = 500 * time.Millisecond

// Admission is the outcome of Admit.
type Admission int

const (
	// Admitted means the caller owns the gate until it calls the release func.
	Admitted Admission = iota
	// Debounced means the trigger came too soon after the previous one.
	Debounced
	// Busy means a cycle is already in flight.
	Busy
)

func (a Admission) String() string {
	switch a {
	case Admitted:
		return "admitted"
	case Debounced:
		return "debounced"
	case Busy:
		return "busy"
	default:
		return "unknown"
	}
}

// Throttle is a debounce window in front of a single-slot gate.
type Throttle struct {
	debounce time.Duration
	gate     *semaphore.Weighted
	now      func() time.Time

	mu   sync.Mutex
	last time.Time
}

// New returns a throttle; a non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Throttle {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Throttle{
		debounce: debounce,
		gate:     semaphore.NewWeighted(1),
		now:      time.Now,
	}
}

// Accept reports whether a trigger falls outside the debounce window of the
// previously accepted one, and records it if so.
func (t *Throttle) Accept() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.debounce {
		return false
	}
	t.last = now
	return true
}

// TryEnter takes the gate without blocking. It returns false while another
// cycle holds it.
func (t *Throttle) TryEnter() bool {
	return t.gate.TryAcquire(1)
}

// Exit releases the gate taken by TryEnter.
func (t *Throttle) Exit() {
	t.gate.Release(1)
}

// Admit runs the debounce check and then the gate. When the result is
// Admitted the returned func releases the gate; it is safe to call more than
// once. For any other result it is a no-op.
func (t *Throttle) Admit() (Admission, func()) {
	if !t.Accept() {
		return Debounced, func() {}
	}
	if !t.TryEnter() {
		return Busy, func() {}
	}

	var once sync.Once
	return Admitted, func() { once.Do(t.Exit) }
}
