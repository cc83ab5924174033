package reactive

import (
	"sync"
	"sync/atomic"
)

// Effect is a side effect that re-runs when any signal it read changes.
// Dependencies are re-tracked on every run, so conditional reads subscribe
// only to the branch actually taken.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	// sources are the signals this effect currently depends on.
	mu      sync.Mutex
	sources []*subscribers

	owner    *Owner
	disposed atomic.Bool
}

// NewEffect creates an effect and runs it immediately. The effect re-runs
// synchronously whenever one of its dependencies changes. If fn returns a
// Cleanup it is invoked before the next run and on disposal.
//
// The effect is registered with the current owner (see WithOwner) and is
// disposed with it.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: currentOwner(),
	}

	if e.owner != nil {
		e.owner.registerEffect(e)
	}

	e.run()
	return e
}

// MarkDirty re-runs the effect. Implements Listener.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}
	e.run()
}

// ID returns the effect's unique identifier. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Drop stale subscriptions before re-tracking.
	e.mu.Lock()
	for _, source := range e.sources {
		source.remove(e)
	}
	e.sources = e.sources[:0]
	e.mu.Unlock()

	old := setListener(e)
	e.cleanup = e.fn()
	setListener(old)
}

// addSource records a signal as a dependency. Called by Signal.Get while
// this effect is the active listener.
func (e *Effect) addSource(source *subscribers) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose runs the pending cleanup and unsubscribes from all sources.
// Safe to call more than once.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.mu.Lock()
	for _, source := range e.sources {
		source.remove(e)
	}
	e.sources = nil
	e.mu.Unlock()
}

// OnCleanup registers fn to run when the current owner is disposed.
// If there is no current owner, fn is discarded.
func OnCleanup(fn func()) {
	if owner := currentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}
