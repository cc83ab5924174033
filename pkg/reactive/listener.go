package reactive

import "sync/atomic"

// Listener is anything that can be notified when a dependency changes.
type Listener interface {
	// MarkDirty tells the listener one of its dependencies changed.
	// For effects this schedules a re-run.
	MarkDirty()

	// ID returns a unique identifier, used to deduplicate subscriptions
	// and batched notifications.
	ID() uint64
}

// Cleanup is returned by an effect to release resources. It runs before the
// effect re-runs and when the effect is disposed.
type Cleanup func()

// idCounter feeds unique IDs to every reactive primitive in the process.
var idCounter uint64

func nextID() uint64 {
	return atomic.AddUint64(&idCounter, 1)
}
