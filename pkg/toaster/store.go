package toaster

import (
	"fmt"
	"sync"

	"github.com/toastline-dev/toastline/pkg/reactive"
	"github.com/toastline-dev/toastline/pkg/toast"
)

// Store holds the active toasts. It is the single source of truth: one
// identity map for lookups plus a reactive queue per screen position that
// presentation layers subscribe to. Insertion order is preserved within each
// position bucket and across the store as a whole.
//
// The store knows nothing about timers or rendering; the Toaster orchestrates
// both around it.
type Store struct {
	mu      sync.Mutex
	entries map[toast.ID]toast.Toast
	order   []toast.ID

	queues map[toast.Position]*reactive.Signal[[]toast.Toast]
}

// NewStore creates an empty store with a queue signal for every position.
func NewStore() *Store {
	queues := make(map[toast.Position]*reactive.Signal[[]toast.Toast], len(toast.Positions))
	for _, pos := range toast.Positions {
		queues[pos] = reactive.NewSignal([]toast.Toast{})
	}

	return &Store{
		entries: make(map[toast.ID]toast.Toast),
		queues:  queues,
	}
}

// Queue returns the reactive queue for a position. Reading it inside an
// effect subscribes the effect to that bucket's changes.
func (s *Store) Queue(pos toast.Position) *reactive.Signal[[]toast.Toast] {
	return s.queues[pos]
}

// Insert adds a toast. Identities are generated by the Toaster, so a
// duplicate can only mean a bug in identity generation; it panics rather
// than being absorbed.
func (s *Store) Insert(t toast.Toast) {
	s.mu.Lock()
	if _, exists := s.entries[t.ID]; exists {
		s.mu.Unlock()
		panic(fmt.Sprintf("toaster: duplicate toast identity %q", t.ID))
	}

	s.entries[t.ID] = t
	s.order = append(s.order, t.ID)
	queue, snapshot := s.queues[t.Position], s.bucketLocked(t.Position)
	s.mu.Unlock()

	queue.Set(snapshot)
}

// Get returns the toast with the given identity, if present.
func (s *Store) Get(id toast.ID) (toast.Toast, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.entries[id]
	return t, ok
}

// Remove deletes a toast and reports whether it was present. Removing an
// absent identity is a defined no-op: expiry and manual dismissal may race,
// and both ends must be free to lose.
func (s *Store) Remove(id toast.ID) bool {
	s.mu.Lock()
	t, ok := s.entries[id]
	if !ok {
		s.mu.Unlock()
		return false
	}

	delete(s.entries, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	queue, snapshot := s.queues[t.Position], s.bucketLocked(t.Position)
	s.mu.Unlock()

	queue.Set(snapshot)
	return true
}

// Clear removes every toast unconditionally, dismissable or not, and returns
// how many were removed. Queue notifications are batched so subscribers see
// a single change.
func (s *Store) Clear() int {
	s.mu.Lock()
	n := len(s.entries)
	s.entries = make(map[toast.ID]toast.Toast)
	s.order = nil
	s.mu.Unlock()

	reactive.Batch(func() {
		for _, queue := range s.queues {
			queue.Set([]toast.Toast{})
		}
	})
	return n
}

// All returns a snapshot of every active toast in insertion order.
func (s *Store) All() []toast.Toast {
	s.mu.Lock()
	defer s.mu.Unlock()

	all := make([]toast.Toast, 0, len(s.order))
	for _, id := range s.order {
		all = append(all, s.entries[id])
	}
	return all
}

// Len returns the number of active toasts.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// bucketLocked builds the ordered slice for one position. Caller holds s.mu.
func (s *Store) bucketLocked(pos toast.Position) []toast.Toast {
	bucket := make([]toast.Toast, 0, 4)
	for _, id := range s.order {
		if t := s.entries[id]; t.Position == pos {
			bucket = append(bucket, t)
		}
	}
	return bucket
}
