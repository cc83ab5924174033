package toaster

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/toastline-dev/toastline/pkg/toast"
)

// Scheduler runs one-shot expiry timers. When a timer fires, the associated
// toast's removal is dispatched onto the configured loop; when a timer is
// cancelled first, nothing happens. There is no retry and no backoff — a
// timer either fires once or is cancelled.
type Scheduler struct {
	// expire is invoked (via dispatch) when a timer fires. It must tolerate
	// the toast being gone already.
	expire   func(toast.ID)
	dispatch func(func())

	mu      sync.Mutex
	pending map[toast.ID]*expiryTimer
}

// expiryTimer pairs a timer with a fired/cancelled latch. The latch makes
// cancellation race-free: whoever flips it first wins, and the loser's path
// degrades to a no-op.
type expiryTimer struct {
	timer *time.Timer
	done  atomic.Bool
}

// NewScheduler creates a scheduler that hands firings to expire on the given
// dispatcher.
func NewScheduler(expire func(toast.ID), dispatch func(func())) *Scheduler {
	return &Scheduler{
		expire:   expire,
		dispatch: dispatch,
		pending:  make(map[toast.ID]*expiryTimer),
	}
}

// Schedule starts a one-shot timer that removes the toast after d.
func (s *Scheduler) Schedule(id toast.ID, d time.Duration) {
	et := &expiryTimer{}
	et.timer = time.AfterFunc(d, func() {
		if !et.done.CompareAndSwap(false, true) {
			return
		}
		s.dispatch(func() {
			s.forget(id)
			s.expire(id)
		})
	})

	s.mu.Lock()
	s.pending[id] = et
	s.mu.Unlock()
}

// Cancel stops the pending timer for id. No-op when there is none or it
// already fired.
func (s *Scheduler) Cancel(id toast.ID) {
	s.mu.Lock()
	et, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	s.mu.Unlock()

	if ok && et.done.CompareAndSwap(false, true) {
		et.timer.Stop()
	}
}

// CancelAll stops every pending timer. Used by clear-all and by Toaster
// teardown so no stale timer fires afterward.
func (s *Scheduler) CancelAll() {
	s.mu.Lock()
	pending := s.pending
	s.pending = make(map[toast.ID]*expiryTimer)
	s.mu.Unlock()

	for _, et := range pending {
		if et.done.CompareAndSwap(false, true) {
			et.timer.Stop()
		}
	}
}

// PendingCount returns the number of timers that have neither fired nor been
// cancelled.
func (s *Scheduler) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

func (s *Scheduler) forget(id toast.ID) {
	s.mu.Lock()
	delete(s.pending, id)
	s.mu.Unlock()
}
