package toaster_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

// expiryRecorder collects the identities handed to the scheduler's expire
// callback.
type expiryRecorder struct {
	mu  sync.Mutex
	ids []toast.ID
}

func (r *expiryRecorder) expire(id toast.ID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
}

func (r *expiryRecorder) expired() []toast.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]toast.ID(nil), r.ids...)
}

func inline(fn func()) { fn() }

func TestSchedulerFires(t *testing.T) {
	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, inline)

	s.Schedule("a", 20*time.Millisecond)
	assert.Equal(t, 1, s.PendingCount())

	require.Eventually(t, func() bool {
		return len(rec.expired()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, toast.ID("a"), rec.expired()[0])
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerCancelPreventsFiring(t *testing.T) {
	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, inline)

	s.Schedule("a", 30*time.Millisecond)
	s.Cancel("a")

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.expired(), "cancelled timer must not fire")
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerCancelUnknownIsNoop(t *testing.T) {
	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, inline)

	s.Cancel("never-scheduled")
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerCancelAfterFireIsNoop(t *testing.T) {
	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, inline)

	s.Schedule("a", 10*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(rec.expired()) == 1
	}, time.Second, 5*time.Millisecond)

	s.Cancel("a")
	assert.Len(t, rec.expired(), 1)
}

func TestSchedulerCancelAll(t *testing.T) {
	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, inline)

	s.Schedule("a", 30*time.Millisecond)
	s.Schedule("b", 30*time.Millisecond)
	s.Schedule("c", 30*time.Millisecond)
	s.CancelAll()

	time.Sleep(100 * time.Millisecond)
	assert.Empty(t, rec.expired(), "no timer may fire after CancelAll")
	assert.Zero(t, s.PendingCount())
}

func TestSchedulerDispatchesOnLoop(t *testing.T) {
	loop := toaster.NewLoop()
	defer loop.Close()

	rec := &expiryRecorder{}
	s := toaster.NewScheduler(rec.expire, loop.Dispatch)

	s.Schedule("a", 10*time.Millisecond)

	require.Eventually(t, func() bool {
		return len(rec.expired()) == 1
	}, time.Second, 5*time.Millisecond)
}
