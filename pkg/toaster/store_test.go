package toaster_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastline-dev/toastline/pkg/reactive"
	"github.com/toastline-dev/toastline/pkg/toast"
	"github.com/toastline-dev/toastline/pkg/toaster"
)

func insert(t *testing.T, s *toaster.Store, message string, pos toast.Position) toast.Toast {
	t.Helper()
	built := toast.New(message).WithPosition(pos).Build(toast.NewID())
	s.Insert(built)
	return built
}

func TestStoreInsertAndGet(t *testing.T) {
	s := toaster.NewStore()
	a := insert(t, s, "a", toast.BottomLeft)

	got, ok := s.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, a, got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreDuplicateIdentityPanics(t *testing.T) {
	s := toaster.NewStore()
	a := insert(t, s, "a", toast.BottomLeft)

	assert.Panics(t, func() {
		s.Insert(a)
	})
}

func TestStoreRemoveAbsentIsNoop(t *testing.T) {
	s := toaster.NewStore()

	assert.False(t, s.Remove("no-such-id"))

	a := insert(t, s, "a", toast.BottomLeft)
	assert.True(t, s.Remove(a.ID))
	assert.False(t, s.Remove(a.ID), "second removal must be a no-op")
	assert.Zero(t, s.Len())
}

func TestStoreOrderingWithinPosition(t *testing.T) {
	s := toaster.NewStore()
	a := insert(t, s, "a", toast.TopRight)
	b := insert(t, s, "b", toast.TopRight)
	insert(t, s, "elsewhere", toast.BottomLeft)

	queue := s.Queue(toast.TopRight).Peek()
	require.Len(t, queue, 2)
	assert.Equal(t, a.ID, queue[0].ID)
	assert.Equal(t, b.ID, queue[1].ID)

	// Removing the first preserves the remainder's order.
	s.Remove(a.ID)
	queue = s.Queue(toast.TopRight).Peek()
	require.Len(t, queue, 1)
	assert.Equal(t, b.ID, queue[0].ID)
}

func TestStoreAllInsertionOrder(t *testing.T) {
	s := toaster.NewStore()
	a := insert(t, s, "a", toast.TopLeft)
	b := insert(t, s, "b", toast.BottomRight)
	c := insert(t, s, "c", toast.TopLeft)

	all := s.All()
	require.Len(t, all, 3)
	assert.Equal(t, []toast.ID{a.ID, b.ID, c.ID}, []toast.ID{all[0].ID, all[1].ID, all[2].ID})
}

func TestStoreClear(t *testing.T) {
	s := toaster.NewStore()
	insert(t, s, "a", toast.TopLeft)
	insert(t, s, "b", toast.BottomRight)

	assert.Equal(t, 2, s.Clear())
	assert.Zero(t, s.Len())
	assert.Empty(t, s.Queue(toast.TopLeft).Peek())
	assert.Empty(t, s.Queue(toast.BottomRight).Peek())
	assert.Zero(t, s.Clear(), "clearing an empty store removes nothing")
}

func TestStoreQueueIsReactive(t *testing.T) {
	s := toaster.NewStore()

	var seen [][]toast.Toast
	reactive.NewEffect(func() reactive.Cleanup {
		seen = append(seen, s.Queue(toast.BottomLeft).Get())
		return nil
	})

	a := insert(t, s, "a", toast.BottomLeft)
	s.Remove(a.ID)

	// Initial run, insert, remove.
	require.Len(t, seen, 3)
	assert.Empty(t, seen[0])
	require.Len(t, seen[1], 1)
	assert.Equal(t, a.ID, seen[1][0].ID)
	assert.Empty(t, seen[2])
}

func TestStoreClearNotifiesOncePerQueue(t *testing.T) {
	s := toaster.NewStore()
	insert(t, s, "a", toast.TopLeft)
	insert(t, s, "b", toast.TopLeft)

	runs := 0
	reactive.NewEffect(func() reactive.Cleanup {
		_ = s.Queue(toast.TopLeft).Get()
		_ = s.Queue(toast.TopRight).Get()
		runs++
		return nil
	})

	s.Clear()

	// One initial run plus one batched notification for the clear.
	assert.Equal(t, 2, runs)
}
