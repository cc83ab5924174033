package toast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toastline-dev/toastline/pkg/toast"
)

func TestBuilderDefaults(t *testing.T) {
	built := toast.New("msg").Build(toast.NewID())

	assert.Equal(t, "msg", built.Message)
	assert.Equal(t, toast.LevelInfo, built.Level)
	assert.True(t, built.Dismissable)
	assert.Equal(t, 2500*time.Millisecond, built.Expiry)
	assert.True(t, built.Progress)
	assert.Equal(t, toast.BottomLeft, built.Position)
	assert.True(t, built.Expires())
}

func TestBuilderChaining(t *testing.T) {
	built := toast.New("deploy failed").
		WithLevel(toast.LevelError).
		WithDismissable(false).
		WithExpiry(10 * time.Second).
		WithProgress(false).
		WithPosition(toast.TopRight).
		Build(toast.NewID())

	assert.Equal(t, toast.LevelError, built.Level)
	assert.False(t, built.Dismissable)
	assert.Equal(t, 10*time.Second, built.Expiry)
	assert.False(t, built.Progress)
	assert.Equal(t, toast.TopRight, built.Position)
}

func TestBuilderNoExpiry(t *testing.T) {
	built := toast.New("sticky").WithNoExpiry().Build(toast.NewID())

	assert.Zero(t, built.Expiry)
	assert.False(t, built.Expires())
}

func TestBuilderNegativeExpiryMeansNone(t *testing.T) {
	built := toast.New("msg").WithExpiry(-time.Second).Build(toast.NewID())
	assert.False(t, built.Expires())
}

func TestBuilderIsPure(t *testing.T) {
	b := toast.New("msg")

	first := b.Build("id-1")
	second := b.Build("id-2")

	// Building twice from the same builder yields identical configuration,
	// differing only by the supplied identity.
	assert.Equal(t, toast.ID("id-1"), first.ID)
	assert.Equal(t, toast.ID("id-2"), second.ID)
	first.ID = second.ID
	assert.Equal(t, second, first)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[toast.ID]bool)
	for i := 0; i < 1000; i++ {
		id := toast.NewID()
		require.False(t, seen[id], "duplicate identity %s", id)
		seen[id] = true
	}
}
