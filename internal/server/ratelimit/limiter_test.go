package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Disabled(t *testing.T) {
	l := New(0, 5)
	require.Nil(t, l)
	for range 100 {
		assert.True(t, l.Allow("10.0.0.1"))
	}
	assert.Equal(t, 0, l.Len())
}

func TestAllow_Burst(t *testing.T) {
	l := New(1, 3)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	for i := range 3 {
		assert.True(t, l.Allow("a"), "attempt %d", i)
	}
	assert.False(t, l.Allow("a"))

	// other keys have their own bucket
	assert.True(t, l.Allow("b"))

	now = now.Add(time.Minute)
	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
}

func TestAllow_EvictsIdle(t *testing.T) {
	l := New(10, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	l.Allow("a")
	l.Allow("b")
	require.Equal(t, 2, l.Len())

	now = now.Add(idleTTL + time.Second)
	l.Allow("c")
	assert.Equal(t, 1, l.Len())
}
