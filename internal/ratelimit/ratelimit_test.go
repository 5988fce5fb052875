package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSlidingWindow_RejectsAfterMax(t *testing.T) {
	l := NewSlidingWindow(time.Minute, 6)
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		d := l.Allow("1.2.3.4", base.Add(time.Duration(i)*5*time.Second))
		require.True(t, d.Allowed, "request %d", i+1)
		require.Equal(t, 5-i, d.Remaining)
	}
	d := l.Allow("1.2.3.4", base.Add(40*time.Second))
	require.False(t, d.Allowed)
	require.Equal(t, 20*time.Second, d.RetryAfter)

	require.True(t, l.Allow("5.6.7.8", base.Add(40*time.Second)).Allowed)
}

func TestSlidingWindow_RejectionDoesNotConsumeSlot(t *testing.T) {
	l := NewSlidingWindow(10*time.Second, 1)
	base := time.Now()
	require.True(t, l.Allow("k", base).Allowed)
	for i := 1; i <= 5; i++ {
		require.False(t, l.Allow("k", base.Add(time.Duration(i)*time.Second)).Allowed)
	}
	require.Len(t, l.buckets["k"], 1)
	require.True(t, l.Allow("k", base.Add(10*time.Second)).Allowed)
}

func TestSlidingWindow_Sweep(t *testing.T) {
	l := NewSlidingWindow(10*time.Second, 3)
	base := time.Now()
	l.Allow("old", base.Add(-20*time.Second))
	l.Allow("fresh", base.Add(-2*time.Second))

	require.Equal(t, 1, l.Sweep(base))
	require.Equal(t, 1, l.Len())
	require.Contains(t, l.buckets, "fresh")
}
