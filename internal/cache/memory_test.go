package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func TestMemorySetGetExpire(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory().WithClock(clock.now)

	require.NoError(t, m.Set(ctx, "short", []byte("a"), time.Minute))
	require.NoError(t, m.Set(ctx, "forever", []byte("b"), 0))

	got, err := m.Get(ctx, "short")
	require.NoError(t, err)
	assert.Equal(t, []byte("a"), got)

	clock.advance(time.Minute)

	_, err = m.Get(ctx, "short")
	assert.ErrorIs(t, err, ErrMiss)

	got, err = m.Get(ctx, "forever")
	require.NoError(t, err)
	assert.Equal(t, []byte("b"), got)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "k", []byte("abc"), 0))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	got[0] = 'z'

	again, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Set(ctx, "a", []byte("1"), 0))
	require.NoError(t, m.Set(ctx, "b", []byte("2"), 0))

	require.NoError(t, m.Delete(ctx, "a", "b", "missing"))

	_, err := m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrMiss)
	_, err = m.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrMiss)
}

func TestMemoryIncrWindow(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory().WithClock(clock.now)

	n, resetAt, err := m.Incr(ctx, "rl", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.Equal(t, clock.t.Add(time.Minute), resetAt)

	n, _, _ = m.Incr(ctx, "rl", time.Minute)
	assert.Equal(t, int64(2), n)

	clock.advance(time.Minute)
	n, _, _ = m.Incr(ctx, "rl", time.Minute)
	assert.Equal(t, int64(1), n, "a new window starts after reset")
}

func TestMemorySweepsExpiredKeys(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	m := NewMemory().WithClock(clock.now)

	for i := 0; i < 10000; i++ {
		key := fmt.Sprintf("k%d", i)
		require.NoError(t, m.Set(ctx, key, []byte("v"), time.Second))
		_, _, err := m.Incr(ctx, key, time.Second)
		require.NoError(t, err)
	}
	require.NoError(t, m.Set(ctx, "keep", []byte("v"), 0))

	clock.advance(time.Hour)

	// the next writes trigger one sweep of everything that lapsed
	require.NoError(t, m.Set(ctx, "fresh", []byte("v"), time.Minute))
	_, _, err := m.Incr(ctx, "fresh", time.Minute)
	require.NoError(t, err)

	m.mu.RLock()
	defer m.mu.RUnlock()
	assert.Len(t, m.entries, 2)
	assert.Len(t, m.counters, 1)
	assert.Contains(t, m.entries, "keep")
}
