package authsupport

import (
	"context"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/fekuna/omnipos-storefront-service/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeStoreConsumeOnce(t *testing.T) {
	ctx := context.Background()
	s := NewCodeStore(cache.NewMemory(), time.Minute)

	require.NoError(t, s.Put(ctx, "Ada@Example.com ", "1234"))

	assert.ErrorIs(t, s.Consume(ctx, "ada@example.com", "9999"), ErrInvalidCode)
	assert.NoError(t, s.Consume(ctx, "ada@example.com", "1234"))
	assert.ErrorIs(t, s.Consume(ctx, "ada@example.com", "1234"), ErrInvalidCode)
}

func TestCodeStoreExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mem := cache.NewMemory().WithClock(func() time.Time { return now })
	s := NewCodeStore(mem, 10*time.Minute)

	require.NoError(t, s.Put(ctx, "a@b.c", "4321"))
	now = now.Add(11 * time.Minute)
	assert.ErrorIs(t, s.Consume(ctx, "a@b.c", "4321"), ErrInvalidCode)
}

func TestCodeStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewCodeStore(cache.NewMemory(), time.Minute)

	require.NoError(t, s.Put(ctx, "a@b.c", "1111"))
	require.NoError(t, s.Put(ctx, "a@b.c", "2222"))
	assert.ErrorIs(t, s.Consume(ctx, "a@b.c", "1111"), ErrInvalidCode)
	assert.NoError(t, s.Consume(ctx, "a@b.c", "2222"))
}

func TestNewVerificationCode(t *testing.T) {
	for i := 0; i < 200; i++ {
		code, err := NewVerificationCode()
		require.NoError(t, err)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 1000)
		assert.LessOrEqual(t, n, 9999)
	}
}

func TestNewResetToken(t *testing.T) {
	re := regexp.MustCompile(`^[a-z0-9]{26}$`)
	a, err := NewResetToken()
	require.NoError(t, err)
	b, err := NewResetToken()
	require.NoError(t, err)
	assert.Regexp(t, re, a)
	assert.NotEqual(t, a, b)
}
