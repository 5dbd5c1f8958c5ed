package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(now *time.Time) *MemoryLimiter {
	l := NewMemoryLimiter(map[Action]Rule{
		ActionCreateSecret: {Limit: 5, Window: time.Hour},
		ActionReplySecret:  {Limit: 3, Window: time.Hour},
	})
	l.now = func() time.Time { return *now }
	return l
}

func TestMemoryLimiter_DeniesAfterQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(&now)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		result, err := limiter.Check(ctx, ActionCreateSecret, "session-a")
		require.NoError(t, err)
		assert.True(t, result.Allowed, "call %d should be allowed", i+1)
		assert.Equal(t, 4-i, result.Remaining)
	}

	result, err := limiter.Check(ctx, ActionCreateSecret, "session-a")
	require.NoError(t, err)
	assert.False(t, result.Allowed, "6th call should be denied")
	assert.Equal(t, 0, result.Remaining)
}

func TestMemoryLimiter_DenyDoesNotConsumeQuota(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(&now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(ctx, ActionReplySecret, "session-a")
		require.NoError(t, err)
	}

	denied, err := limiter.Check(ctx, ActionReplySecret, "session-a")
	require.NoError(t, err)
	require.False(t, denied.Allowed)

	// Reset time must not move on denied calls.
	again, err := limiter.Check(ctx, ActionReplySecret, "session-a")
	require.NoError(t, err)
	assert.False(t, again.Allowed)
	assert.Equal(t, denied.ResetAt, again.ResetAt)
}

func TestMemoryLimiter_WindowAnchoredAtFirstCall(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(&now)
	ctx := context.Background()

	first, err := limiter.Check(ctx, ActionCreateSecret, "session-a")
	require.NoError(t, err)
	assert.Equal(t, now.Add(time.Hour), first.ResetAt)

	// A later call within the window keeps the original reset time.
	now = now.Add(30 * time.Minute)
	second, err := limiter.Check(ctx, ActionCreateSecret, "session-a")
	require.NoError(t, err)
	assert.Equal(t, first.ResetAt, second.ResetAt)

	// After expiry the window restarts at the next call with full quota.
	now = now.Add(31 * time.Minute)
	third, err := limiter.Check(ctx, ActionCreateSecret, "session-a")
	require.NoError(t, err)
	assert.True(t, third.Allowed)
	assert.Equal(t, 4, third.Remaining)
	assert.Equal(t, now.Add(time.Hour), third.ResetAt)
}

func TestMemoryLimiter_IdentitiesAreIndependent(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(&now)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := limiter.Check(ctx, ActionReplySecret, "session-a")
		require.NoError(t, err)
	}

	denied, err := limiter.Check(ctx, ActionReplySecret, "session-a")
	require.NoError(t, err)
	assert.False(t, denied.Allowed)

	other, err := limiter.Check(ctx, ActionReplySecret, "session-b")
	require.NoError(t, err)
	assert.True(t, other.Allowed)
	assert.Equal(t, 2, other.Remaining)
}

func TestMemoryLimiter_UnknownAction(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	limiter := newTestLimiter(&now)

	_, err := limiter.Check(context.Background(), Action("unknown"), "session-a")
	assert.Error(t, err)
}
