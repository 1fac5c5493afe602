package dedupe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestMemoryFirstSeen(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Hour)

	first, err := store.FirstSeen(ctx, "evt-1")
	require.NoError(t, err)
	require.True(t, first)

	again, err := store.FirstSeen(ctx, "evt-1")
	require.NoError(t, err)
	require.False(t, again)

	other, err := store.FirstSeen(ctx, "evt-2")
	require.NoError(t, err)
	require.True(t, other)
}

func TestMemoryExpiryReadmitsID(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Minute)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }

	first, err := store.FirstSeen(ctx, "evt-1")
	require.NoError(t, err)
	require.True(t, first)

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	expired, err := store.FirstSeen(ctx, "evt-1")
	require.NoError(t, err)
	require.True(t, expired, "id older than retention is treated as new")
}
