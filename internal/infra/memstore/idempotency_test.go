//go:build unit

package memstore_test

import (
	"context"
	"testing"
	"time"

	"stayhub/internal/infra"
	"stayhub/internal/infra/memstore"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var claimBase = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func TestIdempotencyStoreTryClaim(t *testing.T) {
	ctx := context.Background()

	t.Run("first claim wins, live claim is not reclaimed", func(t *testing.T) {
		// The clock sits far behind wall time on purpose: expiry must be
		// judged against the injected clock, never against time.Now.
		clk := clock.NewMockClock(claimBase)
		store := memstore.NewIdempotencyStore(clk)
		key := uuid.New()

		claimed, err := store.TryClaim(ctx, key, "hash-a", claimBase.Add(24*time.Hour))
		require.NoError(t, err)
		assert.True(t, claimed)

		claimed, err = store.TryClaim(ctx, key, "hash-a", claimBase.Add(24*time.Hour))
		require.NoError(t, err)
		assert.False(t, claimed)
	})

	t.Run("expired claim is reclaimed", func(t *testing.T) {
		clk := clock.NewMockClock(claimBase)
		store := memstore.NewIdempotencyStore(clk)
		key := uuid.New()

		claimed, err := store.TryClaim(ctx, key, "hash-a", claimBase.Add(time.Minute))
		require.NoError(t, err)
		require.True(t, claimed)

		clk.Add(2 * time.Minute)

		claimed, err = store.TryClaim(ctx, key, "hash-b", clk.Now().Add(time.Hour))
		require.NoError(t, err)
		assert.True(t, claimed)

		record, err := store.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, "hash-b", record.RequestHash)
		assert.Equal(t, commands.IdempotencyProcessing, record.Status)
	})
}

func TestIdempotencyStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	clk := clock.NewMockClock(claimBase)
	store := memstore.NewIdempotencyStore(clk)
	key := uuid.New()
	bookingID := uuid.New()

	_, err := store.Get(ctx, key)
	require.Error(t, err)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))

	claimed, err := store.TryClaim(ctx, key, "hash-a", claimBase.Add(time.Hour))
	require.NoError(t, err)
	require.True(t, claimed)

	require.NoError(t, store.MarkCompleted(ctx, key, bookingID))

	record, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, commands.IdempotencyCompleted, record.Status)
	require.NotNil(t, record.BookingID)
	assert.Equal(t, bookingID, *record.BookingID)

	require.NoError(t, store.Release(ctx, key))

	_, err = store.Get(ctx, key)
	assert.True(t, infra.IsKind(err, infra.KindNotFound))
}
