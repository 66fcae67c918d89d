package lease

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/event-seat-reservation/internal/model"
)

// testClient connects to a local Redis or skips the test when none is
// running. Keys are namespaced with a fresh UUID per test so parallel runs
// cannot interfere.
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skip("Redis not available")
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func testEventID(t *testing.T) string {
	t.Helper()
	return "test-" + uuid.New().String()
}

func TestStore_HoldLifecycle(t *testing.T) {
	client := testClient(t)
	store := NewStore(client)
	ctx := context.Background()
	eventID := testEventID(t)

	now := time.Now().UTC().Truncate(time.Second)
	hold := model.Hold{
		EventID:    eventID,
		SeatNumber: 12,
		HolderID:   "alice",
		HeldAt:     now,
		ExpiresAt:  now.Add(5 * time.Minute),
	}

	t.Run("a stored hold reads back intact", func(t *testing.T) {
		require.NoError(t, store.PutHold(ctx, hold, 5*time.Minute))

		got, err := store.GetHold(ctx, eventID, 12)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "alice", got.HolderID)
		assert.True(t, got.ExpiresAt.Equal(hold.ExpiresAt))
	})

	t.Run("a missing hold returns nil without error", func(t *testing.T) {
		got, err := store.GetHold(ctx, eventID, 999)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("delete removes the hold and is idempotent", func(t *testing.T) {
		require.NoError(t, store.DeleteHold(ctx, eventID, 12))
		got, err := store.GetHold(ctx, eventID, 12)
		require.NoError(t, err)
		assert.Nil(t, got)

		assert.NoError(t, store.DeleteHold(ctx, eventID, 12))
	})

	t.Run("the lease key expires on its own", func(t *testing.T) {
		require.NoError(t, store.PutHold(ctx, hold, 100*time.Millisecond))
		time.Sleep(200 * time.Millisecond)

		got, err := store.GetHold(ctx, eventID, 12)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_RefreshHold(t *testing.T) {
	client := testClient(t)
	store := NewStore(client)
	ctx := context.Background()
	eventID := testEventID(t)

	now := time.Now().UTC().Truncate(time.Second)
	hold := model.Hold{EventID: eventID, SeatNumber: 3, HolderID: "alice", HeldAt: now, ExpiresAt: now.Add(time.Minute)}

	t.Run("refresh rewrites an existing lease", func(t *testing.T) {
		require.NoError(t, store.PutHold(ctx, hold, time.Minute))

		hold.ExpiresAt = now.Add(10 * time.Minute)
		ok, err := store.RefreshHold(ctx, hold, 10*time.Minute)
		require.NoError(t, err)
		assert.True(t, ok)

		got, err := store.GetHold(ctx, eventID, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.ExpiresAt.Equal(hold.ExpiresAt))
	})

	t.Run("refresh never recreates an evicted lease", func(t *testing.T) {
		require.NoError(t, store.DeleteHold(ctx, eventID, 3))

		ok, err := store.RefreshHold(ctx, hold, time.Minute)
		require.NoError(t, err)
		assert.False(t, ok)

		got, err := store.GetHold(ctx, eventID, 3)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestStore_HolderSeatSet(t *testing.T) {
	client := testClient(t)
	store := NewStore(client)
	ctx := context.Background()
	eventID := testEventID(t)

	t.Run("count follows membership, not add/remove volume", func(t *testing.T) {
		require.NoError(t, store.AddHolderSeat(ctx, eventID, "alice", 1))
		require.NoError(t, store.AddHolderSeat(ctx, eventID, "alice", 2))
		// duplicate add of the same seat must not bump the count
		require.NoError(t, store.AddHolderSeat(ctx, eventID, "alice", 2))

		n, err := store.HolderSeatCount(ctx, eventID, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		require.NoError(t, store.RemoveHolderSeat(ctx, eventID, "alice", 1))
		n, err = store.HolderSeatCount(ctx, eventID, "alice")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)
	})

	t.Run("removing an absent member is a no-op", func(t *testing.T) {
		require.NoError(t, store.RemoveHolderSeat(ctx, eventID, "alice", 42))
	})

	t.Run("holders are isolated per event and per holder", func(t *testing.T) {
		require.NoError(t, store.AddHolderSeat(ctx, eventID, "bob", 9))

		n, err := store.HolderSeatCount(ctx, eventID, "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(1), n)

		n, err = store.HolderSeatCount(ctx, testEventID(t), "bob")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	})
}
