package cartstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sangkips/licorera-api/internal/domain/cart"
	"github.com/sangkips/licorera-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr
}

func sampleCart() *cart.Cart {
	c := cart.New()
	c.SetCustomer("Ana")
	c.Add(&entity.Product{ID: uuid.New(), Name: "Bombay Sapphire", Price: decimal.RequireFromString("27.99"), CategoryName: "Gin"})
	return c
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)

	client, err := Connect(ctx, mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedis(client, time.Hour)

	empty, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, cart.StateEmpty, empty.State())

	require.NoError(t, store.Save(ctx, "user-1", sampleCart()))
	assert.Equal(t, time.Hour, mr.TTL(keyPrefix+"user-1"))

	got, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.CustomerName)
	require.Len(t, got.Lines, 1)
	assert.True(t, decimal.RequireFromString("27.99").Equal(got.Total()))

	other, err := store.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other.Lines)

	require.NoError(t, store.Delete(ctx, "user-1"))
	assert.False(t, mr.Exists(keyPrefix+"user-1"))
	got, err = store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}

func TestRedisStoreExpires(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)

	require.NoError(t, store.Save(ctx, "user-1", sampleCart()))
	mr.FastForward(2 * time.Minute)

	got, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	ctx := context.Background()
	mr := setupTestRedis(t)
	store := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1}), time.Hour)

	mr.SetError("connection reset")
	_, err := store.Load(ctx, "user-1")
	assert.ErrorContains(t, err, "load cart")

	require.Error(t, store.Save(ctx, "user-1", sampleCart()))
}

func TestConnectFailsWithoutServer(t *testing.T) {
	mr := setupTestRedis(t)
	addr := mr.Addr()
	mr.Close()

	_, err := Connect(context.Background(), addr, "", 0)
	assert.ErrorContains(t, err, "ping redis")
}

func TestMemoryStoreIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemory(time.Hour)

	c := sampleCart()
	require.NoError(t, store.Save(ctx, "a", c))

	// mutating the caller's copy after save does not leak into the store
	c.Reset()

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Len(t, got.Lines, 1)

	b, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.Empty(t, b.Lines)
}

func TestMemoryStoreExpires(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := &memoryStore{ttl: time.Minute, carts: map[string]memoryEntry{}, now: func() time.Time { return now }}

	require.NoError(t, store.Save(ctx, "a", sampleCart()))
	now = now.Add(2 * time.Minute)

	got, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
}
