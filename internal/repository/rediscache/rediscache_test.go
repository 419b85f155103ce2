package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gdugdh24/glicosaude/internal/domain"
	"github.com/gdugdh24/glicosaude/internal/onboarding"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	require.NoError(t, client.Ping(context.Background()).Err())

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestReadingCache(t *testing.T) {
	client, mr := setupTestRedis(t)
	cache := NewReadingCache(client, 5*time.Minute)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)

	measured := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	readings := []*domain.GlucoseReading{
		{ID: "r1", UserID: "user-1", GlucoseValue: 98, MeasurementType: domain.MeasurementFasting, MeasuredAt: measured},
	}
	version, err := cache.Version(ctx, "user-1")
	require.NoError(t, err)
	require.NoError(t, cache.Set(ctx, "user-1", version, readings))

	got, ok, err := cache.Get(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, 98, got[0].GlucoseValue)
	assert.True(t, measured.Equal(got[0].MeasuredAt))

	assert.Equal(t, 5*time.Minute, mr.TTL("readings:user-1"))

	require.NoError(t, cache.Invalidate(ctx, "user-1"))
	_, ok, err = cache.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestReadingCacheEmptyListIsAHit(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewReadingCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "user-2", 0, nil))
	got, ok, err := cache.Get(ctx, "user-2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestReadingCacheDropsSetFromBeforeInvalidate(t *testing.T) {
	client, _ := setupTestRedis(t)
	cache := NewReadingCache(client, time.Minute)
	ctx := context.Background()

	before, err := cache.Version(ctx, "user-3")
	require.NoError(t, err)
	require.NoError(t, cache.Invalidate(ctx, "user-3"))

	require.NoError(t, cache.Set(ctx, "user-3", before, []*domain.GlucoseReading{}))
	_, ok, err := cache.Get(ctx, "user-3")
	require.NoError(t, err)
	assert.False(t, ok, "a list read before the mutation must not be cached")

	after, err := cache.Version(ctx, "user-3")
	require.NoError(t, err)
	assert.Equal(t, before+1, after)
	require.NoError(t, cache.Set(ctx, "user-3", after, []*domain.GlucoseReading{{ID: "r1"}}))
	got, ok, err := cache.Get(ctx, "user-3")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, got, 1)
}

func TestDraftStore(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewDraftStore(client, 24*time.Hour)
	ctx := context.Background()

	_, err := store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)

	w := onboarding.New()
	name := "Carla"
	w.Update(domain.ProfilePatch{Name: &name})
	require.NoError(t, store.Save(ctx, "user-1", w.State()))

	state, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, onboarding.StepIdentity, state.Step)
	require.NotNil(t, state.Draft.Name)
	assert.Equal(t, "Carla", *state.Draft.Name)
	assert.Equal(t, 24*time.Hour, mr.TTL("user:user-1:onboarding"))

	mr.FastForward(25 * time.Hour)
	_, err = store.Get(ctx, "user-1")
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestTokenDenylist(t *testing.T) {
	client, mr := setupTestRedis(t)
	denylist := NewTokenDenylist(client)
	ctx := context.Background()

	revoked, err := denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, denylist.Revoke(ctx, "jti-1", time.Hour))
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Hour)
	revoked, err = denylist.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}
