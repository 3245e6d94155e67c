package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"social-graph/apps/relationship-service/model"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set(ctx, "k", "v", 0))
	val, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "v", val)

	require.NoError(t, store.Del(ctx, "k", "missing"))
	assert.False(t, store.Has("k"))
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.Set(ctx, "k", "v", time.Millisecond))
	time.Sleep(5 * time.Millisecond)

	_, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRelationshipCache_IDs(t *testing.T) {
	ctx := context.Background()
	c := NewRelationshipCache(NewMemoryStore())

	_, hit, err := c.GetIDs(ctx, model.CacheFriends, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.SetIDs(ctx, model.CacheFriends, 1, []int64{2, 3}))
	ids, hit, err := c.GetIDs(ctx, model.CacheFriends, 1)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, []int64{2, 3}, ids)

	// An empty list is a hit, not a miss.
	require.NoError(t, c.SetIDs(ctx, model.CacheFriends, 2, nil))
	ids, hit, err = c.GetIDs(ctx, model.CacheFriends, 2)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Empty(t, ids)
}

func TestRelationshipCache_CorruptEntryIsMiss(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewRelationshipCache(store)

	require.NoError(t, store.Set(ctx, model.CacheKey(model.CacheFriends, 1), "not json", 0))

	_, hit, err := c.GetIDs(ctx, model.CacheFriends, 1)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, store.Set(ctx, model.CacheKey(model.CacheUnreadRequestCount, 1), "NaN", 0))
	_, hit, err = c.GetCount(ctx, model.CacheUnreadRequestCount, 1)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRelationshipCache_Requests(t *testing.T) {
	ctx := context.Background()
	c := NewRelationshipCache(NewMemoryStore())

	reqs := []*model.FriendshipRequest{
		{ID: 1, FromUserID: 2, ToUserID: 3, Message: "hi"},
	}
	require.NoError(t, c.SetRequests(ctx, model.CacheRequests, 3, reqs))

	got, hit, err := c.GetRequests(ctx, model.CacheRequests, 3)
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, "hi", got[0].Message)
}

func TestRelationshipCache_Count(t *testing.T) {
	ctx := context.Background()
	c := NewRelationshipCache(NewMemoryStore())

	require.NoError(t, c.SetCount(ctx, model.CacheUnreadRequestCount, 1, 7))
	n, hit, err := c.GetCount(ctx, model.CacheUnreadRequestCount, 1)
	require.NoError(t, err)
	require.True(t, hit)
	assert.Equal(t, int64(7), n)
}

func TestRelationshipCache_BustGroup(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewRelationshipCache(store)

	require.NoError(t, c.SetRequests(ctx, model.CacheRequests, 1, nil))
	require.NoError(t, c.SetCount(ctx, model.CacheUnreadRequestCount, 1, 3))
	require.NoError(t, c.SetRequests(ctx, model.CacheSentRequests, 1, nil))

	require.NoError(t, c.Bust(ctx, model.CacheRequests, 1))

	assert.False(t, store.Has(model.CacheKey(model.CacheRequests, 1)))
	assert.False(t, store.Has(model.CacheKey(model.CacheUnreadRequestCount, 1)))
	assert.True(t, store.Has(model.CacheKey(model.CacheSentRequests, 1)), "sender view is busted separately")
}
