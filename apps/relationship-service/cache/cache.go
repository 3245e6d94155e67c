package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"social-graph/apps/relationship-service/model"
	"social-graph/pkg/redis"
)

// Store is the minimal key-value surface the relationship cache needs. The
// production store is redis; tests use the in-memory store.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// redisStore adapts the shared redis client to the Store surface.
type redisStore struct {
	client *redis.RedisClient
}

// NewRedisStore wraps a redis client as a cache store.
func NewRedisStore(client *redis.RedisClient) Store {
	return &redisStore{client: client}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := s.client.Get(ctx, key)
	if err != nil {
		if redis.IsNil(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("cache get %s: %v", key, err)
	}
	return val, true, nil
}

func (s *redisStore) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl); err != nil {
		return fmt.Errorf("cache set %s: %v", key, err)
	}
	return nil
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...); err != nil {
		return fmt.Errorf("cache del: %v", err)
	}
	return nil
}

// RelationshipCache holds per-user projections of the relationship graph
// keyed by category. Writers never update values in place; they bust the
// affected keys and let the next read repopulate from the store. Entries
// carry no expiry: they live until busted.
type RelationshipCache struct {
	store Store
}

// NewRelationshipCache creates a cache over the given store.
func NewRelationshipCache(store Store) *RelationshipCache {
	return &RelationshipCache{store: store}
}

// GetIDs returns the cached id list for a category, with a hit flag.
func (c *RelationshipCache) GetIDs(ctx context.Context, category string, userID int64) ([]int64, bool, error) {
	raw, ok, err := c.store.Get(ctx, model.CacheKey(category, userID))
	if err != nil || !ok {
		return nil, false, err
	}
	var ids []int64
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		// A corrupt entry is treated as a miss; the next write path busts it.
		return nil, false, nil
	}
	return ids, true, nil
}

// SetIDs caches the id list for a category.
func (c *RelationshipCache) SetIDs(ctx context.Context, category string, userID int64, ids []int64) error {
	if ids == nil {
		ids = []int64{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("cache marshal: %v", err)
	}
	return c.store.Set(ctx, model.CacheKey(category, userID), string(raw), 0)
}

// GetRequests returns the cached request list for a category, with a hit flag.
func (c *RelationshipCache) GetRequests(ctx context.Context, category string, userID int64) ([]*model.FriendshipRequest, bool, error) {
	raw, ok, err := c.store.Get(ctx, model.CacheKey(category, userID))
	if err != nil || !ok {
		return nil, false, err
	}
	var reqs []*model.FriendshipRequest
	if err := json.Unmarshal([]byte(raw), &reqs); err != nil {
		return nil, false, nil
	}
	return reqs, true, nil
}

// SetRequests caches the request list for a category.
func (c *RelationshipCache) SetRequests(ctx context.Context, category string, userID int64, reqs []*model.FriendshipRequest) error {
	if reqs == nil {
		reqs = []*model.FriendshipRequest{}
	}
	raw, err := json.Marshal(reqs)
	if err != nil {
		return fmt.Errorf("cache marshal: %v", err)
	}
	return c.store.Set(ctx, model.CacheKey(category, userID), string(raw), 0)
}

// GetCount returns the cached count for a category, with a hit flag.
func (c *RelationshipCache) GetCount(ctx context.Context, category string, userID int64) (int64, bool, error) {
	raw, ok, err := c.store.Get(ctx, model.CacheKey(category, userID))
	if err != nil || !ok {
		return 0, false, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return n, true, nil
}

// SetCount caches the count for a category.
func (c *RelationshipCache) SetCount(ctx context.Context, category string, userID int64, count int64) error {
	return c.store.Set(ctx, model.CacheKey(category, userID), strconv.FormatInt(count, 10), 0)
}

// Bust invalidates a category for a user along with every category grouped
// with it. Busting any request category drops all request projections for
// that user in one shot.
func (c *RelationshipCache) Bust(ctx context.Context, category string, userID int64) error {
	return c.store.Del(ctx, model.BustKeys(category, userID)...)
}
