package service

import (
	"context"

	"social-graph/apps/relationship-service/cache"
	"social-graph/apps/relationship-service/dao"
	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/logger"
)

// Service implements the relationship engine: friendship requests, mutual
// friendships, follows and blocks, backed by the relational store with a
// read-through cache and a fire-and-forget event bus.
//
// Every mutation runs in a fixed order: store write, cache bust, event emit.
// Cache and bus failures are logged and never fail the operation; the store
// is the single source of truth.
type Service struct {
	dao    dao.RelationshipDAO
	cache  *cache.RelationshipCache
	bus    notify.Bus
	logger logger.Logger
}

// NewService creates a relationship service instance.
func NewService(relationshipDAO dao.RelationshipDAO, relCache *cache.RelationshipCache, bus notify.Bus, log logger.Logger) *Service {
	return &Service{
		dao:    relationshipDAO,
		cache:  relCache,
		bus:    bus,
		logger: log,
	}
}

// bust invalidates a cache category for a user. Invalidation failures leave a
// stale entry behind until the next successful bust of the same keys.
func (s *Service) bust(ctx context.Context, category string, userID int64) {
	if err := s.cache.Bust(ctx, category, userID); err != nil {
		s.logger.Warn(ctx, "Failed to bust cache",
			logger.F("category", category),
			logger.F("userID", userID),
			logger.F("error", err.Error()))
	}
}

// emit publishes an event on the bus. Publish failures are logged and dropped.
func (s *Service) emit(ctx context.Context, event notify.Event) {
	if err := s.bus.Publish(ctx, event); err != nil {
		s.logger.Warn(ctx, "Failed to publish event",
			logger.F("type", event.Type),
			logger.F("actorID", event.ActorID),
			logger.F("error", err.Error()))
	}
}

// resolveUsers maps ids to user rows, preserving order.
func (s *Service) resolveUsers(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}
	return s.dao.GetUsersByIDs(ctx, ids)
}

// cachedUserList serves a per-user id-list category read-through: cache hit
// returns immediately, a miss loads from the store and repopulates.
func (s *Service) cachedUserList(ctx context.Context, category string, userID int64,
	load func(context.Context, int64) ([]int64, error)) ([]*model.User, error) {
	ids, hit, err := s.cache.GetIDs(ctx, category, userID)
	if err != nil {
		s.logger.Warn(ctx, "Cache read failed, falling back to store",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	if !hit {
		ids, err = load(ctx, userID)
		if err != nil {
			return nil, err
		}
		if err := s.cache.SetIDs(ctx, category, userID, ids); err != nil {
			s.logger.Warn(ctx, "Cache write failed",
				logger.F("category", category),
				logger.F("error", err.Error()))
		}
	}
	return s.resolveUsers(ctx, ids)
}

// cachedRequestList serves a per-user request-list category read-through.
func (s *Service) cachedRequestList(ctx context.Context, category string, userID int64,
	load func(context.Context, int64) ([]*model.FriendshipRequest, error)) ([]*model.FriendshipRequest, error) {
	reqs, hit, err := s.cache.GetRequests(ctx, category, userID)
	if err != nil {
		s.logger.Warn(ctx, "Cache read failed, falling back to store",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	if hit {
		return reqs, nil
	}
	reqs, err = load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetRequests(ctx, category, userID, reqs); err != nil {
		s.logger.Warn(ctx, "Cache write failed",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	return reqs, nil
}

// cachedCount serves a per-user count category read-through.
func (s *Service) cachedCount(ctx context.Context, category string, userID int64,
	load func(context.Context, int64) (int64, error)) (int64, error) {
	count, hit, err := s.cache.GetCount(ctx, category, userID)
	if err != nil {
		s.logger.Warn(ctx, "Cache read failed, falling back to store",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	if hit {
		return count, nil
	}
	count, err = load(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.cache.SetCount(ctx, category, userID, count); err != nil {
		s.logger.Warn(ctx, "Cache write failed",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	return count, nil
}

// cachedMember reports whether memberID appears in ownerID's cached list for
// a category. Only a positive hit is trusted: a cached list may predate a
// lost bust, so its absence of an id never answers a predicate. Cache errors
// are logged and read as no-hit.
func (s *Service) cachedMember(ctx context.Context, category string, ownerID, memberID int64) bool {
	ids, hit, err := s.cache.GetIDs(ctx, category, ownerID)
	if err != nil {
		s.logger.Warn(ctx, "Cache read failed, falling back to store",
			logger.F("category", category),
			logger.F("error", err.Error()))
	}
	return hit && containsID(ids, memberID)
}

// containsID reports membership in an id list.
func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
