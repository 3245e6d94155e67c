package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/logger"
	"social-graph/pkg/telemetry"
)

// Follow adds a one-directional follow edge.
func (s *Service) Follow(ctx context.Context, followerID, followeeID int64) (*model.Follow, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Follow")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("follow.follower_id", followerID),
		attribute.Int64("follow.followee_id", followeeID),
	)

	if followerID == followeeID {
		span.SetStatus(codes.Error, "self relation")
		return nil, model.ErrSelfRelation
	}

	follow := &model.Follow{FollowerID: followerID, FolloweeID: followeeID}
	if err := s.dao.CreateFollow(ctx, follow); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			span.SetStatus(codes.Error, "already following")
			return nil, model.ErrAlreadyExists
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create follow")
		return nil, fmt.Errorf("failed to create follow: %v", err)
	}

	s.bust(ctx, model.CacheFollowing, followerID)
	s.bust(ctx, model.CacheFollowers, followeeID)
	s.emit(ctx, notify.NewEvent(model.EventFollowerCreated, followerID, followeeID))
	s.emit(ctx, notify.NewEvent(model.EventFolloweeCreated, followeeID, followerID))
	s.emit(ctx, notify.NewEvent(model.EventFollowingCreated, followerID, followeeID))

	s.logger.Info(ctx, "Follow created",
		logger.F("followerID", followerID),
		logger.F("followeeID", followeeID))
	return follow, nil
}

// Unfollow removes a follow edge. Returns false when no edge existed.
func (s *Service) Unfollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Unfollow")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("follow.follower_id", followerID),
		attribute.Int64("follow.followee_id", followeeID),
	)

	removed, err := s.dao.DeleteFollow(ctx, followerID, followeeID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete follow")
		return false, fmt.Errorf("failed to remove follow: %v", err)
	}
	if removed == 0 {
		return false, nil
	}

	s.bust(ctx, model.CacheFollowing, followerID)
	s.bust(ctx, model.CacheFollowers, followeeID)
	s.emit(ctx, notify.NewEvent(model.EventFollowerRemoved, followerID, followeeID))
	s.emit(ctx, notify.NewEvent(model.EventFolloweeRemoved, followeeID, followerID))
	s.emit(ctx, notify.NewEvent(model.EventFollowingRemoved, followerID, followeeID))

	s.logger.Info(ctx, "Follow removed",
		logger.F("followerID", followerID),
		logger.F("followeeID", followeeID))
	return true, nil
}

// Followers returns the users following userID.
func (s *Service) Followers(ctx context.Context, userID int64) ([]*model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Followers")
	defer span.End()

	span.SetAttributes(attribute.Int64("follow.user_id", userID))
	return s.cachedUserList(ctx, model.CacheFollowers, userID, s.dao.ListFollowerIDs)
}

// Following returns the users userID follows.
func (s *Service) Following(ctx context.Context, userID int64) ([]*model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Following")
	defer span.End()

	span.SetAttributes(attribute.Int64("follow.user_id", userID))
	return s.cachedUserList(ctx, model.CacheFollowing, userID, s.dao.ListFollowingIDs)
}

// IsFollowing reports whether follower follows followee. The follower's
// cached following list and the followee's cached follower list can each
// answer yes; anything short of that goes to the store.
func (s *Service) IsFollowing(ctx context.Context, followerID, followeeID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.IsFollowing")
	defer span.End()

	if s.cachedMember(ctx, model.CacheFollowing, followerID, followeeID) ||
		s.cachedMember(ctx, model.CacheFollowers, followeeID, followerID) {
		return true, nil
	}
	return s.dao.FollowExists(ctx, followerID, followeeID)
}
