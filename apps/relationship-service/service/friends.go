package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/logger"
	"social-graph/pkg/telemetry"
)

// Friends returns a user's friends.
func (s *Service) Friends(ctx context.Context, userID int64) ([]*model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Friends")
	defer span.End()

	span.SetAttributes(attribute.Int64("friend.user_id", userID))
	return s.cachedUserList(ctx, model.CacheFriends, userID, s.dao.ListFriendIDs)
}

// AreFriends reports whether two users are friends. Either user's cached
// friend list can answer yes; anything short of that goes to the store.
func (s *Service) AreFriends(ctx context.Context, userID, otherID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.AreFriends")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("friend.user_id", userID),
		attribute.Int64("friend.other_id", otherID),
	)

	if s.cachedMember(ctx, model.CacheFriends, userID, otherID) ||
		s.cachedMember(ctx, model.CacheFriends, otherID, userID) {
		return true, nil
	}
	return s.dao.FriendExists(ctx, userID, otherID)
}

// RemoveFriend dissolves a friendship. Both mirrored rows are deleted in one
// statement, so the relation never survives half-removed. Returns false when
// the users were not friends.
func (s *Service) RemoveFriend(ctx context.Context, userID, otherID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.RemoveFriend")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("friend.user_id", userID),
		attribute.Int64("friend.other_id", otherID),
	)

	removed, err := s.dao.DeleteFriendPair(ctx, userID, otherID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete friend pair")
		return false, fmt.Errorf("failed to remove friend: %v", err)
	}
	if removed == 0 {
		return false, nil
	}

	s.bust(ctx, model.CacheFriends, userID)
	s.bust(ctx, model.CacheFriends, otherID)
	s.emit(ctx, notify.NewEvent(model.EventFriendshipRemove, userID, otherID))

	s.logger.Info(ctx, "Friendship removed",
		logger.F("userID", userID),
		logger.F("otherID", otherID))
	return true, nil
}
