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

// Block adds a one-directional block edge.
func (s *Service) Block(ctx context.Context, blockerID, blockedID int64) (*model.Block, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Block")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("block.blocker_id", blockerID),
		attribute.Int64("block.blocked_id", blockedID),
	)

	if blockerID == blockedID {
		span.SetStatus(codes.Error, "self relation")
		return nil, model.ErrSelfRelation
	}

	block := &model.Block{BlockerID: blockerID, BlockedID: blockedID}
	if err := s.dao.CreateBlock(ctx, block); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			span.SetStatus(codes.Error, "already blocking")
			return nil, model.ErrAlreadyExists
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create block")
		return nil, fmt.Errorf("failed to create block: %v", err)
	}

	s.bust(ctx, model.CacheBlocking, blockerID)
	s.bust(ctx, model.CacheBlocked, blockedID)
	s.emit(ctx, notify.NewEvent(model.EventBlockCreated, blockerID, blockedID))

	s.logger.Info(ctx, "Block created",
		logger.F("blockerID", blockerID),
		logger.F("blockedID", blockedID))
	return block, nil
}

// Unblock removes a block edge. Returns false when no edge existed.
func (s *Service) Unblock(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Unblock")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("block.blocker_id", blockerID),
		attribute.Int64("block.blocked_id", blockedID),
	)

	removed, err := s.dao.DeleteBlock(ctx, blockerID, blockedID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete block")
		return false, fmt.Errorf("failed to remove block: %v", err)
	}
	if removed == 0 {
		return false, nil
	}

	s.bust(ctx, model.CacheBlocking, blockerID)
	s.bust(ctx, model.CacheBlocked, blockedID)
	s.emit(ctx, notify.NewEvent(model.EventBlockRemoved, blockerID, blockedID))

	s.logger.Info(ctx, "Block removed",
		logger.F("blockerID", blockerID),
		logger.F("blockedID", blockedID))
	return true, nil
}

// Blockers returns the users blocking userID.
func (s *Service) Blockers(ctx context.Context, userID int64) ([]*model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Blockers")
	defer span.End()

	span.SetAttributes(attribute.Int64("block.user_id", userID))
	return s.cachedUserList(ctx, model.CacheBlocked, userID, s.dao.ListBlockerIDs)
}

// Blocking returns the users userID blocks.
func (s *Service) Blocking(ctx context.Context, userID int64) ([]*model.User, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Blocking")
	defer span.End()

	span.SetAttributes(attribute.Int64("block.user_id", userID))
	return s.cachedUserList(ctx, model.CacheBlocking, userID, s.dao.ListBlockingIDs)
}

// IsBlocking reports whether blocker blocks blocked, in that direction only.
// The blocker's cached blocking list and the blocked user's cached blocker
// list can each answer yes; anything short of that goes to the store.
func (s *Service) IsBlocking(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.IsBlocking")
	defer span.End()

	if s.cachedMember(ctx, model.CacheBlocking, blockerID, blockedID) ||
		s.cachedMember(ctx, model.CacheBlocked, blockedID, blockerID) {
		return true, nil
	}
	return s.dao.BlockExists(ctx, blockerID, blockedID)
}

// IsBlocked reports whether a block exists between two users in either
// direction. Both edges are checked at the store so the answer never depends
// on which caller asks.
func (s *Service) IsBlocked(ctx context.Context, userID, otherID int64) (bool, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.IsBlocked")
	defer span.End()

	blocking, err := s.dao.BlockExists(ctx, userID, otherID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check block: %v", err)
	}
	if blocking {
		return true, nil
	}
	blocked, err := s.dao.BlockExists(ctx, otherID, userID)
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check block: %v", err)
	}
	return blocked, nil
}
