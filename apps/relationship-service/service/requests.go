package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/pkg/logger"
	"social-graph/pkg/telemetry"
)

// AddFriend creates a friendship request from one user to another. A request
// is refused when the users are already friends or when any request row, in
// either direction and regardless of rejection state, still exists between
// the pair. The store's unique constraint arbitrates concurrent duplicates.
func (s *Service) AddFriend(ctx context.Context, fromUserID, toUserID int64, message string) (*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.AddFriend")
	defer span.End()

	span.SetAttributes(
		attribute.Int64("request.from_user_id", fromUserID),
		attribute.Int64("request.to_user_id", toUserID),
	)

	if fromUserID == toUserID {
		span.SetStatus(codes.Error, "self relation")
		return nil, model.ErrSelfRelation
	}

	areFriends, err := s.dao.FriendExists(ctx, fromUserID, toUserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check friendship")
		return nil, fmt.Errorf("failed to check friendship: %v", err)
	}
	if areFriends {
		span.SetStatus(codes.Error, "already friends")
		return nil, model.ErrAlreadyFriends
	}

	exists, err := s.dao.RequestExistsBetween(ctx, fromUserID, toUserID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to check existing request")
		return nil, fmt.Errorf("failed to check existing request: %v", err)
	}
	if exists {
		span.SetStatus(codes.Error, "request already exists")
		return nil, model.ErrAlreadyRequested
	}

	req := &model.FriendshipRequest{
		FromUserID: fromUserID,
		ToUserID:   toUserID,
		Message:    message,
	}
	if err := s.dao.CreateFriendshipRequest(ctx, req); err != nil {
		if errors.Is(err, model.ErrAlreadyExists) {
			span.SetStatus(codes.Error, "request already exists")
			return nil, model.ErrAlreadyRequested
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create request")
		return nil, fmt.Errorf("failed to create friendship request: %v", err)
	}

	s.bust(ctx, model.CacheRequests, toUserID)
	s.bust(ctx, model.CacheSentRequests, fromUserID)
	s.emit(ctx, notify.NewEvent(model.EventRequestCreated, fromUserID, toUserID).WithRequestID(req.ID))

	s.logger.Info(ctx, "Friendship request created",
		logger.F("requestID", req.ID),
		logger.F("fromUserID", fromUserID),
		logger.F("toUserID", toUserID))
	return req, nil
}

// AcceptRequest turns a pending request into a mutual friendship: both
// mirrored friend rows are created, then every request row between the pair
// is deleted so a future request starts clean.
func (s *Service) AcceptRequest(ctx context.Context, requestID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.AcceptRequest")
	defer span.End()

	span.SetAttributes(attribute.Int64("request.id", requestID))

	req, err := s.dao.GetFriendshipRequest(ctx, requestID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request not found")
		return err
	}

	if err := s.dao.CreateFriend(ctx, &model.Friend{FromUserID: req.FromUserID, ToUserID: req.ToUserID}); err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create friend row")
		return fmt.Errorf("failed to create friendship: %v", err)
	}
	if err := s.dao.CreateFriend(ctx, &model.Friend{FromUserID: req.ToUserID, ToUserID: req.FromUserID}); err != nil && !errors.Is(err, model.ErrAlreadyExists) {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create mirror friend row")
		return fmt.Errorf("failed to create friendship: %v", err)
	}

	if err := s.dao.DeleteFriendshipRequest(ctx, req.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete request")
		return fmt.Errorf("failed to delete accepted request: %v", err)
	}
	// A crossing request from the other side is consumed by the acceptance.
	if err := s.dao.DeleteFriendshipRequestBetween(ctx, req.ToUserID, req.FromUserID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete reverse request")
		return fmt.Errorf("failed to delete reverse request: %v", err)
	}

	s.bust(ctx, model.CacheFriends, req.FromUserID)
	s.bust(ctx, model.CacheFriends, req.ToUserID)
	s.bust(ctx, model.CacheRequests, req.FromUserID)
	s.bust(ctx, model.CacheRequests, req.ToUserID)
	s.bust(ctx, model.CacheSentRequests, req.FromUserID)
	s.bust(ctx, model.CacheSentRequests, req.ToUserID)
	s.emit(ctx, notify.NewEvent(model.EventRequestAccepted, req.ToUserID, req.FromUserID).WithRequestID(req.ID))

	s.logger.Info(ctx, "Friendship request accepted",
		logger.F("requestID", req.ID),
		logger.F("fromUserID", req.FromUserID),
		logger.F("toUserID", req.ToUserID))
	return nil
}

// RejectRequest marks a request rejected. The row persists and keeps blocking
// a fresh request between the pair until it is canceled. Rejecting an already
// rejected request is a no-op; the first rejection timestamp stands.
func (s *Service) RejectRequest(ctx context.Context, requestID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.RejectRequest")
	defer span.End()

	span.SetAttributes(attribute.Int64("request.id", requestID))

	req, err := s.dao.GetFriendshipRequest(ctx, requestID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request not found")
		return err
	}
	if req.Rejected() {
		return nil
	}

	now := time.Now()
	req.RejectedAt = &now
	if err := s.dao.SaveFriendshipRequest(ctx, req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save request")
		return fmt.Errorf("failed to reject request: %v", err)
	}

	s.bust(ctx, model.CacheRequests, req.ToUserID)
	s.bust(ctx, model.CacheRequests, req.FromUserID)
	s.emit(ctx, notify.NewEvent(model.EventRequestRejected, req.ToUserID, req.FromUserID).WithRequestID(req.ID))

	s.logger.Info(ctx, "Friendship request rejected",
		logger.F("requestID", req.ID),
		logger.F("fromUserID", req.FromUserID),
		logger.F("toUserID", req.ToUserID))
	return nil
}

// CancelRequest deletes a request outright. It serves both the sender
// withdrawing a pending request and either side clearing a rejected row so
// the pair can exchange requests again.
func (s *Service) CancelRequest(ctx context.Context, requestID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.CancelRequest")
	defer span.End()

	span.SetAttributes(attribute.Int64("request.id", requestID))

	req, err := s.dao.GetFriendshipRequest(ctx, requestID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request not found")
		return err
	}

	if err := s.dao.DeleteFriendshipRequest(ctx, req.ID); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to delete request")
		return fmt.Errorf("failed to cancel request: %v", err)
	}

	s.bust(ctx, model.CacheRequests, req.ToUserID)
	s.bust(ctx, model.CacheSentRequests, req.FromUserID)
	s.emit(ctx, notify.NewEvent(model.EventRequestCanceled, req.FromUserID, req.ToUserID).WithRequestID(req.ID))

	s.logger.Info(ctx, "Friendship request canceled",
		logger.F("requestID", req.ID),
		logger.F("fromUserID", req.FromUserID),
		logger.F("toUserID", req.ToUserID))
	return nil
}

// MarkViewed records that the recipient has seen the request. The first view
// timestamp is kept; marking again is a no-op.
func (s *Service) MarkViewed(ctx context.Context, requestID int64) error {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.MarkViewed")
	defer span.End()

	span.SetAttributes(attribute.Int64("request.id", requestID))

	req, err := s.dao.GetFriendshipRequest(ctx, requestID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "request not found")
		return err
	}
	if req.Viewed() {
		return nil
	}

	now := time.Now()
	req.ViewedAt = &now
	if err := s.dao.SaveFriendshipRequest(ctx, req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to save request")
		return fmt.Errorf("failed to mark request viewed: %v", err)
	}

	s.bust(ctx, model.CacheRequests, req.ToUserID)
	s.emit(ctx, notify.NewEvent(model.EventRequestViewed, req.ToUserID, req.FromUserID).WithRequestID(req.ID))
	return nil
}

// GetRequest returns a single request by id.
func (s *Service) GetRequest(ctx context.Context, requestID int64) (*model.FriendshipRequest, error) {
	return s.dao.GetFriendshipRequest(ctx, requestID)
}

// ============ Request views ============

// Requests returns requests received by a user.
func (s *Service) Requests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.Requests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheRequests, userID, s.dao.ListReceivedRequests)
}

// SentRequests returns requests sent by a user.
func (s *Service) SentRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.SentRequests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheSentRequests, userID, s.dao.ListSentRequests)
}

// UnreadRequests returns received requests not yet viewed.
func (s *Service) UnreadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.UnreadRequests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheUnreadRequests, userID, s.dao.ListUnreadRequests)
}

// UnreadRequestCount returns the number of received requests not yet viewed.
func (s *Service) UnreadRequestCount(ctx context.Context, userID int64) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.UnreadRequestCount")
	defer span.End()
	return s.cachedCount(ctx, model.CacheUnreadRequestCount, userID, s.dao.CountUnreadRequests)
}

// ReadRequests returns received requests already viewed.
func (s *Service) ReadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.ReadRequests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheReadRequests, userID, s.dao.ListReadRequests)
}

// RejectedRequests returns received requests that were rejected.
func (s *Service) RejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.RejectedRequests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheRejectedRequests, userID, s.dao.ListRejectedRequests)
}

// UnrejectedRequests returns received requests not rejected.
func (s *Service) UnrejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.UnrejectedRequests")
	defer span.End()
	return s.cachedRequestList(ctx, model.CacheUnrejectedRequests, userID, s.dao.ListUnrejectedRequests)
}

// UnrejectedRequestCount returns the number of received requests not rejected.
func (s *Service) UnrejectedRequestCount(ctx context.Context, userID int64) (int64, error) {
	ctx, span := telemetry.StartSpan(ctx, "relationship.service.UnrejectedRequestCount")
	defer span.End()
	return s.cachedCount(ctx, model.CacheUnrejectedRequestCount, userID, s.dao.CountUnrejectedRequests)
}
