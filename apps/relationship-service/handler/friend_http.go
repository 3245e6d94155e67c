package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"social-graph/apps/relationship-service/model"
	tracecontext "social-graph/pkg/context"
	"social-graph/pkg/httpx"
	"social-graph/pkg/logger"
)

// AddFriend creates a friendship request.
func (h *HTTPHandler) AddFriend(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.AddFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid add friend request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.RequestResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.FromUserID)

	created, err := h.svc.AddFriend(ctx, req.FromUserID, req.ToUserID, req.Message)

	var res *model.RequestResponse
	if err != nil {
		h.logger.Error(ctx, "Add friend failed",
			logger.F("error", err.Error()),
			logger.F("fromUserID", req.FromUserID),
			logger.F("toUserID", req.ToUserID))
		res = &model.RequestResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.RequestResponse{Success: true, Message: "Friendship request created", Request: created}
	}

	httpx.WriteObject(c, res, err)
}

// AcceptRequest accepts a friendship request.
func (h *HTTPHandler) AcceptRequest(c *gin.Context) {
	h.requestAction(c, "accept", h.svc.AcceptRequest)
}

// RejectRequest rejects a friendship request.
func (h *HTTPHandler) RejectRequest(c *gin.Context) {
	h.requestAction(c, "reject", h.svc.RejectRequest)
}

// CancelRequest cancels a friendship request.
func (h *HTTPHandler) CancelRequest(c *gin.Context) {
	h.requestAction(c, "cancel", h.svc.CancelRequest)
}

// MarkViewed marks a friendship request as viewed.
func (h *HTTPHandler) MarkViewed(c *gin.Context) {
	h.requestAction(c, "mark viewed", h.svc.MarkViewed)
}

// requestAction binds a request id payload and applies one lifecycle action.
func (h *HTTPHandler) requestAction(c *gin.Context, name string, action func(ctx context.Context, requestID int64) error) {
	ctx := c.Request.Context()

	var req model.RequestActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid request action payload",
			logger.F("action", name),
			logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	err := action(ctx, req.RequestID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Request action failed",
			logger.F("action", name),
			logger.F("requestID", req.RequestID),
			logger.F("error", err.Error()))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true}
	}

	httpx.WriteObject(c, res, err)
}

// RemoveFriend dissolves a friendship.
func (h *HTTPHandler) RemoveFriend(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.RemoveFriendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid remove friend request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.UserID)

	removed, err := h.svc.RemoveFriend(ctx, req.UserID, req.FriendID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Remove friend failed",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID),
			logger.F("friendID", req.FriendID))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true, Removed: removed}
	}

	httpx.WriteObject(c, res, err)
}

// GetFriends returns a user's friends.
func (h *HTTPHandler) GetFriends(c *gin.Context) {
	h.userList(c, h.svc.Friends)
}

// AreFriends checks whether two users are friends.
func (h *HTTPHandler) AreFriends(c *gin.Context) {
	h.pairCheck(c, h.svc.AreFriends)
}

// ============ Request views ============

// GetRequests returns requests received by a user.
func (h *HTTPHandler) GetRequests(c *gin.Context) {
	h.requestList(c, h.svc.Requests)
}

// GetSentRequests returns requests sent by a user.
func (h *HTTPHandler) GetSentRequests(c *gin.Context) {
	h.requestList(c, h.svc.SentRequests)
}

// GetUnreadRequests returns received requests not yet viewed.
func (h *HTTPHandler) GetUnreadRequests(c *gin.Context) {
	h.requestList(c, h.svc.UnreadRequests)
}

// GetUnreadRequestCount returns the count of unviewed received requests.
func (h *HTTPHandler) GetUnreadRequestCount(c *gin.Context) {
	h.countQuery(c, h.svc.UnreadRequestCount)
}

// GetReadRequests returns received requests already viewed.
func (h *HTTPHandler) GetReadRequests(c *gin.Context) {
	h.requestList(c, h.svc.ReadRequests)
}

// GetRejectedRequests returns rejected received requests.
func (h *HTTPHandler) GetRejectedRequests(c *gin.Context) {
	h.requestList(c, h.svc.RejectedRequests)
}

// GetUnrejectedRequests returns received requests not rejected.
func (h *HTTPHandler) GetUnrejectedRequests(c *gin.Context) {
	h.requestList(c, h.svc.UnrejectedRequests)
}

// GetUnrejectedRequestCount returns the count of unrejected received requests.
func (h *HTTPHandler) GetUnrejectedRequestCount(c *gin.Context) {
	h.countQuery(c, h.svc.UnrejectedRequestCount)
}
