package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"social-graph/apps/relationship-service/model"
	tracecontext "social-graph/pkg/context"
	"social-graph/pkg/httpx"
	"social-graph/pkg/logger"
)

// userList binds a user id payload and serves a resolved user list.
func (h *HTTPHandler) userList(c *gin.Context, query func(ctx context.Context, userID int64) ([]*model.User, error)) {
	ctx := c.Request.Context()

	var req model.UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid user list request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.UserListResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.UserID)

	users, err := query(ctx, req.UserID)

	var res *model.UserListResponse
	if err != nil {
		h.logger.Error(ctx, "User list query failed",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID))
		res = &model.UserListResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.UserListResponse{Success: true, Users: users}
	}

	httpx.WriteObject(c, res, err)
}

// requestList binds a user id payload and serves a friendship request list.
func (h *HTTPHandler) requestList(c *gin.Context, query func(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)) {
	ctx := c.Request.Context()

	var req model.UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid request list request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.RequestListResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.UserID)

	requests, err := query(ctx, req.UserID)

	var res *model.RequestListResponse
	if err != nil {
		h.logger.Error(ctx, "Request list query failed",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID))
		res = &model.RequestListResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.RequestListResponse{Success: true, Requests: requests}
	}

	httpx.WriteObject(c, res, err)
}

// countQuery binds a user id payload and serves a counter.
func (h *HTTPHandler) countQuery(c *gin.Context, query func(ctx context.Context, userID int64) (int64, error)) {
	ctx := c.Request.Context()

	var req model.UserIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid count request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.CountResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.UserID)

	count, err := query(ctx, req.UserID)

	var res *model.CountResponse
	if err != nil {
		h.logger.Error(ctx, "Count query failed",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID))
		res = &model.CountResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.CountResponse{Success: true, Count: count}
	}

	httpx.WriteObject(c, res, err)
}

// pairCheck binds a user pair payload and serves an existence predicate.
func (h *HTTPHandler) pairCheck(c *gin.Context, query func(ctx context.Context, userID, otherID int64) (bool, error)) {
	ctx := c.Request.Context()

	var req model.PairRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid pair check request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.ExistsResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.UserID)

	exists, err := query(ctx, req.UserID, req.OtherID)

	var res *model.ExistsResponse
	if err != nil {
		h.logger.Error(ctx, "Pair check failed",
			logger.F("error", err.Error()),
			logger.F("userID", req.UserID),
			logger.F("otherID", req.OtherID))
		res = &model.ExistsResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.ExistsResponse{Success: true, Exists: exists}
	}

	httpx.WriteObject(c, res, err)
}
