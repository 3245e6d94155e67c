package handler

import (
	"github.com/gin-gonic/gin"

	"social-graph/apps/relationship-service/model"
	tracecontext "social-graph/pkg/context"
	"social-graph/pkg/httpx"
	"social-graph/pkg/logger"
)

// Follow creates a follow edge.
func (h *HTTPHandler) Follow(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid follow request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.FollowerID)

	_, err := h.svc.Follow(ctx, req.FollowerID, req.FolloweeID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Follow failed",
			logger.F("error", err.Error()),
			logger.F("followerID", req.FollowerID),
			logger.F("followeeID", req.FolloweeID))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true}
	}

	httpx.WriteObject(c, res, err)
}

// Unfollow removes a follow edge.
func (h *HTTPHandler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid unfollow request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.FollowerID)

	removed, err := h.svc.Unfollow(ctx, req.FollowerID, req.FolloweeID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Unfollow failed",
			logger.F("error", err.Error()),
			logger.F("followerID", req.FollowerID),
			logger.F("followeeID", req.FolloweeID))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true, Removed: removed}
	}

	httpx.WriteObject(c, res, err)
}

// GetFollowers returns the users following the given user.
func (h *HTTPHandler) GetFollowers(c *gin.Context) {
	h.userList(c, h.svc.Followers)
}

// GetFollowing returns the users the given user follows.
func (h *HTTPHandler) GetFollowing(c *gin.Context) {
	h.userList(c, h.svc.Following)
}

// IsFollowing checks whether one user follows another.
func (h *HTTPHandler) IsFollowing(c *gin.Context) {
	h.pairCheck(c, h.svc.IsFollowing)
}
