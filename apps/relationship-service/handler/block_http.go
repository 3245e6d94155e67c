package handler

import (
	"github.com/gin-gonic/gin"

	"social-graph/apps/relationship-service/model"
	tracecontext "social-graph/pkg/context"
	"social-graph/pkg/httpx"
	"social-graph/pkg/logger"
)

// Block creates a block edge.
func (h *HTTPHandler) Block(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid block request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.BlockerID)

	_, err := h.svc.Block(ctx, req.BlockerID, req.BlockedID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Block failed",
			logger.F("error", err.Error()),
			logger.F("blockerID", req.BlockerID),
			logger.F("blockedID", req.BlockedID))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true}
	}

	httpx.WriteObject(c, res, err)
}

// Unblock removes a block edge.
func (h *HTTPHandler) Unblock(c *gin.Context) {
	ctx := c.Request.Context()

	var req model.BlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error(ctx, "Invalid unblock request", logger.F("error", err.Error()))
		httpx.WriteObject(c, &model.OpResponse{Success: false, Message: "Invalid request format"}, err)
		return
	}

	ctx = tracecontext.WithUserID(ctx, req.BlockerID)

	removed, err := h.svc.Unblock(ctx, req.BlockerID, req.BlockedID)

	var res *model.OpResponse
	if err != nil {
		h.logger.Error(ctx, "Unblock failed",
			logger.F("error", err.Error()),
			logger.F("blockerID", req.BlockerID),
			logger.F("blockedID", req.BlockedID))
		res = &model.OpResponse{Success: false, Message: err.Error()}
	} else {
		res = &model.OpResponse{Success: true, Removed: removed}
	}

	httpx.WriteObject(c, res, err)
}

// GetBlockers returns the users blocking the given user.
func (h *HTTPHandler) GetBlockers(c *gin.Context) {
	h.userList(c, h.svc.Blockers)
}

// GetBlocking returns the users the given user blocks.
func (h *HTTPHandler) GetBlocking(c *gin.Context) {
	h.userList(c, h.svc.Blocking)
}

// IsBlocking checks one direction of a block.
func (h *HTTPHandler) IsBlocking(c *gin.Context) {
	h.pairCheck(c, h.svc.IsBlocking)
}

// IsBlocked checks a block in either direction.
func (h *HTTPHandler) IsBlocked(c *gin.Context) {
	h.pairCheck(c, h.svc.IsBlocked)
}
