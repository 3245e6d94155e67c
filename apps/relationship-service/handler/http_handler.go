package handler

import (
	"github.com/gin-gonic/gin"

	"social-graph/apps/relationship-service/service"
	"social-graph/pkg/logger"
)

// HTTPHandler exposes the relationship engine over HTTP.
type HTTPHandler struct {
	svc    *service.Service
	logger logger.Logger
}

// NewHTTPHandler creates an HTTP handler.
func NewHTTPHandler(svc *service.Service, logger logger.Logger) *HTTPHandler {
	return &HTTPHandler{
		svc:    svc,
		logger: logger,
	}
}

// RegisterRoutes registers all relationship routes.
func (h *HTTPHandler) RegisterRoutes(engine *gin.Engine) {
	friendGroup := engine.Group("/api/v1/friend")
	{
		friendGroup.POST("/add_request", h.AddFriend)
		friendGroup.POST("/accept_request", h.AcceptRequest)
		friendGroup.POST("/reject_request", h.RejectRequest)
		friendGroup.POST("/cancel_request", h.CancelRequest)
		friendGroup.POST("/mark_viewed", h.MarkViewed)
		friendGroup.POST("/remove", h.RemoveFriend)
		friendGroup.POST("/list", h.GetFriends)
		friendGroup.POST("/check", h.AreFriends)
	}

	requestGroup := engine.Group("/api/v1/requests")
	{
		requestGroup.POST("/received", h.GetRequests)
		requestGroup.POST("/sent", h.GetSentRequests)
		requestGroup.POST("/unread", h.GetUnreadRequests)
		requestGroup.POST("/unread_count", h.GetUnreadRequestCount)
		requestGroup.POST("/read", h.GetReadRequests)
		requestGroup.POST("/rejected", h.GetRejectedRequests)
		requestGroup.POST("/unrejected", h.GetUnrejectedRequests)
		requestGroup.POST("/unrejected_count", h.GetUnrejectedRequestCount)
	}

	followGroup := engine.Group("/api/v1/follow")
	{
		followGroup.POST("/create", h.Follow)
		followGroup.POST("/remove", h.Unfollow)
		followGroup.POST("/followers", h.GetFollowers)
		followGroup.POST("/following", h.GetFollowing)
		followGroup.POST("/check", h.IsFollowing)
	}

	blockGroup := engine.Group("/api/v1/block")
	{
		blockGroup.POST("/create", h.Block)
		blockGroup.POST("/remove", h.Unblock)
		blockGroup.POST("/blockers", h.GetBlockers)
		blockGroup.POST("/blocking", h.GetBlocking)
		blockGroup.POST("/check", h.IsBlocking)
		blockGroup.POST("/is_blocked", h.IsBlocked)
	}
}
