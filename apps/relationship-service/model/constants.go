package model

import "fmt"

// Cache categories. Each maps to one key per user; the request-derived
// categories are all views over the friendship_requests table and are busted
// together (see BustGroups).
const (
	CacheFriends                = "friends"
	CacheFollowers              = "followers"
	CacheFollowing              = "following"
	CacheBlocks                 = "blocks"
	CacheBlocked                = "blocked"
	CacheBlocking               = "blocking"
	CacheRequests               = "requests"
	CacheSentRequests           = "sent_requests"
	CacheUnreadRequests         = "unread_requests"
	CacheUnreadRequestCount     = "unread_request_count"
	CacheReadRequests           = "read_requests"
	CacheRejectedRequests       = "rejected_requests"
	CacheUnrejectedRequests     = "unrejected_requests"
	CacheUnrejectedRequestCount = "unrejected_request_count"
)

// cacheKeyFormats maps a category to its per-user redis key format.
var cacheKeyFormats = map[string]string{
	CacheFriends:                "rel:f:%d",
	CacheFollowers:              "rel:fo:%d",
	CacheFollowing:              "rel:fl:%d",
	CacheBlocks:                 "rel:b:%d",
	CacheBlocked:                "rel:bo:%d",
	CacheBlocking:               "rel:bd:%d",
	CacheRequests:               "rel:fr:%d",
	CacheSentRequests:           "rel:sfr:%d",
	CacheUnreadRequests:         "rel:fru:%d",
	CacheUnreadRequestCount:     "rel:fruc:%d",
	CacheReadRequests:           "rel:frr:%d",
	CacheRejectedRequests:       "rel:frj:%d",
	CacheUnrejectedRequests:     "rel:frur:%d",
	CacheUnrejectedRequestCount: "rel:frurc:%d",
}

// BustGroups maps a busted category to every key that must be invalidated with
// it. The requests group covers all views derived from the same rows.
var BustGroups = map[string][]string{
	CacheFriends:      {CacheFriends},
	CacheFollowers:    {CacheFollowers},
	CacheFollowing:    {CacheFollowing},
	CacheBlocks:       {CacheBlocks},
	CacheBlocked:      {CacheBlocked},
	CacheBlocking:     {CacheBlocking},
	CacheSentRequests: {CacheSentRequests},
	CacheRequests: {
		CacheRequests,
		CacheUnreadRequests,
		CacheUnreadRequestCount,
		CacheReadRequests,
		CacheRejectedRequests,
		CacheUnrejectedRequests,
		CacheUnrejectedRequestCount,
	},
}

// CacheKey builds the cache key for a category and user.
func CacheKey(category string, userID int64) string {
	return fmt.Sprintf(cacheKeyFormats[category], userID)
}

// BustKeys returns every key invalidated when busting a category for a user.
func BustKeys(category string, userID int64) []string {
	group, ok := BustGroups[category]
	if !ok {
		group = []string{category}
	}
	keys := make([]string, 0, len(group))
	for _, c := range group {
		keys = append(keys, CacheKey(c, userID))
	}
	return keys
}

// Notification event types emitted on state transitions.
const (
	EventRequestCreated   = "request_created"
	EventRequestRejected  = "request_rejected"
	EventRequestCanceled  = "request_canceled"
	EventRequestViewed    = "request_viewed"
	EventRequestAccepted  = "request_accepted"
	EventFriendshipRemove = "friendship_removed"
	EventFollowerCreated  = "follower_created"
	EventFollowerRemoved  = "follower_removed"
	EventFolloweeCreated  = "followee_created"
	EventFolloweeRemoved  = "followee_removed"
	EventFollowingCreated = "following_created"
	EventFollowingRemoved = "following_removed"
	EventBlockCreated     = "block_created"
	EventBlockRemoved     = "block_removed"
)

// DefaultEventTopic is the Kafka topic relationship events are published to.
const DefaultEventTopic = "relationship-events"
