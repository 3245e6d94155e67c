package dao

import (
	"context"

	"social-graph/apps/relationship-service/model"
)

// RelationshipDAO is the data access interface for the relationship store.
type RelationshipDAO interface {
	// Friendship requests
	CreateFriendshipRequest(ctx context.Context, req *model.FriendshipRequest) error
	GetFriendshipRequest(ctx context.Context, id int64) (*model.FriendshipRequest, error)
	SaveFriendshipRequest(ctx context.Context, req *model.FriendshipRequest) error
	DeleteFriendshipRequest(ctx context.Context, id int64) error
	DeleteFriendshipRequestBetween(ctx context.Context, fromID, toID int64) error
	RequestExistsBetween(ctx context.Context, userA, userB int64) (bool, error)
	ListReceivedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	ListSentRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	ListUnreadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	CountUnreadRequests(ctx context.Context, userID int64) (int64, error)
	ListReadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	ListRejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	ListUnrejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error)
	CountUnrejectedRequests(ctx context.Context, userID int64) (int64, error)

	// Friend edges
	CreateFriend(ctx context.Context, friend *model.Friend) error
	DeleteFriendPair(ctx context.Context, userA, userB int64) (int64, error)
	FriendExists(ctx context.Context, userID, friendID int64) (bool, error)
	ListFriendIDs(ctx context.Context, userID int64) ([]int64, error)

	// Follow edges
	CreateFollow(ctx context.Context, follow *model.Follow) error
	DeleteFollow(ctx context.Context, followerID, followeeID int64) (int64, error)
	FollowExists(ctx context.Context, followerID, followeeID int64) (bool, error)
	ListFollowerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error)

	// Block edges
	CreateBlock(ctx context.Context, block *model.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedID int64) (int64, error)
	BlockExists(ctx context.Context, blockerID, blockedID int64) (bool, error)
	ListBlockerIDs(ctx context.Context, userID int64) ([]int64, error)
	ListBlockingIDs(ctx context.Context, userID int64) ([]int64, error)

	// Users (owned by the identity service, read only)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUsersByIDs(ctx context.Context, ids []int64) ([]*model.User, error)
}
