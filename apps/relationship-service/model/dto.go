package model

// AddFriendRequest is the payload for creating a friendship request.
type AddFriendRequest struct {
	FromUserID int64  `json:"from_user_id" binding:"required"`
	ToUserID   int64  `json:"to_user_id" binding:"required"`
	Message    string `json:"message"`
}

// RequestActionRequest addresses one friendship request by id.
type RequestActionRequest struct {
	RequestID int64 `json:"request_id" binding:"required"`
}

// RemoveFriendRequest is the payload for removing a friendship.
type RemoveFriendRequest struct {
	UserID   int64 `json:"user_id" binding:"required"`
	FriendID int64 `json:"friend_id" binding:"required"`
}

// FollowRequest is the payload for follow create/remove.
type FollowRequest struct {
	FollowerID int64 `json:"follower_id" binding:"required"`
	FolloweeID int64 `json:"followee_id" binding:"required"`
}

// BlockRequest is the payload for block create/remove.
type BlockRequest struct {
	BlockerID int64 `json:"blocker_id" binding:"required"`
	BlockedID int64 `json:"blocked_id" binding:"required"`
}

// UserIDRequest addresses the relationships of one user.
type UserIDRequest struct {
	UserID int64 `json:"user_id" binding:"required"`
}

// PairRequest addresses a pair of users for predicate checks.
type PairRequest struct {
	UserID  int64 `json:"user_id" binding:"required"`
	OtherID int64 `json:"other_id" binding:"required"`
}

// OpResponse is the generic mutation response.
type OpResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Removed bool   `json:"removed,omitempty"`
}

// RequestResponse returns a single friendship request.
type RequestResponse struct {
	Success bool               `json:"success"`
	Message string             `json:"message,omitempty"`
	Request *FriendshipRequest `json:"request,omitempty"`
}

// RequestListResponse returns friendship requests.
type RequestListResponse struct {
	Success  bool                 `json:"success"`
	Message  string               `json:"message,omitempty"`
	Requests []*FriendshipRequest `json:"requests"`
}

// UserListResponse returns resolved users.
type UserListResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Users   []*User `json:"users"`
}

// CountResponse returns a counter value.
type CountResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Count   int64  `json:"count"`
}

// ExistsResponse returns an existence predicate result.
type ExistsResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Exists  bool   `json:"exists"`
}
