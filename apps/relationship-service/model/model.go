package model

import (
	"time"
)

// User is owned by the identity service. Rows are referenced, never mutated,
// by the relationship engine.
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(64);uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (User) TableName() string {
	return "users"
}

// FriendshipRequest is a pending, rejected or viewed friendship request.
// Accepted and canceled requests are deleted; rejected ones persist with
// RejectedAt set and still block a fresh request between the pair.
type FriendshipRequest struct {
	ID         int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	FromUserID int64      `json:"from_user_id" gorm:"not null;uniqueIndex:idx_request_pair;index"`
	ToUserID   int64      `json:"to_user_id" gorm:"not null;uniqueIndex:idx_request_pair;index"`
	Message    string     `json:"message" gorm:"type:text"`
	CreatedAt  time.Time  `json:"created_at" gorm:"autoCreateTime"`
	RejectedAt *time.Time `json:"rejected_at,omitempty"`
	ViewedAt   *time.Time `json:"viewed_at,omitempty"`
}

// TableName .
func (FriendshipRequest) TableName() string {
	return "friendship_requests"
}

// Rejected reports whether the request has been rejected.
func (r *FriendshipRequest) Rejected() bool {
	return r.RejectedAt != nil
}

// Viewed reports whether the request has been viewed.
func (r *FriendshipRequest) Viewed() bool {
	return r.ViewedAt != nil
}

// Friend is one direction of a mutual friendship. A friendship is always two
// mirrored rows, created and deleted as a pair. FromUserID appears in the
// friend list of ToUserID.
type Friend struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FromUserID int64     `json:"from_user_id" gorm:"not null;uniqueIndex:idx_friend_pair"`
	ToUserID   int64     `json:"to_user_id" gorm:"not null;uniqueIndex:idx_friend_pair;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (Friend) TableName() string {
	return "friends"
}

// Follow is a one-directional follow edge.
type Follow struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	FollowerID int64     `json:"follower_id" gorm:"not null;uniqueIndex:idx_follow_pair"`
	FolloweeID int64     `json:"followee_id" gorm:"not null;uniqueIndex:idx_follow_pair;index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (Follow) TableName() string {
	return "follows"
}

// Block is a one-directional block edge.
type Block struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	BlockerID int64     `json:"blocker_id" gorm:"not null;uniqueIndex:idx_block_pair"`
	BlockedID int64     `json:"blocked_id" gorm:"not null;uniqueIndex:idx_block_pair;index"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName .
func (Block) TableName() string {
	return "blocks"
}
