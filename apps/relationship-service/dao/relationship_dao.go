package dao

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"social-graph/apps/relationship-service/model"
)

// relationshipDAO is the gorm-backed relationship store.
type relationshipDAO struct {
	db *gorm.DB
}

// NewRelationshipDAO creates a relationship DAO over a gorm handle.
func NewRelationshipDAO(db *gorm.DB) RelationshipDAO {
	return &relationshipDAO{db: db}
}

// translateCreateErr maps unique-constraint violations onto the engine
// taxonomy. The store's constraint is what arbitrates concurrent duplicate
// creates: first writer wins, the rest land here.
func translateCreateErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return model.ErrAlreadyExists
	}
	return err
}

// ============ Friendship requests ============

// CreateFriendshipRequest inserts a pending request.
func (d *relationshipDAO) CreateFriendshipRequest(ctx context.Context, req *model.FriendshipRequest) error {
	if err := d.db.WithContext(ctx).Create(req).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

// GetFriendshipRequest looks up a request by id.
func (d *relationshipDAO) GetFriendshipRequest(ctx context.Context, id int64) (*model.FriendshipRequest, error) {
	var req model.FriendshipRequest
	if err := d.db.WithContext(ctx).First(&req, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get friendship request: %v", err)
	}
	return &req, nil
}

// SaveFriendshipRequest persists timestamp transitions on a request.
func (d *relationshipDAO) SaveFriendshipRequest(ctx context.Context, req *model.FriendshipRequest) error {
	if err := d.db.WithContext(ctx).Save(req).Error; err != nil {
		return fmt.Errorf("failed to save friendship request: %v", err)
	}
	return nil
}

// DeleteFriendshipRequest removes a request by id.
func (d *relationshipDAO) DeleteFriendshipRequest(ctx context.Context, id int64) error {
	if err := d.db.WithContext(ctx).Delete(&model.FriendshipRequest{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete friendship request: %v", err)
	}
	return nil
}

// DeleteFriendshipRequestBetween removes the request for an exact ordered pair.
func (d *relationshipDAO) DeleteFriendshipRequestBetween(ctx context.Context, fromID, toID int64) error {
	if err := d.db.WithContext(ctx).
		Where("from_user_id = ? AND to_user_id = ?", fromID, toID).
		Delete(&model.FriendshipRequest{}).Error; err != nil {
		return fmt.Errorf("failed to delete friendship request: %v", err)
	}
	return nil
}

// RequestExistsBetween reports whether any request row exists between the two
// users in either direction. Rejected rows count: they block a fresh request
// until explicitly deleted.
func (d *relationshipDAO) RequestExistsBetween(ctx context.Context, userA, userB int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.FriendshipRequest{}).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check friendship request: %v", err)
	}
	return count > 0, nil
}

// ListReceivedRequests lists requests addressed to a user.
func (d *relationshipDAO) ListReceivedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list received requests: %v", err)
	}
	return reqs, nil
}

// ListSentRequests lists requests sent by a user.
func (d *relationshipDAO) ListSentRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("from_user_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list sent requests: %v", err)
	}
	return reqs, nil
}

// ListUnreadRequests lists received requests not yet viewed.
func (d *relationshipDAO) ListUnreadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("to_user_id = ? AND viewed_at IS NULL", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list unread requests: %v", err)
	}
	return reqs, nil
}

// CountUnreadRequests counts received requests not yet viewed.
func (d *relationshipDAO) CountUnreadRequests(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.FriendshipRequest{}).
		Where("to_user_id = ? AND viewed_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unread requests: %v", err)
	}
	return count, nil
}

// ListReadRequests lists received requests already viewed.
func (d *relationshipDAO) ListReadRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("to_user_id = ? AND viewed_at IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list read requests: %v", err)
	}
	return reqs, nil
}

// ListRejectedRequests lists received requests that were rejected.
func (d *relationshipDAO) ListRejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("to_user_id = ? AND rejected_at IS NOT NULL", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list rejected requests: %v", err)
	}
	return reqs, nil
}

// ListUnrejectedRequests lists received requests not rejected.
func (d *relationshipDAO) ListUnrejectedRequests(ctx context.Context, userID int64) ([]*model.FriendshipRequest, error) {
	var reqs []*model.FriendshipRequest
	if err := d.db.WithContext(ctx).
		Where("to_user_id = ? AND rejected_at IS NULL", userID).
		Order("created_at DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list unrejected requests: %v", err)
	}
	return reqs, nil
}

// CountUnrejectedRequests counts received requests not rejected.
func (d *relationshipDAO) CountUnrejectedRequests(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.FriendshipRequest{}).
		Where("to_user_id = ? AND rejected_at IS NULL", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count unrejected requests: %v", err)
	}
	return count, nil
}

// ============ Friend edges ============

// CreateFriend inserts one direction of a friendship.
func (d *relationshipDAO) CreateFriend(ctx context.Context, friend *model.Friend) error {
	if err := d.db.WithContext(ctx).Create(friend).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

// DeleteFriendPair removes both directional rows for an unordered pair and
// returns how many rows went away.
func (d *relationshipDAO) DeleteFriendPair(ctx context.Context, userA, userB int64) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
			userA, userB, userB, userA).
		Delete(&model.Friend{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete friend pair: %v", res.Error)
	}
	return res.RowsAffected, nil
}

// FriendExists reports whether friendID appears in userID's friend list.
// Friendships are mirrored pairs, so one direction answers for both.
func (d *relationshipDAO) FriendExists(ctx context.Context, userID, friendID int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Friend{}).
		Where("to_user_id = ? AND from_user_id = ?", userID, friendID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check friend: %v", err)
	}
	return count > 0, nil
}

// ListFriendIDs lists the ids of a user's friends.
func (d *relationshipDAO) ListFriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Model(&model.Friend{}).
		Where("to_user_id = ?", userID).
		Order("created_at DESC").
		Pluck("from_user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list friends: %v", err)
	}
	return ids, nil
}

// ============ Follow edges ============

// CreateFollow inserts a follow edge.
func (d *relationshipDAO) CreateFollow(ctx context.Context, follow *model.Follow) error {
	if err := d.db.WithContext(ctx).Create(follow).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

// DeleteFollow removes an exact follow edge and returns how many rows went away.
func (d *relationshipDAO) DeleteFollow(ctx context.Context, followerID, followeeID int64) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Delete(&model.Follow{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete follow: %v", res.Error)
	}
	return res.RowsAffected, nil
}

// FollowExists reports whether follower follows followee.
func (d *relationshipDAO) FollowExists(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ? AND followee_id = ?", followerID, followeeID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check follow: %v", err)
	}
	return count > 0, nil
}

// ListFollowerIDs lists ids of users following userID.
func (d *relationshipDAO) ListFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).
		Where("followee_id = ?", userID).
		Order("created_at DESC").
		Pluck("follower_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list followers: %v", err)
	}
	return ids, nil
}

// ListFollowingIDs lists ids of users userID follows.
func (d *relationshipDAO) ListFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Model(&model.Follow{}).
		Where("follower_id = ?", userID).
		Order("created_at DESC").
		Pluck("followee_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list following: %v", err)
	}
	return ids, nil
}

// ============ Block edges ============

// CreateBlock inserts a block edge.
func (d *relationshipDAO) CreateBlock(ctx context.Context, block *model.Block) error {
	if err := d.db.WithContext(ctx).Create(block).Error; err != nil {
		return translateCreateErr(err)
	}
	return nil
}

// DeleteBlock removes an exact block edge and returns how many rows went away.
func (d *relationshipDAO) DeleteBlock(ctx context.Context, blockerID, blockedID int64) (int64, error) {
	res := d.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&model.Block{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete block: %v", res.Error)
	}
	return res.RowsAffected, nil
}

// BlockExists reports whether blocker blocks blocked. Block rows are
// directional; callers wanting "either way" must ask twice.
func (d *relationshipDAO) BlockExists(ctx context.Context, blockerID, blockedID int64) (bool, error) {
	var count int64
	if err := d.db.WithContext(ctx).Model(&model.Block{}).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check block: %v", err)
	}
	return count > 0, nil
}

// ListBlockerIDs lists ids of users blocking userID.
func (d *relationshipDAO) ListBlockerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Model(&model.Block{}).
		Where("blocked_id = ?", userID).
		Order("created_at DESC").
		Pluck("blocker_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list blockers: %v", err)
	}
	return ids, nil
}

// ListBlockingIDs lists ids of users userID blocks.
func (d *relationshipDAO) ListBlockingIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	if err := d.db.WithContext(ctx).Model(&model.Block{}).
		Where("blocker_id = ?", userID).
		Order("created_at DESC").
		Pluck("blocked_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list blocking: %v", err)
	}
	return ids, nil
}

// ============ Users ============

// GetUserByID resolves a user id.
func (d *relationshipDAO) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := d.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %v", err)
	}
	return &user, nil
}

// GetUsersByIDs resolves a set of user ids, preserving the input order.
func (d *relationshipDAO) GetUsersByIDs(ctx context.Context, ids []int64) ([]*model.User, error) {
	if len(ids) == 0 {
		return []*model.User{}, nil
	}

	var users []*model.User
	if err := d.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}

	byID := make(map[int64]*model.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	ordered := make([]*model.User, 0, len(users))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			ordered = append(ordered, u)
		}
	}
	return ordered, nil
}
