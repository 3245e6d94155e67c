package dao_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"social-graph/apps/relationship-service/dao"
	"social-graph/apps/relationship-service/model"
)

// setupDAO creates an in-memory database and a DAO over it. Each test gets
// its own named memory database so parallel tests never share state.
func setupDAO(t *testing.T) (dao.RelationshipDAO, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.FriendshipRequest{},
		&model.Friend{},
		&model.Follow{},
		&model.Block{},
	))
	return dao.NewRelationshipDAO(db), db
}

func seedUsers(t *testing.T, db *gorm.DB, usernames ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(usernames))
	for _, name := range usernames {
		u := &model.User{Username: name}
		require.NoError(t, db.Create(u).Error)
		ids = append(ids, u.ID)
	}
	return ids
}

func TestCreateFriendshipRequest_DuplicatePair(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 1, ToUserID: 2}))

	err := d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 1, ToUserID: 2})
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	// The reverse direction is a distinct row at the store level.
	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 2, ToUserID: 1}))
}

func TestRequestExistsBetween_EitherDirection(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 1, ToUserID: 2}))

	for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
		exists, err := d.RequestExistsBetween(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, exists)
	}

	exists, err := d.RequestExistsBetween(ctx, 1, 3)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGetFriendshipRequest_NotFound(t *testing.T) {
	d, _ := setupDAO(t)

	_, err := d.GetFriendshipRequest(context.Background(), 404)
	assert.ErrorIs(t, err, model.ErrRequestNotFound)
}

func TestRequestViews(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()
	now := time.Now()

	// Three requests addressed to user 9: one fresh, one viewed, one rejected.
	fresh := &model.FriendshipRequest{FromUserID: 1, ToUserID: 9}
	viewed := &model.FriendshipRequest{FromUserID: 2, ToUserID: 9, ViewedAt: &now}
	rejected := &model.FriendshipRequest{FromUserID: 3, ToUserID: 9, RejectedAt: &now}
	for _, r := range []*model.FriendshipRequest{fresh, viewed, rejected} {
		require.NoError(t, d.CreateFriendshipRequest(ctx, r))
	}
	// Noise addressed to someone else.
	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 9, ToUserID: 1}))

	received, err := d.ListReceivedRequests(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, received, 3)

	sent, err := d.ListSentRequests(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, sent, 1)

	unread, err := d.ListUnreadRequests(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, unread, 2)

	unreadCount, err := d.CountUnreadRequests(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unreadCount)

	read, err := d.ListReadRequests(ctx, 9)
	require.NoError(t, err)
	require.Len(t, read, 1)
	assert.Equal(t, viewed.ID, read[0].ID)

	rejectedList, err := d.ListRejectedRequests(ctx, 9)
	require.NoError(t, err)
	require.Len(t, rejectedList, 1)
	assert.Equal(t, rejected.ID, rejectedList[0].ID)

	unrejected, err := d.ListUnrejectedRequests(ctx, 9)
	require.NoError(t, err)
	assert.Len(t, unrejected, 2)

	unrejectedCount, err := d.CountUnrejectedRequests(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unrejectedCount)
}

func TestDeleteFriendshipRequestBetween(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 1, ToUserID: 2}))
	require.NoError(t, d.CreateFriendshipRequest(ctx, &model.FriendshipRequest{FromUserID: 2, ToUserID: 1}))

	// Exact direction only.
	require.NoError(t, d.DeleteFriendshipRequestBetween(ctx, 1, 2))

	exists, err := d.RequestExistsBetween(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists, "reverse request must survive")

	received, err := d.ListReceivedRequests(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, received)
}

func TestDeleteFriendPair(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFriend(ctx, &model.Friend{FromUserID: 1, ToUserID: 2}))
	require.NoError(t, d.CreateFriend(ctx, &model.Friend{FromUserID: 2, ToUserID: 1}))

	// Argument order must not matter.
	removed, err := d.DeleteFriendPair(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = d.DeleteFriendPair(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestFriendExistsAndList(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFriend(ctx, &model.Friend{FromUserID: 2, ToUserID: 1}))

	exists, err := d.FriendExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.FriendExists(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, exists, "missing mirror row is visible at the DAO level")

	ids, err := d.ListFriendIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, ids)
}

func TestFollowEdges(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateFollow(ctx, &model.Follow{FollowerID: 1, FolloweeID: 2}))
	assert.ErrorIs(t, d.CreateFollow(ctx, &model.Follow{FollowerID: 1, FolloweeID: 2}), model.ErrAlreadyExists)

	exists, err := d.FollowExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.FollowExists(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, exists)

	followers, err := d.ListFollowerIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, followers)

	following, err := d.ListFollowingIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, following)

	removed, err := d.DeleteFollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	removed, err = d.DeleteFollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}

func TestBlockEdges(t *testing.T) {
	d, _ := setupDAO(t)
	ctx := context.Background()

	require.NoError(t, d.CreateBlock(ctx, &model.Block{BlockerID: 1, BlockedID: 2}))
	assert.ErrorIs(t, d.CreateBlock(ctx, &model.Block{BlockerID: 1, BlockedID: 2}), model.ErrAlreadyExists)

	exists, err := d.BlockExists(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = d.BlockExists(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, exists, "block rows are directional")

	blockers, err := d.ListBlockerIDs(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, blockers)

	blocking, err := d.ListBlockingIDs(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, blocking)

	removed, err := d.DeleteBlock(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}

func TestGetUsers(t *testing.T) {
	d, db := setupDAO(t)
	ctx := context.Background()

	ids := seedUsers(t, db, "alice", "bob", "carol")

	u, err := d.GetUserByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "bob", u.Username)

	_, err = d.GetUserByID(ctx, 404)
	assert.ErrorIs(t, err, model.ErrUserNotFound)

	// Result order follows the requested order, unknown ids are skipped.
	users, err := d.GetUsersByIDs(ctx, []int64{ids[2], 404, ids[0]})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "carol", users[0].Username)
	assert.Equal(t, "alice", users[1].Username)

	users, err = d.GetUsersByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}
