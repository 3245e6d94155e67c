package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"social-graph/apps/relationship-service/cache"
	"social-graph/apps/relationship-service/dao"
	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/apps/relationship-service/service"
	"social-graph/pkg/logger"
)

type testEnv struct {
	svc      *service.Service
	store    *cache.MemoryStore
	recorder *notify.Recorder
	db       *gorm.DB
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

	store := cache.NewMemoryStore()
	recorder := notify.NewRecorder()
	svc := service.NewService(
		dao.NewRelationshipDAO(db),
		cache.NewRelationshipCache(store),
		recorder,
		logger.GetLogger(),
	)
	return &testEnv{svc: svc, store: store, recorder: recorder, db: db}
}

func (e *testEnv) seedUsers(t *testing.T, usernames ...string) []int64 {
	t.Helper()
	ids := make([]int64, 0, len(usernames))
	for _, name := range usernames {
		u := &model.User{Username: name}
		require.NoError(t, e.db.Create(u).Error)
		ids = append(ids, u.ID)
	}
	return ids
}

func TestAddFriend_SelfRelation(t *testing.T) {
	env := setup(t)

	_, err := env.svc.AddFriend(context.Background(), 1, 1, "hi me")
	assert.ErrorIs(t, err, model.ErrSelfRelation)
	assert.Empty(t, env.recorder.Events())
}

func TestAddFriend_DuplicateEitherDirection(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.AddFriend(ctx, 1, 2, "hello")
	require.NoError(t, err)

	_, err = env.svc.AddFriend(ctx, 1, 2, "hello again")
	assert.ErrorIs(t, err, model.ErrAlreadyRequested)

	// A crossing request from the other side is refused as well.
	_, err = env.svc.AddFriend(ctx, 2, 1, "hello back")
	assert.ErrorIs(t, err, model.ErrAlreadyRequested)

	assert.Equal(t, []string{model.EventRequestCreated}, env.recorder.Types())
}

func TestAcceptRequest_CreatesMutualFriendship(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	ids := env.seedUsers(t, "bob", "steve")

	req, err := env.svc.AddFriend(ctx, ids[0], ids[1], "be my friend")
	require.NoError(t, err)

	require.NoError(t, env.svc.AcceptRequest(ctx, req.ID))

	for _, pair := range [][2]int64{{ids[0], ids[1]}, {ids[1], ids[0]}} {
		friends, err := env.svc.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, friends, "friendship must hold in both directions")
	}

	bobFriends, err := env.svc.Friends(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, bobFriends, 1)
	assert.Equal(t, "steve", bobFriends[0].Username)

	// The consumed request leaves no trace in any view.
	received, err := env.svc.Requests(ctx, ids[1])
	require.NoError(t, err)
	assert.Empty(t, received)
	sent, err := env.svc.SentRequests(ctx, ids[0])
	require.NoError(t, err)
	assert.Empty(t, sent)

	// Further requests between friends are refused.
	_, err = env.svc.AddFriend(ctx, ids[0], ids[1], "again")
	assert.ErrorIs(t, err, model.ErrAlreadyFriends)

	assert.Equal(t, []string{model.EventRequestCreated, model.EventRequestAccepted}, env.recorder.Types())
}

func TestAcceptRequest_ConsumesCrossingRequest(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.svc.AddFriend(ctx, 1, 2, "")
	require.NoError(t, err)
	// Simulate a crossing request that raced past the duplicate check.
	require.NoError(t, env.db.Create(&model.FriendshipRequest{FromUserID: 2, ToUserID: 1}).Error)

	require.NoError(t, env.svc.AcceptRequest(ctx, req.ID))

	var count int64
	require.NoError(t, env.db.Model(&model.FriendshipRequest{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "acceptance consumes both directions")
}

func TestRejectRequest_RowBlocksUntilCanceled(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	ids := env.seedUsers(t, "susan", "amy")
	susan, amy := ids[0], ids[1]

	req, err := env.svc.AddFriend(ctx, susan, amy, "hi")
	require.NoError(t, err)

	require.NoError(t, env.svc.RejectRequest(ctx, req.ID))

	// The rejected row persists and keeps blocking a fresh request.
	_, err = env.svc.AddFriend(ctx, susan, amy, "hi again")
	assert.ErrorIs(t, err, model.ErrAlreadyRequested)

	rejected, err := env.svc.RejectedRequests(ctx, amy)
	require.NoError(t, err)
	require.Len(t, rejected, 1)
	assert.True(t, rejected[0].Rejected())

	unrejectedCount, err := env.svc.UnrejectedRequestCount(ctx, amy)
	require.NoError(t, err)
	assert.Equal(t, int64(0), unrejectedCount)

	// Rejecting again keeps the original timestamp.
	firstRejection := rejected[0].RejectedAt
	require.NoError(t, env.svc.RejectRequest(ctx, req.ID))
	again, err := env.svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, firstRejection.Unix(), again.RejectedAt.Unix())

	// Canceling deletes the row and reopens the pair.
	require.NoError(t, env.svc.CancelRequest(ctx, req.ID))
	_, err = env.svc.AddFriend(ctx, susan, amy, "third time")
	require.NoError(t, err)
}

func TestMarkViewed_Idempotent(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.svc.AddFriend(ctx, 1, 2, "")
	require.NoError(t, err)

	count, err := env.svc.UnreadRequestCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, env.svc.MarkViewed(ctx, req.ID))

	viewed, err := env.svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	require.True(t, viewed.Viewed())
	firstView := viewed.ViewedAt

	require.NoError(t, env.svc.MarkViewed(ctx, req.ID))
	again, err := env.svc.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, firstView.Unix(), again.ViewedAt.Unix())

	count, err = env.svc.UnreadRequestCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	read, err := env.svc.ReadRequests(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, read, 1)
}

func TestRemoveFriend(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.svc.AddFriend(ctx, 1, 2, "")
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptRequest(ctx, req.ID))

	removed, err := env.svc.RemoveFriend(ctx, 2, 1)
	require.NoError(t, err)
	assert.True(t, removed)

	for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
		friends, err := env.svc.AreFriends(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, friends)
	}

	// Removing again is a polite no-op, not an error.
	removed, err = env.svc.RemoveFriend(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestRequestCaches_BustOnWrite(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	// Populate the recipient's request view, then verify a new request
	// invalidates every key in the requests group.
	_, err := env.svc.Requests(ctx, 2)
	require.NoError(t, err)
	_, err = env.svc.UnreadRequestCount(ctx, 2)
	require.NoError(t, err)
	require.True(t, env.store.Has(model.CacheKey(model.CacheRequests, 2)))
	require.True(t, env.store.Has(model.CacheKey(model.CacheUnreadRequestCount, 2)))

	_, err = env.svc.AddFriend(ctx, 1, 2, "")
	require.NoError(t, err)
	assert.False(t, env.store.Has(model.CacheKey(model.CacheRequests, 2)))
	assert.False(t, env.store.Has(model.CacheKey(model.CacheUnreadRequestCount, 2)))

	count, err := env.svc.UnreadRequestCount(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestFriendsCache_BustOnAccept(t *testing.T) {
	env := setup(t)
	ctx := context.Background()
	ids := env.seedUsers(t, "ann", "ben")

	_, err := env.svc.Friends(ctx, ids[0])
	require.NoError(t, err)
	require.True(t, env.store.Has(model.CacheKey(model.CacheFriends, ids[0])))

	req, err := env.svc.AddFriend(ctx, ids[1], ids[0], "")
	require.NoError(t, err)
	require.NoError(t, env.svc.AcceptRequest(ctx, req.ID))

	assert.False(t, env.store.Has(model.CacheKey(model.CacheFriends, ids[0])))

	friends, err := env.svc.Friends(ctx, ids[0])
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, "ben", friends[0].Username)
}

func TestAreFriends_StaleCacheNeverAnswersNo(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	// Populate user 1's friend list as empty, then let another writer add the
	// friendship behind the cache's back (its bust is lost).
	_, err := env.svc.Friends(ctx, 1)
	require.NoError(t, err)
	require.True(t, env.store.Has(model.CacheKey(model.CacheFriends, 1)))

	require.NoError(t, env.db.Create(&model.Friend{FromUserID: 3, ToUserID: 1}).Error)
	require.NoError(t, env.db.Create(&model.Friend{FromUserID: 1, ToUserID: 3}).Error)

	friends, err := env.svc.AreFriends(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, friends, "a cached list missing the id must fall through to the store")
}

func TestAreFriends_EitherEndpointCacheAnswersYes(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	require.NoError(t, env.db.Create(&model.Friend{FromUserID: 3, ToUserID: 1}).Error)
	require.NoError(t, env.db.Create(&model.Friend{FromUserID: 1, ToUserID: 3}).Error)

	// Cache user 3's side, then drop the rows so only the cache can say yes.
	_, err := env.svc.Friends(ctx, 3)
	require.NoError(t, err)
	require.NoError(t, env.db.Where("1 = 1").Delete(&model.Friend{}).Error)

	friends, err := env.svc.AreFriends(ctx, 1, 3)
	require.NoError(t, err)
	assert.True(t, friends, "the other endpoint's cached list is a valid positive")

	friends, err = env.svc.AreFriends(ctx, 3, 1)
	require.NoError(t, err)
	assert.True(t, friends)
}

func TestIsFollowing_StaleFolloweeCacheFallsThrough(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.Followers(ctx, 2)
	require.NoError(t, err)
	require.True(t, env.store.Has(model.CacheKey(model.CacheFollowers, 2)))

	require.NoError(t, env.db.Create(&model.Follow{FollowerID: 1, FolloweeID: 2}).Error)

	following, err := env.svc.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	// The followee's cached follower list can answer yes on its own.
	require.NoError(t, env.store.Del(ctx, model.CacheKey(model.CacheFollowers, 2)))
	_, err = env.svc.Followers(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, env.db.Where("1 = 1").Delete(&model.Follow{}).Error)

	following, err = env.svc.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestIsBlocking_StaleBlockedCacheFallsThrough(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.Blocking(ctx, 1)
	require.NoError(t, err)
	require.True(t, env.store.Has(model.CacheKey(model.CacheBlocking, 1)))

	require.NoError(t, env.db.Create(&model.Block{BlockerID: 1, BlockedID: 2}).Error)

	blocking, err := env.svc.IsBlocking(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, blocking)

	// The blocked user's cached blocker list can answer yes on its own.
	_, err = env.svc.Blockers(ctx, 2)
	require.NoError(t, err)
	require.NoError(t, env.db.Where("1 = 1").Delete(&model.Block{}).Error)

	blocking, err = env.svc.IsBlocking(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, blocking)
}

func TestFollowLifecycle(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.Follow(ctx, 1, 1)
	assert.ErrorIs(t, err, model.ErrSelfRelation)

	_, err = env.svc.Follow(ctx, 1, 2)
	require.NoError(t, err)

	_, err = env.svc.Follow(ctx, 1, 2)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	following, err := env.svc.IsFollowing(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, following)

	// Follow is one-directional.
	following, err = env.svc.IsFollowing(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, following)

	removed, err := env.svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = env.svc.Unfollow(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, removed)

	assert.Equal(t, []string{
		model.EventFollowerCreated,
		model.EventFolloweeCreated,
		model.EventFollowingCreated,
		model.EventFollowerRemoved,
		model.EventFolloweeRemoved,
		model.EventFollowingRemoved,
	}, env.recorder.Types())
}

func TestBlockLifecycle(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	_, err := env.svc.Block(ctx, 1, 1)
	assert.ErrorIs(t, err, model.ErrSelfRelation)

	_, err = env.svc.Block(ctx, 1, 2)
	require.NoError(t, err)

	_, err = env.svc.Block(ctx, 1, 2)
	assert.ErrorIs(t, err, model.ErrAlreadyExists)

	blocking, err := env.svc.IsBlocking(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, blocking)

	blocking, err = env.svc.IsBlocking(ctx, 2, 1)
	require.NoError(t, err)
	assert.False(t, blocking)

	// IsBlocked answers the same regardless of which side asks.
	for _, pair := range [][2]int64{{1, 2}, {2, 1}} {
		blocked, err := env.svc.IsBlocked(ctx, pair[0], pair[1])
		require.NoError(t, err)
		assert.True(t, blocked)
	}

	removed, err := env.svc.Unblock(ctx, 1, 2)
	require.NoError(t, err)
	assert.True(t, removed)

	blocked, err := env.svc.IsBlocked(ctx, 1, 2)
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestRequestEventsCarryRequestID(t *testing.T) {
	env := setup(t)
	ctx := context.Background()

	req, err := env.svc.AddFriend(ctx, 1, 2, "")
	require.NoError(t, err)

	events := env.recorder.Events()
	require.Len(t, events, 1)
	assert.Equal(t, model.EventRequestCreated, events[0].Type)
	assert.Equal(t, req.ID, events[0].RequestID)
	assert.Equal(t, int64(1), events[0].ActorID)
	assert.Equal(t, int64(2), events[0].TargetID)
	assert.NotEmpty(t, events[0].ID)
	assert.False(t, events[0].OccurredAt.IsZero())
}
