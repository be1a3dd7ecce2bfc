package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/testutil"
)

func TestSubscriptionRepository_Latest_None(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)

	sub, err := repo.Latest(42)
	require.NoError(t, err)
	assert.Nil(t, sub)
}

func TestSubscriptionRepository_Latest_MostRecentActivation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)

	testutil.TestSubscription(t, db, user.ID,
		testutil.WithActivatedAt(time.Now().Add(-48*time.Hour)))
	latest := testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanStarter, 50, 50),
		testutil.WithActivatedAt(time.Now().Add(-time.Hour)))

	sub, err := repo.Latest(user.ID)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, latest.ID, sub.ID)
	assert.Equal(t, model.PlanStarter, sub.Plan)
}

func TestSubscriptionRepository_Latest_TieBrokenByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)

	at := time.Now().Truncate(time.Second)
	testutil.TestSubscription(t, db, user.ID, testutil.WithActivatedAt(at))
	second := testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanPro, 200, 200),
		testutil.WithActivatedAt(at))

	sub, err := repo.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, sub.ID)
}

func TestSubscriptionRepository_DecrementGenerations(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanFree, 1, 10))

	ok, err := repo.DecrementGenerations(sub.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// 已到 0，再扣返回 false 且值不变负
	ok, err = repo.DecrementGenerations(sub.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	var stored model.Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, 0, stored.GenerationsLeft)
}

func TestSubscriptionRepository_MarkExpired(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	require.NoError(t, repo.MarkExpired(sub.ID, user.ID))

	var stored model.Subscription
	require.NoError(t, db.First(&stored, sub.ID).Error)
	assert.Equal(t, model.SubscriptionExpired, stored.Status)
}

func TestSubscriptionRepository_ExpireOverdue(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)

	overdue := testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanStarter, 10, 50),
		testutil.WithExpiresAt(time.Now().Add(-time.Hour)))
	future := testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanPro, 200, 200),
		testutil.WithExpiresAt(time.Now().Add(24*time.Hour)))
	// free 无过期时间，不应被扫到
	perpetual := testutil.TestSubscription(t, db, user.ID)

	count, err := repo.ExpireOverdue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	var stored model.Subscription
	require.NoError(t, db.First(&stored, overdue.ID).Error)
	assert.Equal(t, model.SubscriptionExpired, stored.Status)

	var storedFuture model.Subscription
	require.NoError(t, db.First(&storedFuture, future.ID).Error)
	assert.Equal(t, model.SubscriptionActive, storedFuture.Status)

	var storedPerpetual model.Subscription
	require.NoError(t, db.First(&storedPerpetual, perpetual.ID).Error)
	assert.Equal(t, model.SubscriptionActive, storedPerpetual.Status)

	// 再跑一次没有新增
	count, err = repo.ExpireOverdue(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestSubscriptionRepository_ListByUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	repo := NewSubscriptionRepository(db, nil)
	user := testutil.TestUser(t, db)
	other := testutil.TestUser(t, db)

	testutil.TestSubscription(t, db, user.ID,
		testutil.WithActivatedAt(time.Now().Add(-2*time.Hour)))
	testutil.TestSubscription(t, db, user.ID,
		testutil.WithPlan(model.PlanStarter, 50, 50),
		testutil.WithActivatedAt(time.Now().Add(-time.Hour)))
	testutil.TestSubscription(t, db, other.ID)

	subs, err := repo.ListByUser(user.ID)
	require.NoError(t, err)
	require.Len(t, subs, 2)
	// 最新激活在前
	assert.Equal(t, model.PlanStarter, subs[0].Plan)
}

func TestSubscriptionRepository_RedisCache(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.CleanupTestDB(t, db)

	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	repo := NewSubscriptionRepository(db, rdb)
	user := testutil.TestUser(t, db)
	sub := testutil.TestSubscription(t, db, user.ID)

	key := fmt.Sprintf("sub:latest:%d", user.ID)

	// 读取后写入缓存
	got, err := repo.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, got.ID)
	assert.True(t, mr.Exists(key))

	// 扣减后缓存失效
	ok, err := repo.DecrementGenerations(sub.ID, user.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists(key))

	// 再读拿到的是扣减后的值
	got, err = repo.Latest(user.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.GenerationsLeft-1, got.GenerationsLeft)
}
