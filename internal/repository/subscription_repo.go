package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/internal/model"
)

const latestCacheTTL = 5 * time.Minute

// SubscriptionRepository 订阅仓储。rdb 可为 nil（测试或无 Redis 环境），
// 此时 Latest 直接落库。缓存只作读加速，所有写操作都先写库再失效缓存。
type SubscriptionRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewSubscriptionRepository(db *gorm.DB, rdb *redis.Client) *SubscriptionRepository {
	return &SubscriptionRepository{db: db, rdb: rdb}
}

func (r *SubscriptionRepository) Create(sub *model.Subscription) error {
	if err := r.db.Create(sub).Error; err != nil {
		return err
	}
	r.invalidate(sub.UserID)
	return nil
}

// Latest 取用户最近一次激活的订阅，不存在返回 (nil, nil)
func (r *SubscriptionRepository) Latest(userID int64) (*model.Subscription, error) {
	if cached := r.fromCache(userID); cached != nil {
		return cached, nil
	}

	var sub model.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("activated_at DESC, id DESC").
		First(&sub).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	r.toCache(&sub)
	return &sub, nil
}

// DecrementGenerations 原子扣减一次生成次数。WHERE 同时限定
// generations_left > 0，保证并发下不会扣成负数；返回是否真正扣减。
func (r *SubscriptionRepository) DecrementGenerations(id, userID int64) (bool, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("id = ? AND generations_left > 0", id).
		Update("generations_left", gorm.Expr("generations_left - 1"))
	if result.Error != nil {
		return false, result.Error
	}
	r.invalidate(userID)
	return result.RowsAffected > 0, nil
}

// MarkExpired 将单条订阅置为过期
func (r *SubscriptionRepository) MarkExpired(id, userID int64) error {
	err := r.db.Model(&model.Subscription{}).
		Where("id = ?", id).
		Update("status", model.SubscriptionExpired).Error
	if err != nil {
		return err
	}
	r.invalidate(userID)
	return nil
}

// ExpireOverdue 批量刷新过期订阅的 status，返回影响行数。
// 过期判定以 expires_at 为准，读路径不依赖这里是否跑过。
func (r *SubscriptionRepository) ExpireOverdue(now time.Time) (int64, error) {
	result := r.db.Model(&model.Subscription{}).
		Where("status = ? AND expires_at IS NOT NULL AND expires_at < ?", model.SubscriptionActive, now).
		Update("status", model.SubscriptionExpired)
	return result.RowsAffected, result.Error
}

func (r *SubscriptionRepository) ListByUser(userID int64) ([]model.Subscription, error) {
	var subs []model.Subscription
	err := r.db.Where("user_id = ?", userID).
		Order("activated_at DESC, id DESC").
		Find(&subs).Error
	return subs, err
}

func (r *SubscriptionRepository) cacheKey(userID int64) string {
	return fmt.Sprintf("sub:latest:%d", userID)
}

func (r *SubscriptionRepository) fromCache(userID int64) *model.Subscription {
	if r.rdb == nil {
		return nil
	}
	data, err := r.rdb.Get(context.Background(), r.cacheKey(userID)).Bytes()
	if err != nil {
		return nil
	}
	var sub model.Subscription
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil
	}
	return &sub
}

func (r *SubscriptionRepository) toCache(sub *model.Subscription) {
	if r.rdb == nil {
		return
	}
	data, err := json.Marshal(sub)
	if err != nil {
		return
	}
	// 缓存失败不影响主流程
	r.rdb.Set(context.Background(), r.cacheKey(sub.UserID), data, latestCacheTTL)
}

func (r *SubscriptionRepository) invalidate(userID int64) {
	if r.rdb == nil {
		return
	}
	r.rdb.Del(context.Background(), r.cacheKey(userID))
}
