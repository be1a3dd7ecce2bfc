package model

import (
	"time"
)

// 套餐类型
const (
	PlanFree      = "free"
	PlanStarter   = "starter"
	PlanPro       = "pro"
	PlanUnlimited = "unlimited"
)

// 订阅状态
const (
	SubscriptionActive  = "active"
	SubscriptionExpired = "expired"
)

// Subscription 订阅记录。每次激活插入一条新记录，同一用户以
// activated_at 最新的一条为当前权益，激活即重置剩余次数。
type Subscription struct {
	ID               int64      `gorm:"primaryKey" json:"id"`
	UserID           int64      `gorm:"not null;index" json:"user_id"`
	Plan             string     `gorm:"size:20;not null" json:"plan"` // free, starter, pro, unlimited
	GenerationsLeft  int        `gorm:"not null;default:0" json:"generations_left"`
	TotalGenerations int        `gorm:"not null;default:0" json:"total_generations"`
	ActivatedAt      time.Time  `gorm:"not null;index" json:"activated_at"`
	ExpiresAt        *time.Time `gorm:"index" json:"expires_at,omitempty"` // free 套餐为空
	Status           string     `gorm:"size:20;default:active;index" json:"status"`
	PaymentMethod    string     `gorm:"size:20" json:"payment_method,omitempty"` // gcash
	TransactionID    string     `gorm:"size:100" json:"transaction_id,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsUnlimited 是否不限次数套餐
func (s *Subscription) IsUnlimited() bool {
	return s.Plan == PlanUnlimited
}

// IsExpired 读取时派生过期状态，不依赖 status 字段是否已被定时任务刷新
func (s *Subscription) IsExpired(now time.Time) bool {
	if s.Status == SubscriptionExpired {
		return true
	}
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}
