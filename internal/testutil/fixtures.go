package testutil

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/ideastone/ideastone_go_server/internal/model"
)

// TestUser 创建测试用户
func TestUser(t *testing.T, db *gorm.DB, opts ...func(*model.User)) *model.User {
	t.Helper()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	user := &model.User{
		Email:        fmt.Sprintf("test_%d@example.com", time.Now().UnixNano()),
		Name:         "Test User",
		PasswordHash: string(hash),
		IsDemo:       true,
	}

	for _, opt := range opts {
		opt(user)
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return user
}

// WithEmail 设置邮箱
func WithEmail(email string) func(*model.User) {
	return func(u *model.User) {
		u.Email = email
	}
}

// WithPassword 设置密码
func WithPassword(password string) func(*model.User) {
	return func(u *model.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.PasswordHash = string(hash)
	}
}

// TestIdea 创建测试点子
func TestIdea(t *testing.T, db *gorm.DB, opts ...func(*model.Idea)) *model.Idea {
	t.Helper()

	idea := &model.Idea{
		Title:           fmt.Sprintf("Test Idea %d", time.Now().UnixNano()%100000),
		Description:     "A capstone project idea for testing",
		Industry:        "Education",
		Type:            "Web App",
		Difficulty:      model.DifficultyBeginner,
		Duration:        model.DurationShort,
		Roles:           `[]`,
		Technologies:    `[]`,
		SimilarProjects: `[]`,
	}

	for _, opt := range opts {
		opt(idea)
	}

	if err := db.Create(idea).Error; err != nil {
		t.Fatalf("Failed to create test idea: %v", err)
	}

	return idea
}

// WithTitle 设置标题
func WithTitle(title string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Title = title
	}
}

// WithIndustry 设置行业
func WithIndustry(industry string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Industry = industry
	}
}

// WithType 设置类型
func WithType(ideaType string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Type = ideaType
	}
}

// WithDifficulty 设置难度
func WithDifficulty(difficulty string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Difficulty = difficulty
	}
}

// WithDuration 设置周期
func WithDuration(duration string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Duration = duration
	}
}

// WithRoles 设置角色列表（自动编码）
func WithRoles(roles ...string) func(*model.Idea) {
	return func(i *model.Idea) {
		data, _ := json.Marshal(roles)
		i.Roles = string(data)
	}
}

// WithRawRoles 设置角色原始文本（用于构造脏数据）
func WithRawRoles(raw string) func(*model.Idea) {
	return func(i *model.Idea) {
		i.Roles = raw
	}
}

// TestSubscription 创建测试订阅
func TestSubscription(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Subscription)) *model.Subscription {
	t.Helper()

	sub := &model.Subscription{
		UserID:           userID,
		Plan:             model.PlanFree,
		GenerationsLeft:  10,
		TotalGenerations: 10,
		ActivatedAt:      time.Now(),
		Status:           model.SubscriptionActive,
	}

	for _, opt := range opts {
		opt(sub)
	}

	if err := db.Create(sub).Error; err != nil {
		t.Fatalf("Failed to create test subscription: %v", err)
	}

	return sub
}

// WithPlan 设置套餐和额度
func WithPlan(plan string, left, total int) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Plan = plan
		s.GenerationsLeft = left
		s.TotalGenerations = total
	}
}

// WithActivatedAt 设置激活时间
func WithActivatedAt(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.ActivatedAt = at
	}
}

// WithExpiresAt 设置过期时间
func WithExpiresAt(at time.Time) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.ExpiresAt = &at
	}
}

// WithStatus 设置状态
func WithStatus(status string) func(*model.Subscription) {
	return func(s *model.Subscription) {
		s.Status = status
	}
}

// TestTransaction 创建测试交易
func TestTransaction(t *testing.T, db *gorm.DB, userID int64, opts ...func(*model.Transaction)) *model.Transaction {
	t.Helper()

	tx := &model.Transaction{
		ReferenceID: fmt.Sprintf("DEMO_%09d", time.Now().UnixNano()%1000000000),
		UserID:      userID,
		Plan:        model.PlanStarter,
		Amount:      99,
		Method:      "gcash",
		Status:      model.TransactionPending,
	}

	for _, opt := range opts {
		opt(tx)
	}

	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("Failed to create test transaction: %v", err)
	}

	return tx
}

// WithTxStatus 设置交易状态
func WithTxStatus(status string) func(*model.Transaction) {
	return func(tx *model.Transaction) {
		tx.Status = status
	}
}

// WithTxPlan 设置交易套餐
func WithTxPlan(plan string) func(*model.Transaction) {
	return func(tx *model.Transaction) {
		tx.Plan = plan
	}
}
