package service

import (
	"errors"
	"time"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/model"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
	"github.com/ideastone/ideastone_go_server/internal/repository"
)

var (
	ErrNoActivePlan  = errors.New("no active plan")
	ErrQuotaExceeded = errors.New("no generations left")
	ErrUnknownPlan   = errors.New("unknown plan type")
)

// EntitlementService 权益账本。每个用户以最近一次激活的订阅为当前权益：
// 激活总是插入新记录并重置次数（包括重复激活同一套餐），过期在读取时派生，
// 扣减通过单条原子 UPDATE 完成，并发下最多一个请求能拿到最后一次生成。
type EntitlementService struct {
	subRepo *repository.SubscriptionRepository
	metrics *metrics.Metrics
	cfg     *config.Config
}

func NewEntitlementService(subRepo *repository.SubscriptionRepository, m *metrics.Metrics, cfg *config.Config) *EntitlementService {
	return &EntitlementService{
		subRepo: subRepo,
		metrics: m,
		cfg:     cfg,
	}
}

// Activate 激活套餐。无条件重置次数，付费套餐 30 天后过期（duration_days 配置），
// free 永不过期。transactionID/paymentMethod 对 free 套餐传空即可。
func (s *EntitlementService) Activate(userID int64, planType, transactionID, paymentMethod string) (*model.Subscription, error) {
	plan, ok := s.cfg.Plans[planType]
	if !ok {
		return nil, ErrUnknownPlan
	}

	now := time.Now()
	total := plan.Generations
	if plan.Unlimited {
		total = 0 // unlimited 不使用计数字段
	}

	var expiresAt *time.Time
	if plan.DurationDays > 0 {
		e := now.AddDate(0, 0, plan.DurationDays)
		expiresAt = &e
	}

	sub := &model.Subscription{
		UserID:           userID,
		Plan:             planType,
		GenerationsLeft:  total,
		TotalGenerations: total,
		ActivatedAt:      now,
		ExpiresAt:        expiresAt,
		Status:           model.SubscriptionActive,
		PaymentMethod:    paymentMethod,
		TransactionID:    transactionID,
	}

	if err := s.subRepo.Create(sub); err != nil {
		return nil, err
	}

	s.metrics.IncActivation(planType)
	return sub, nil
}

// Current 取当前权益记录，从未激活返回 (nil, nil)。
// 已过期的记录照常返回，但 status 修正为 expired（并顺带落库）。
func (s *EntitlementService) Current(userID int64) (*model.Subscription, error) {
	sub, err := s.subRepo.Latest(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, nil
	}

	if sub.Status == model.SubscriptionActive && sub.IsExpired(time.Now()) {
		sub.Status = model.SubscriptionExpired
		// 懒刷新，失败不影响读语义
		_ = s.subRepo.MarkExpired(sub.ID, userID)
	}

	return sub, nil
}

// CanGenerate 是否允许生成：无套餐/过期 false，unlimited 恒 true，
// 其余看剩余次数。
func (s *EntitlementService) CanGenerate(userID int64) (bool, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return false, err
	}
	if sub == nil || sub.IsExpired(time.Now()) {
		return false, nil
	}
	if sub.IsUnlimited() {
		return true, nil
	}
	return sub.GenerationsLeft > 0, nil
}

// CheckGenerate 生成前置检查，区分 ErrNoActivePlan 和 ErrQuotaExceeded
func (s *EntitlementService) CheckGenerate(userID int64) (*model.Subscription, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.IsExpired(time.Now()) {
		return nil, ErrNoActivePlan
	}
	if !sub.IsUnlimited() && sub.GenerationsLeft <= 0 {
		return nil, ErrQuotaExceeded
	}
	return sub, nil
}

// UseGeneration 消耗一次生成。unlimited 不动计数；其余套餐原子扣减，
// 次数已尽返回 ErrQuotaExceeded，剩余值永不为负。
func (s *EntitlementService) UseGeneration(userID int64) (dto.GenerationCount, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return dto.GenerationCount{}, err
	}
	if sub == nil || sub.IsExpired(time.Now()) {
		return dto.GenerationCount{}, ErrNoActivePlan
	}

	if sub.IsUnlimited() {
		s.metrics.IncGeneration(sub.Plan)
		return dto.GenerationCount{Unlimited: true}, nil
	}

	ok, err := s.subRepo.DecrementGenerations(sub.ID, userID)
	if err != nil {
		return dto.GenerationCount{}, err
	}
	if !ok {
		s.metrics.IncQuotaRejected()
		return dto.GenerationCount{}, ErrQuotaExceeded
	}

	s.metrics.IncGeneration(sub.Plan)

	// 扣减后重新读取，返回真实剩余值
	fresh, err := s.subRepo.Latest(userID)
	if err != nil || fresh == nil {
		return dto.GenerationCount{Count: sub.GenerationsLeft - 1}, nil
	}
	return dto.GenerationCount{Count: fresh.GenerationsLeft}, nil
}

// Remaining 剩余次数，无套餐/过期为 0
func (s *EntitlementService) Remaining(userID int64) (dto.GenerationCount, error) {
	sub, err := s.Current(userID)
	if err != nil {
		return dto.GenerationCount{}, err
	}
	if sub == nil || sub.IsExpired(time.Now()) {
		return dto.GenerationCount{Count: 0}, nil
	}
	if sub.IsUnlimited() {
		return dto.GenerationCount{Unlimited: true}, nil
	}
	return dto.GenerationCount{Count: sub.GenerationsLeft}, nil
}

// ToResponse 订阅记录转响应 DTO
func ToSubscriptionResponse(sub *model.Subscription) *dto.SubscriptionResponse {
	if sub == nil {
		return nil
	}

	resp := &dto.SubscriptionResponse{
		Plan:             sub.Plan,
		GenerationsLeft:  dto.GenerationCount{Unlimited: sub.IsUnlimited(), Count: sub.GenerationsLeft},
		TotalGenerations: dto.GenerationCount{Unlimited: sub.IsUnlimited(), Count: sub.TotalGenerations},
		ActivatedAt:      sub.ActivatedAt.Format(time.RFC3339),
		Status:           sub.Status,
	}
	if sub.ExpiresAt != nil {
		resp.ExpiresAt = sub.ExpiresAt.Format(time.RFC3339)
	}
	return resp
}
