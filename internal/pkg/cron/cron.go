package cron

import (
	"log"
	"time"

	"github.com/ideastone/ideastone_go_server/internal/repository"
)

// Service 定时任务：周期性把已过期的订阅 status 刷成 expired。
// 读路径按 expires_at 派生过期，这里只是让库里的状态追上来。
type Service struct {
	subRepo  *repository.SubscriptionRepository
	interval time.Duration
	stopChan chan struct{}
}

func NewService(subRepo *repository.SubscriptionRepository, interval time.Duration) *Service {
	if interval <= 0 {
		interval = time.Hour
	}
	return &Service{
		subRepo:  subRepo,
		interval: interval,
		stopChan: make(chan struct{}),
	}
}

// Start 启动定时任务
func (s *Service) Start() {
	go s.run()
	log.Println("Cron service started (subscription expiry sweep)")
}

// Stop 停止定时任务
func (s *Service) Stop() {
	close(s.stopChan)
	log.Println("Cron service stopped")
}

func (s *Service) run() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.SweepExpired()
		}
	}
}

// SweepExpired 执行一次过期扫描，返回刷新的行数
func (s *Service) SweepExpired() int64 {
	count, err := s.subRepo.ExpireOverdue(time.Now())
	if err != nil {
		log.Printf("Failed to sweep expired subscriptions: %v", err)
		return 0
	}
	if count > 0 {
		log.Printf("Marked %d subscriptions expired", count)
	}
	return count
}
