package main

import (
	"log"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/database"
	"github.com/ideastone/ideastone_go_server/internal/pkg/cron"
	"github.com/ideastone/ideastone_go_server/internal/repository"
)

// 一次性过期订阅清理，适合放在 crontab 里跑
func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}

	subRepo := repository.NewSubscriptionRepository(db, nil)
	count := cron.NewService(subRepo, 0).SweepExpired()
	log.Printf("Cleanup finished, %d subscriptions expired", count)
}
