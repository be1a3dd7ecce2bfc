package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/database"
	"github.com/ideastone/ideastone_go_server/internal/pkg/gcash"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
	"github.com/ideastone/ideastone_go_server/internal/pkg/pubsub"
	"github.com/ideastone/ideastone_go_server/internal/pkg/queue"
	"github.com/ideastone/ideastone_go_server/internal/repository"
	"github.com/ideastone/ideastone_go_server/internal/service"
	"github.com/ideastone/ideastone_go_server/internal/worker"
)

func main() {
	// 加载配置
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化数据库
	db, err := database.NewMySQL(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect database: %v", err)
	}
	log.Println("Database connected")

	// 初始化 Redis
	rdb, err := database.NewRedis(&cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect redis: %v", err)
	}
	log.Println("Redis connected")

	// 初始化 Queue 和 Pub/Sub
	paymentQueue := queue.NewQueue(rdb, cfg.Queue.PaymentQueue)
	publisher := pubsub.NewPublisher(rdb)

	// 初始化依赖
	m := metrics.New()
	subRepo := repository.NewSubscriptionRepository(db, rdb)
	txRepo := repository.NewTransactionRepository(db)
	entitlementService := service.NewEntitlementService(subRepo, m, cfg)
	gcashClient := gcash.NewClient(&cfg.Payment)

	// 创建任务处理器
	processor := worker.NewProcessor(txRepo, entitlementService, gcashClient, publisher, m, cfg)

	// 创建 context 用于优雅关闭
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 监听退出信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	maxWorkers := cfg.Queue.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	log.Printf("Payment worker started, max workers: %d", maxWorkers)

	// 启动 worker 循环
	for i := 0; i < maxWorkers; i++ {
		go func(workerID int) {
			for {
				select {
				case <-ctx.Done():
					log.Printf("Worker %d shutting down", workerID)
					return
				default:
					msg, err := paymentQueue.Pop(ctx, 5*time.Second)
					if err != nil {
						if ctx.Err() != nil {
							return
						}
						log.Printf("Worker %d: failed to pop job: %v", workerID, err)
						continue
					}

					if msg == nil {
						continue // 超时，继续等待
					}

					log.Printf("Worker %d: verifying payment %s", workerID, msg.ReferenceID)
					if err := processor.Process(ctx, msg); err != nil {
						log.Printf("Worker %d: payment %s failed: %v", workerID, msg.ReferenceID, err)
					}
				}
			}
		}(i)
	}

	// 等待 context 取消
	<-ctx.Done()
	log.Println("Worker shutdown complete")
}
