package main

import (
	"context"
	"fmt"
	"log"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/api"
	"github.com/ideastone/ideastone_go_server/internal/api/handler"
	"github.com/ideastone/ideastone_go_server/internal/database"
	"github.com/ideastone/ideastone_go_server/internal/pkg/cron"
	"github.com/ideastone/ideastone_go_server/internal/pkg/gcash"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
	"github.com/ideastone/ideastone_go_server/internal/pkg/pubsub"
	"github.com/ideastone/ideastone_go_server/internal/pkg/queue"
	"github.com/ideastone/ideastone_go_server/internal/pkg/ws"
	"github.com/ideastone/ideastone_go_server/internal/repository"
	"github.com/ideastone/ideastone_go_server/internal/service"
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

	// 初始化指标
	m := metrics.New()

	// 初始化 Queue 和 WebSocket Hub
	paymentQueue := queue.NewQueue(rdb, cfg.Queue.PaymentQueue)
	wsHub := ws.NewHub()

	// 初始化 Repository
	userRepo := repository.NewUserRepository(db)
	ideaRepo := repository.NewIdeaRepository(db)
	subRepo := repository.NewSubscriptionRepository(db, rdb)
	txRepo := repository.NewTransactionRepository(db)

	// 初始化 Service
	authService := service.NewAuthService(userRepo, cfg)
	ideaService := service.NewIdeaService(ideaRepo, cfg)
	entitlementService := service.NewEntitlementService(subRepo, m, cfg)
	generatorService := service.NewGeneratorService(ideaService)
	gcashClient := gcash.NewClient(&cfg.Payment)
	paymentService := service.NewPaymentService(txRepo, userRepo, gcashClient, paymentQueue, m, cfg)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService)
	ideaHandler := handler.NewIdeaHandler(ideaService)
	subscriptionHandler := handler.NewSubscriptionHandler(entitlementService)
	generateHandler := handler.NewGenerateHandler(entitlementService, generatorService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	websocketHandler := handler.NewWebSocketHandler(wsHub, cfg.JWT.Secret)

	// 订阅支付状态，推送给在线用户
	subscriber := pubsub.NewSubscriber(rdb)
	go func() {
		err := subscriber.Subscribe(context.Background(), func(msg *pubsub.PaymentMessage) {
			wsHub.SendToUser(msg.UserID, &ws.Message{
				Type: msg.Type,
				Data: msg,
			})
		})
		if err != nil && err != context.Canceled {
			log.Printf("Payment status subscriber stopped: %v", err)
		}
	}()

	// 过期订阅定时扫描
	cronService := cron.NewService(subRepo, 0)
	cronService.Start()
	defer cronService.Stop()

	// 初始化 Router
	router := api.NewRouter(
		authHandler,
		ideaHandler,
		subscriptionHandler,
		generateHandler,
		paymentHandler,
		websocketHandler,
		m,
		cfg,
	)
	engine := router.Setup()

	// 启动服务器
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)
	if err := engine.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
