package api

import (
	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/config"
	"github.com/ideastone/ideastone_go_server/internal/api/handler"
	"github.com/ideastone/ideastone_go_server/internal/api/middleware"
	"github.com/ideastone/ideastone_go_server/internal/pkg/metrics"
)

type Router struct {
	authHandler         *handler.AuthHandler
	ideaHandler         *handler.IdeaHandler
	subscriptionHandler *handler.SubscriptionHandler
	generateHandler     *handler.GenerateHandler
	paymentHandler      *handler.PaymentHandler
	websocketHandler    *handler.WebSocketHandler
	metrics             *metrics.Metrics
	cfg                 *config.Config
}

func NewRouter(
	authHandler *handler.AuthHandler,
	ideaHandler *handler.IdeaHandler,
	subscriptionHandler *handler.SubscriptionHandler,
	generateHandler *handler.GenerateHandler,
	paymentHandler *handler.PaymentHandler,
	websocketHandler *handler.WebSocketHandler,
	m *metrics.Metrics,
	cfg *config.Config,
) *Router {
	return &Router{
		authHandler:         authHandler,
		ideaHandler:         ideaHandler,
		subscriptionHandler: subscriptionHandler,
		generateHandler:     generateHandler,
		paymentHandler:      paymentHandler,
		websocketHandler:    websocketHandler,
		metrics:             m,
		cfg:                 cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	if r.cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.CORS(r.cfg.CORS))

	if r.metrics != nil {
		engine.GET("/metrics", gin.WrapH(r.metrics.Handler()))
	}

	api := engine.Group("/api")
	{
		api.GET("/health", handler.Health)

		// WebSocket（token 走 query 参数）
		api.GET("/ws", r.websocketHandler.Handle)

		// 公开接口 - 认证
		auth := api.Group("/auth")
		{
			auth.POST("/login", r.authHandler.Login)
			auth.GET("/profile/:userId", r.authHandler.Profile)
		}

		// 公开接口 - 点子目录查询
		api.GET("/ideas", r.ideaHandler.List)

		// 订阅（兼容旧前端：userId 放在请求体，不走认证头）
		subscriptions := api.Group("/subscriptions")
		{
			subscriptions.POST("/activate-or-free", r.subscriptionHandler.ActivateOrFree)
			subscriptions.POST("/use-generation", r.subscriptionHandler.UseGeneration)
			subscriptions.GET("/user/:userId", r.subscriptionHandler.GetUserSubscription)
		}

		// 支付
		payments := api.Group("/payments")
		{
			payments.POST("/gcash/create", r.paymentHandler.CreateGCash)
			payments.GET("/gcash/verify/:transactionId", r.paymentHandler.Verify)
		}

		// 需要认证的接口
		authenticated := api.Group("")
		authenticated.Use(middleware.Auth(r.cfg.JWT.Secret))
		{
			authenticated.POST("/ideas", r.ideaHandler.Create)
			authenticated.POST("/generate", r.generateHandler.Generate)
		}
	}

	return engine
}
