package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/response"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

type SubscriptionHandler struct {
	entitlement *service.EntitlementService
}

func NewSubscriptionHandler(entitlement *service.EntitlementService) *SubscriptionHandler {
	return &SubscriptionHandler{
		entitlement: entitlement,
	}
}

// ActivateOrFree 激活套餐（free 或已支付的付费套餐），总是重置剩余次数
// POST /api/subscriptions/activate-or-free
func (h *SubscriptionHandler) ActivateOrFree(c *gin.Context) {
	var req dto.ActivateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	sub, err := h.entitlement.Activate(req.UserID, req.PlanType, req.TransactionID, req.PaymentMethod)
	if err != nil {
		switch err {
		case service.ErrUnknownPlan:
			response.ParamError(c, "Unknown plan type")
		default:
			log.Printf("Failed to activate plan %s for user %d: %v", req.PlanType, req.UserID, err)
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, service.ToSubscriptionResponse(sub))
}

// UseGeneration 消耗一次生成次数
// POST /api/subscriptions/use-generation
func (h *SubscriptionHandler) UseGeneration(c *gin.Context) {
	var req dto.UseGenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	left, err := h.entitlement.UseGeneration(req.UserID)
	if err != nil {
		switch err {
		case service.ErrNoActivePlan:
			response.NoActivePlanError(c)
		case service.ErrQuotaExceeded:
			response.QuotaError(c)
		default:
			log.Printf("Failed to use generation for user %d: %v", req.UserID, err)
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, dto.UseGenerationResponse{GenerationsLeft: left})
}

// GetUserSubscription 查询用户当前权益记录，从未激活返回 null
// GET /api/subscriptions/user/:userId
func (h *SubscriptionHandler) GetUserSubscription(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.ParamError(c, "Invalid user id")
		return
	}

	sub, err := h.entitlement.Current(userID)
	if err != nil {
		log.Printf("Failed to get subscription for user %d: %v", userID, err)
		response.ServerError(c, "")
		return
	}

	if sub == nil {
		response.OK(c, nil)
		return
	}
	response.OK(c, service.ToSubscriptionResponse(sub))
}
