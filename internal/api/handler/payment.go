package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/response"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
}

func NewPaymentHandler(paymentService *service.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateGCash 创建 GCash 支付交易
// POST /api/payments/gcash/create
func (h *PaymentHandler) CreateGCash(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.paymentService.CreateGCash(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case service.ErrUnknownPlan:
			response.ParamError(c, "Unknown plan type")
		case service.ErrUserNotFound:
			response.NotFoundError(c, "User not found")
		default:
			log.Printf("Failed to create payment for user %d: %v", req.UserID, err)
			response.ServerError(c, "Payment initialization failed")
		}
		return
	}

	response.OK(c, resp)
}

// Verify 查询支付状态
// GET /api/payments/gcash/verify/:transactionId
func (h *PaymentHandler) Verify(c *gin.Context) {
	referenceID := c.Param("transactionId")
	if referenceID == "" {
		response.ParamError(c, "Transaction id required")
		return
	}

	resp, err := h.paymentService.Verify(referenceID)
	if err != nil {
		switch err {
		case service.ErrTransactionNotFound:
			response.NotFoundError(c, "Transaction not found")
		default:
			log.Printf("Failed to verify payment %s: %v", referenceID, err)
			response.ServerError(c, "Payment verification failed")
		}
		return
	}

	response.OK(c, resp)
}
