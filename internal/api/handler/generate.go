package handler

import (
	"errors"
	"io"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/internal/api/middleware"
	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/response"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

type GenerateHandler struct {
	entitlement *service.EntitlementService
	generator   *service.GeneratorService
}

func NewGenerateHandler(entitlement *service.EntitlementService, generator *service.GeneratorService) *GenerateHandler {
	return &GenerateHandler{
		entitlement: entitlement,
		generator:   generator,
	}
}

// Generate 随机生成一个点子：先做权益检查，再从过滤结果中随机选择，
// 选中后恰好消耗一次生成次数。三类失败（无套餐/次数用尽/无匹配）分开报错。
// POST /api/generate
func (h *GenerateHandler) Generate(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.AuthError(c, "")
		return
	}

	var req dto.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.ParamError(c, err.Error())
		return
	}

	if _, err := h.entitlement.CheckGenerate(userID); err != nil {
		h.writeError(c, userID, err)
		return
	}

	filter := dto.IdeaFilter{
		Industry:   req.Industry,
		Type:       req.Type,
		Difficulty: req.Difficulty,
		Duration:   req.Duration,
		Search:     req.Search,
	}
	idea, err := h.generator.Pick(&filter)
	if err != nil {
		if errors.Is(err, service.ErrNoMatchingIdeas) {
			response.NoMatchingIdeasError(c)
			return
		}
		log.Printf("Failed to pick idea for user %d: %v", userID, err)
		response.ServerError(c, "")
		return
	}

	// 选中之后才扣减；与检查之间存在并发窗口，靠原子扣减兜底
	left, err := h.entitlement.UseGeneration(userID)
	if err != nil {
		h.writeError(c, userID, err)
		return
	}

	response.OK(c, dto.GenerateResponse{
		Idea:            idea,
		GenerationsLeft: left,
	})
}

func (h *GenerateHandler) writeError(c *gin.Context, userID int64, err error) {
	switch err {
	case service.ErrNoActivePlan:
		response.NoActivePlanError(c)
	case service.ErrQuotaExceeded:
		response.QuotaError(c)
	default:
		log.Printf("Entitlement check failed for user %d: %v", userID, err)
		response.ServerError(c, "")
	}
}
