package handler

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/response"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

type IdeaHandler struct {
	ideaService *service.IdeaService
}

func NewIdeaHandler(ideaService *service.IdeaService) *IdeaHandler {
	return &IdeaHandler{
		ideaService: ideaService,
	}
}

// List 查询点子列表
// GET /api/ideas?industry=&type=&difficulty=&duration=&search=
func (h *IdeaHandler) List(c *gin.Context) {
	var filter dto.IdeaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	ideas, err := h.ideaService.List(&filter)
	if err != nil {
		log.Printf("Failed to list ideas: %v", err)
		response.ServerError(c, "")
		return
	}

	response.OK(c, ideas)
}

// Create 创建点子
// POST /api/ideas
func (h *IdeaHandler) Create(c *gin.Context) {
	var req dto.CreateIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	idea, err := h.ideaService.Create(&req)
	if err != nil {
		switch err {
		case service.ErrMissingRequired, service.ErrMissingDescription:
			response.ParamError(c, err.Error())
		default:
			log.Printf("Failed to create idea: %v", err)
			response.ServerError(c, "Could not save idea")
		}
		return
	}

	response.Created(c, idea)
}
