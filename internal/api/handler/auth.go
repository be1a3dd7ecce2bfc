package handler

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ideastone/ideastone_go_server/internal/model/dto"
	"github.com/ideastone/ideastone_go_server/internal/pkg/response"
	"github.com/ideastone/ideastone_go_server/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login 演示登录，首次登录自动注册
// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.authService.Login(&req)
	if err != nil {
		switch err {
		case service.ErrInvalidCredentials:
			response.AuthError(c, "Invalid email or password")
		default:
			log.Printf("Login failed for %s: %v", req.Email, err)
			response.ServerError(c, "Authentication failed")
		}
		return
	}

	response.OK(c, resp)
}

// Profile 查询用户信息
// GET /api/auth/profile/:userId
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("userId"), 10, 64)
	if err != nil {
		response.ParamError(c, "Invalid user id")
		return
	}

	user, err := h.authService.Profile(userID)
	if err != nil {
		switch err {
		case service.ErrUserNotFound:
			response.NotFoundError(c, "User not found")
		default:
			log.Printf("Failed to get profile for user %d: %v", userID, err)
			response.ServerError(c, "")
		}
		return
	}

	response.OK(c, user)
}
