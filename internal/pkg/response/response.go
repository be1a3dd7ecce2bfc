package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 对外错误消息。前端按文案区分三种纠正动作（激活套餐 / 升级套餐 / 放宽过滤），
// 勿随意改动。
const (
	MsgNoActivePlan    = "No active plan. Please activate a plan first."
	MsgQuotaExceeded   = "No generations left. Please upgrade your plan."
	MsgNoMatchingIdeas = "No ideas match your filters."
	MsgServerError     = "Database query failed"
)

// ErrorBody 错误响应体 {"error": "..."}
type ErrorBody struct {
	Error string `json:"error"`
}

// OK 200 响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// ParamError 400 参数错误
func ParamError(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: message})
}

// AuthError 401 认证失败
func AuthError(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, ErrorBody{Error: message})
}

// NotFoundError 404 资源不存在
func NotFoundError(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, ErrorBody{Error: message})
}

// NoActivePlanError 400 无激活套餐
func NoActivePlanError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: MsgNoActivePlan})
}

// QuotaError 400 次数用尽
func QuotaError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: MsgQuotaExceeded})
}

// NoMatchingIdeasError 400 无匹配点子
func NoMatchingIdeasError(c *gin.Context) {
	c.JSON(http.StatusBadRequest, ErrorBody{Error: MsgNoMatchingIdeas})
}

// ServerError 500 服务器错误，细节只写日志不下发
func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = MsgServerError
	}
	c.JSON(http.StatusInternalServerError, ErrorBody{Error: message})
}
