// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"chatbot-platform/internal/middleware"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/response"
)

// PromptHandler 系统提示词请求处理器
type PromptHandler struct {
	promptService *service.PromptService
}

// NewPromptHandler 创建 PromptHandler 实例
func NewPromptHandler(promptService *service.PromptService) *PromptHandler {
	return &PromptHandler{
		promptService: promptService,
	}
}

// Set 设置项目提示词
// 追加一条新提示词，立即成为当前提示词，旧版本保留
// @Summary 设置项目的系统提示词
// @Tags 提示词
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param body body service.SetPromptRequest true "提示词内容"
// @Success 200 {object} response.Response{data=model.Prompt}
// @Router /api/v1/projects/{id}/prompt [post]
func (h *PromptHandler) Set(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req service.SetPromptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	prompt, err := h.promptService.Set(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "设置提示词失败")
		return
	}

	response.Created(c, prompt)
}

// GetCurrent 获取项目的当前提示词
// @Summary 获取项目的当前提示词
// @Tags 提示词
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response{data=model.Prompt}
// @Router /api/v1/projects/{id}/prompt [get]
func (h *PromptHandler) GetCurrent(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	prompt, err := h.promptService.GetCurrent(c.Request.Context(), userID, projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "获取提示词失败")
		return
	}

	// 没有设置过提示词时返回 data: null，前端据此展示默认提示词
	response.Success(c, prompt)
}

// History 获取项目的提示词历史
// @Summary 获取项目的提示词历史版本
// @Tags 提示词
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response{data=[]model.Prompt}
// @Router /api/v1/projects/{id}/prompt/history [get]
func (h *PromptHandler) History(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	prompts, err := h.promptService.History(c.Request.Context(), userID, projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "获取提示词历史失败")
		return
	}

	response.Success(c, prompts)
}
