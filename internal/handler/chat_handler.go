// Package handler 提供 HTTP 请求处理器
package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/middleware"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/response"
)

// ChatHandler 对话请求处理器
// 负责把服务层的提供商错误类型映射为 HTTP 状态码
type ChatHandler struct {
	chatService *service.ChatService
	llmClient   *llm.Client
}

// NewChatHandler 创建 ChatHandler 实例
func NewChatHandler(chatService *service.ChatService, llmClient *llm.Client) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		llmClient:   llmClient,
	}
}

// Send 发送一条消息并获取模型回复
// @Summary 在项目中发送一条消息
// @Tags 对话
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param body body service.ChatRequest true "消息内容"
// @Success 200 {object} response.Response{data=service.ChatResponse}
// @Router /api/v1/projects/{id}/chat [post]
func (h *ChatHandler) Send(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req service.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.EmptyMessage(c)
		return
	}

	userID := middleware.GetUserID(c)
	result, err := h.chatService.SendTurn(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, result)
}

// writeError 把对话服务的错误映射为 HTTP 响应
// 提供商错误按类型区分：认证 401、限流 429、不可用 503、其余 502
func (h *ChatHandler) writeError(c *gin.Context, err error) {
	switch err {
	case service.ErrEmptyMessage:
		response.EmptyMessage(c)
		return
	case service.ErrProjectNotFound:
		response.ProjectNotFound(c)
		return
	}

	if kind, ok := llm.KindOf(err); ok {
		switch kind {
		case llm.KindAuthentication:
			response.ProviderAuth(c)
		case llm.KindRateLimited:
			// 提供商给了 Retry-After 就透传给客户端
			var provErr *llm.Error
			if errors.As(err, &provErr) && provErr.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(int(provErr.RetryAfter.Seconds())))
			}
			response.ProviderRateLimited(c)
		case llm.KindUnavailable:
			response.ProviderUnavailable(c)
		case llm.KindMalformedResponse:
			response.ProviderMalformed(c)
		default:
			response.ProviderError(c)
		}
		return
	}

	response.InternalError(c, "对话处理失败")
}

// Messages 获取项目的对话历史
// @Summary 获取项目的完整对话历史
// @Tags 对话
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response{data=[]model.Message}
// @Router /api/v1/projects/{id}/messages [get]
func (h *ChatHandler) Messages(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	messages, err := h.chatService.History(c.Request.Context(), userID, projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "获取对话历史失败")
		return
	}

	response.Success(c, messages)
}

// Models 获取可用模型列表
// @Summary 获取提供商的可用模型列表
// @Tags 对话
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]string}
// @Router /api/v1/models [get]
func (h *ChatHandler) Models(c *gin.Context) {
	models, err := h.llmClient.ListModels(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, models)
}
