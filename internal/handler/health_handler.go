// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"chatbot-platform/internal/cache"
	"chatbot-platform/internal/llm"
	"chatbot-platform/pkg/response"
)

// HealthHandler 健康检查处理器
type HealthHandler struct {
	db         *gorm.DB
	redisCache *cache.RedisCache
	llmClient  *llm.Client
}

// NewHealthHandler 创建 HealthHandler 实例
func NewHealthHandler(db *gorm.DB, redisCache *cache.RedisCache, llmClient *llm.Client) *HealthHandler {
	return &HealthHandler{
		db:         db,
		redisCache: redisCache,
		llmClient:  llmClient,
	}
}

// Health 服务自身健康检查
// 探测数据库和 Redis 连接，不访问 LLM 提供商
// @Summary 健康检查
// @Tags 健康
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	dbOK := false
	if sqlDB, err := h.db.DB(); err == nil {
		dbOK = sqlDB.PingContext(c.Request.Context()) == nil
	}

	response.Success(c, gin.H{
		"status": "ok",
		"mysql":  dbOK,
		"redis":  h.redisCache.Ping(c.Request.Context()) == nil,
	})
}

// ProviderHealth 检查 LLM 提供商连通性
// 发送一次轻量探测请求验证 API Key 可用
// @Summary 提供商健康检查
// @Tags 健康
// @Produce json
// @Success 200 {object} response.Response
// @Router /api/v1/health/provider [get]
func (h *HealthHandler) ProviderHealth(c *gin.Context) {
	ok := h.llmClient.ValidateKey(c.Request.Context())
	if !ok {
		response.ProviderUnavailable(c)
		return
	}
	response.Success(c, gin.H{"provider": "ok"})
}
