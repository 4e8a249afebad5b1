// Package llm 提供 LLM 提供商（OpenRouter 兼容 API）的 HTTP 客户端
// 客户端是无状态的：不重试、不缓存，每次调用都是一次全新的网络往返
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"chatbot-platform/internal/config"
)

// DefaultTimeout 默认的单次请求超时
// 要足够覆盖大模型的典型延迟（几十秒），但必须有限
const DefaultTimeout = 30 * time.Second

// Message 对话消息，chat/completions 的请求格式
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client LLM 提供商客户端
// 配置在构造时显式注入，不在请求路径里读取环境变量
type Client struct {
	cfg        config.LLMConfig
	httpClient *http.Client
}

// New 创建 Client 实例
// 参数:
//   - cfg: LLM 提供商配置（API Key、模型、地址、超时）
//
// 返回:
//   - *Client: 客户端实例
func New(cfg config.LLMConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// chatRequest chat/completions 请求结构
type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float32   `json:"temperature,omitempty"`
}

// chatResponse chat/completions 响应结构
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// modelsResponse models 列表响应结构
type modelsResponse struct {
	Data []struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Complete 发送一次对话补全请求，使用配置的默认模型
// 参数:
//   - ctx: 上下文，携带取消和超时
//   - messages: 完整的有序消息列表（system + 历史 + 新输入）
//
// 返回:
//   - string: 助手回复文本
//   - error: 分类后的 *Error
func (c *Client) Complete(ctx context.Context, messages []Message) (string, error) {
	return c.CompleteModel(ctx, c.cfg.Model, messages)
}

// CompleteModel 发送一次对话补全请求，使用指定模型
// 参数:
//   - ctx: 上下文
//   - model: 模型标识
//   - messages: 完整的有序消息列表
//
// 返回:
//   - string: 助手回复文本
//   - error: 分类后的 *Error
func (c *Client) CompleteModel(ctx context.Context, model string, messages []Message) (string, error) {
	// 1. 构造请求 Body
	reqBody := chatRequest{
		Model:       model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", transportError(err)
	}

	// 2. 发送 HTTP 请求
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", transportError(err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		// 连接拒绝、DNS 失败、超时都归为提供商不可用
		return "", transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(err)
	}

	// 3. 非 2xx 状态走统一的分类
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", classifyStatus(resp.StatusCode, string(body), resp.Header.Get("Retry-After"))
	}

	// 4. 解析响应
	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", malformedError(resp.StatusCode, string(body))
	}

	if len(parsed.Choices) == 0 {
		return "", malformedError(resp.StatusCode, string(body))
	}
	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", malformedError(resp.StatusCode, string(body))
	}

	return content, nil
}

// ValidateKey 校验 API Key 是否可用
// 发送一次轻量的探测请求（GET /models），只有干净的 2xx 才算有效
// 所有错误都转换为 false，不向外传播
// 用于部署工具的健康检查
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - bool: API Key 是否有效
func (c *Client) ValidateKey(ctx context.Context) bool {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/models", nil)
	if err != nil {
		return false
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	// 丢弃响应体，探测只关心状态码
	_, _ = io.Copy(io.Discard, resp.Body)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// ListModels 获取可用的模型标识列表
// 参数:
//   - ctx: 上下文
//
// 返回:
//   - []string: 模型标识列表
//   - error: 分类后的 *Error
func (c *Client) ListModels(ctx context.Context) ([]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+"/models", nil)
	if err != nil {
		return nil, transportError(err)
	}
	c.setHeaders(httpReq)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, transportError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, transportError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, classifyStatus(resp.StatusCode, string(body), resp.Header.Get("Retry-After"))
	}

	var parsed modelsResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, malformedError(resp.StatusCode, string(body))
	}

	ids := make([]string, 0, len(parsed.Data))
	for _, m := range parsed.Data {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// setHeaders 设置提供商要求的请求头
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	// OpenRouter 用于归因统计的可选请求头
	req.Header.Set("HTTP-Referer", "http://localhost:8080")
	req.Header.Set("X-Title", "Chatbot Platform")
}
