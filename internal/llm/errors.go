// Package llm 提供 LLM 提供商（OpenRouter 兼容 API）的 HTTP 客户端
package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"
)

// Kind 提供商错误的分类
// 错误分类是封闭集合，所有调用方按 Kind 穷举处理
// 分类只在 classifyStatus 一处产生，避免判断逻辑散落各处
type Kind int

const (
	// KindAuthentication API Key 无效或缺失（HTTP 401/403）
	// 配置修复之前重试没有意义
	KindAuthentication Kind = iota + 1

	// KindRateLimited 提供商限流（HTTP 429）
	// 瞬时错误，调用方可以按 RetryAfter 提示退避重试
	// 客户端自身不做重试
	KindRateLimited

	// KindUnavailable 提供商暂时不可用
	// HTTP 5xx 或传输层失败（连接拒绝、DNS 失败、超时）
	// 瞬时错误，调用方可以退避重试
	KindUnavailable

	// KindMalformedResponse 2xx 响应但缺少预期字段或无法解析
	// 需要人工排查，不应静默重试
	KindMalformedResponse

	// KindProvider 其他非 2xx 状态
	// 携带状态码和原始响应体用于诊断
	KindProvider
)

// String 返回分类的可读名称
func (k Kind) String() string {
	switch k {
	case KindAuthentication:
		return "authentication"
	case KindRateLimited:
		return "rate_limited"
	case KindUnavailable:
		return "unavailable"
	case KindMalformedResponse:
		return "malformed_response"
	case KindProvider:
		return "provider_error"
	default:
		return "unknown"
	}
}

// Error 提供商调用失败的结构化错误
type Error struct {
	Kind       Kind          // 错误分类
	StatusCode int           // HTTP 状态码，传输层失败时为 0
	Body       string        // 原始响应体（截断），用于诊断
	RetryAfter time.Duration // 限流时的重试提示，没有提示时为 0
	cause      error         // 底层错误（传输层失败时）
}

// Error 实现 error 接口
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("llm: %s: %v", e.Kind, e.cause)
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("llm: %s (status %d): %s", e.Kind, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("llm: %s", e.Kind)
}

// Unwrap 返回底层错误，支持 errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// KindOf 提取错误的提供商分类
// 参数:
//   - err: 任意错误
//
// 返回:
//   - Kind: 错误分类
//   - bool: err 是否是提供商错误
func KindOf(err error) (Kind, bool) {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind, true
	}
	return 0, false
}

// classifyStatus 根据非 2xx 的 HTTP 状态码生成分类错误
// 这是状态码到错误分类的唯一映射点
// 参数:
//   - status: HTTP 状态码
//   - body: 原始响应体
//   - retryAfter: Retry-After 响应头的值（可能为空）
//
// 返回:
//   - *Error: 分类后的错误
func classifyStatus(status int, body string, retryAfter string) *Error {
	e := &Error{
		StatusCode: status,
		Body:       truncate(body, 400),
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindAuthentication
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = parseRetryAfter(retryAfter)
	case status >= 500:
		e.Kind = KindUnavailable
	default:
		e.Kind = KindProvider
	}
	return e
}

// transportError 将传输层失败包装为分类错误
// 连接拒绝、DNS 失败、超时都算提供商不可用
func transportError(err error) *Error {
	return &Error{
		Kind:  KindUnavailable,
		cause: err,
	}
}

// malformedError 将无法解析的 2xx 响应包装为分类错误
func malformedError(status int, body string) *Error {
	return &Error{
		Kind:       KindMalformedResponse,
		StatusCode: status,
		Body:       truncate(body, 400),
	}
}

// parseRetryAfter 解析 Retry-After 响应头
// 只支持秒数形式，HTTP 日期形式忽略
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// truncate 截断字符串，避免把超长响应体塞进日志
func truncate(s string, maxChars int) string {
	runes := []rune(s)
	if len(runes) <= maxChars {
		return s
	}
	return string(runes[:maxChars])
}
