// Package response 提供统一的 HTTP 响应格式
// 所有 API 都使用相同的响应结构，便于前端处理
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一响应结构
// code: 业务状态码（0 表示成功）
// message: 提示信息
// data: 响应数据
type Response struct {
	Code    int         `json:"code"`           // 业务状态码
	Message string      `json:"message"`        // 提示信息
	Data    interface{} `json:"data,omitempty"` // 响应数据，可选
}

// 业务状态码定义
const (
	CodeSuccess       = 0    // 成功
	CodeBadRequest    = 1000 // 请求参数错误
	CodeUnauthorized  = 1001 // 未授权
	CodeForbidden     = 1002 // 禁止访问
	CodeNotFound      = 1003 // 资源不存在
	CodeInternalError = 1004 // 服务器内部错误

	CodeUserExists    = 1101 // 用户已存在
	CodeUserNotFound  = 1102 // 用户不存在
	CodePasswordWrong = 1103 // 密码错误

	CodeProjectNotFound = 1201 // 项目不存在
	CodeEmptyMessage    = 1301 // 消息内容为空
	CodeFileNotFound    = 1401 // 文件不存在
	CodeFileTooLarge    = 1402 // 文件超过大小限制

	// LLM 提供商错误
	// 每种失败对应独立的业务码，前端据此区分
	// "重试" / "联系支持" / "检查配置" 三类提示
	CodeProviderAuth        = 1501 // 提供商 API Key 无效（部署配置问题）
	CodeProviderRateLimited = 1502 // 提供商限流，可稍后重试
	CodeProviderUnavailable = 1503 // 提供商暂时不可用，可稍后重试
	CodeProviderMalformed   = 1504 // 提供商返回了无法解析的响应
	CodeProviderError       = 1505 // 提供商返回了未预期的错误
)

// Success 返回成功响应
// 参数:
//   - c: Gin 上下文
//   - data: 响应数据，可以是任意类型
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// SuccessWithMessage 返回成功响应（带自定义消息）
func SuccessWithMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeSuccess,
		Message: message,
		Data:    data,
	})
}

// Error 返回错误响应
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - message: 错误信息
func Error(c *gin.Context, httpCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    httpCode,
		Message: message,
	})
}

// ErrorWithCode 返回错误响应（带业务状态码）
// 参数:
//   - c: Gin 上下文
//   - httpCode: HTTP 状态码
//   - bizCode: 业务状态码
//   - message: 错误信息
func ErrorWithCode(c *gin.Context, httpCode, bizCode int, message string) {
	c.JSON(httpCode, Response{
		Code:    bizCode,
		Message: message,
	})
}

// BadRequest 返回 400 错误（请求参数错误）
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeBadRequest,
		Message: message,
	})
}

// Unauthorized 返回 401 错误（未授权）
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeUnauthorized,
		Message: message,
	})
}

// Forbidden 返回 403 错误（禁止访问）
func Forbidden(c *gin.Context, message string) {
	c.JSON(http.StatusForbidden, Response{
		Code:    CodeForbidden,
		Message: message,
	})
}

// NotFound 返回 404 错误（资源不存在）
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeNotFound,
		Message: message,
	})
}

// InternalError 返回 500 错误（服务器内部错误）
func InternalError(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Response{
		Code:    CodeInternalError,
		Message: message,
	})
}

// UserExists 返回用户已存在错误
func UserExists(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeUserExists,
		Message: "邮箱已被注册",
	})
}

// UserNotFound 返回用户不存在错误
func UserNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeUserNotFound,
		Message: "用户不存在",
	})
}

// PasswordWrong 返回密码错误
func PasswordWrong(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodePasswordWrong,
		Message: "密码错误",
	})
}

// ProjectNotFound 返回项目不存在错误
func ProjectNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeProjectNotFound,
		Message: "项目不存在",
	})
}

// FileNotFound 返回文件不存在错误
func FileNotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Response{
		Code:    CodeFileNotFound,
		Message: "文件不存在",
	})
}

// FileTooLarge 返回文件过大错误
func FileTooLarge(c *gin.Context) {
	c.JSON(http.StatusRequestEntityTooLarge, Response{
		Code:    CodeFileTooLarge,
		Message: "文件超过大小限制",
	})
}

// EmptyMessage 返回消息为空错误
func EmptyMessage(c *gin.Context) {
	c.JSON(http.StatusBadRequest, Response{
		Code:    CodeEmptyMessage,
		Message: "消息内容不能为空",
	})
}

// ProviderAuth 返回提供商认证失败错误
// API Key 无效属于部署配置问题，重试没有意义
func ProviderAuth(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Response{
		Code:    CodeProviderAuth,
		Message: "AI 服务认证失败，请检查服务配置",
	})
}

// ProviderRateLimited 返回提供商限流错误
func ProviderRateLimited(c *gin.Context) {
	c.JSON(http.StatusTooManyRequests, Response{
		Code:    CodeProviderRateLimited,
		Message: "AI 服务请求过于频繁，请稍后重试",
	})
}

// ProviderUnavailable 返回提供商不可用错误
func ProviderUnavailable(c *gin.Context) {
	c.JSON(http.StatusServiceUnavailable, Response{
		Code:    CodeProviderUnavailable,
		Message: "AI 服务暂时不可用，请稍后重试",
	})
}

// ProviderMalformed 返回提供商响应格式错误
func ProviderMalformed(c *gin.Context) {
	c.JSON(http.StatusBadGateway, Response{
		Code:    CodeProviderMalformed,
		Message: "AI 服务返回了异常响应，请联系支持",
	})
}

// ProviderError 返回提供商未预期错误
func ProviderError(c *gin.Context) {
	c.JSON(http.StatusBadGateway, Response{
		Code:    CodeProviderError,
		Message: "AI 服务返回了未预期的错误，请联系支持",
	})
}

// Created 返回 201 创建成功响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    CodeSuccess,
		Message: "创建成功",
		Data:    data,
	})
}

// NoContent 返回 204 无内容响应（用于删除操作）
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
