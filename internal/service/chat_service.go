// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"strings"

	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/model"
)

// ErrEmptyMessage 用户输入为空白
var ErrEmptyMessage = errors.New("消息内容不能为空")

// ProjectStore 项目读取接口
// 由 repository.ProjectRepository 实现
type ProjectStore interface {
	GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Project, error)
}

// Completer 对话补全接口
// 由 llm.Client 实现，测试时可注入假实现
type Completer interface {
	Complete(ctx context.Context, messages []llm.Message) (string, error)
}

// ChatService 对话服务
// 编排一轮完整的对话：校验、落库用户消息、组装上下文、调用模型、落库回复
type ChatService struct {
	projectStore ProjectStore
	messageStore MessageStore
	assembler    *ContextAssembler
	completer    Completer
}

// NewChatService 创建 ChatService 实例
func NewChatService(
	projectStore ProjectStore,
	messageStore MessageStore,
	assembler *ContextAssembler,
	completer Completer,
) *ChatService {
	return &ChatService{
		projectStore: projectStore,
		messageStore: messageStore,
		assembler:    assembler,
		completer:    completer,
	}
}

// ChatRequest 对话请求
type ChatRequest struct {
	Message string `json:"message" binding:"required"` // 用户输入
}

// ChatResponse 对话响应
type ChatResponse struct {
	Reply            string         `json:"reply"`             // 助手回复
	UserMessage      *model.Message `json:"user_message"`      // 落库后的用户消息
	AssistantMessage *model.Message `json:"assistant_message"` // 落库后的助手消息
}

// SendTurn 执行一轮对话
// 流程:
//  1. 校验输入非空白
//  2. 确认项目属于该用户
//  3. 先持久化用户消息（无论后续模型调用是否成功，这一步不回滚）
//  4. 组装上下文（含刚落库的用户消息）并调用模型
//  5. 模型成功才持久化助手消息；失败时不写入任何助手记录，
//     错误原样向上传播，由上层按类型映射
//
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - req: 对话请求
//
// 返回:
//   - *ChatResponse: 对话结果
//   - error: ErrEmptyMessage / ErrProjectNotFound / *llm.Error / 存储错误
func (s *ChatService) SendTurn(ctx context.Context, userID, projectID int64, req *ChatRequest) (*ChatResponse, error) {
	// 1. 空白输入直接拒绝，不落库也不调用模型
	content := strings.TrimSpace(req.Message)
	if content == "" {
		return nil, ErrEmptyMessage
	}

	// 2. 确认项目存在且属于该用户
	project, err := s.projectStore.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	// 3. 持久化用户消息
	userMsg := &model.Message{
		ProjectID: projectID,
		Role:      model.MessageRoleUser,
		Content:   content,
	}
	if err := s.messageStore.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	// 4. 组装上下文并调用模型
	// 历史从存储重新读取，刚写入的用户消息已包含在内
	messages, err := s.assembler.Assemble(ctx, projectID)
	if err != nil {
		return nil, err
	}

	reply, err := s.completer.Complete(ctx, messages)
	if err != nil {
		// 模型调用失败时用户消息保留，但不伪造助手回复
		return nil, err
	}

	// 5. 持久化助手消息
	assistantMsg := &model.Message{
		ProjectID: projectID,
		Role:      model.MessageRoleAssistant,
		Content:   reply,
	}
	if err := s.messageStore.Create(ctx, assistantMsg); err != nil {
		return nil, err
	}

	return &ChatResponse{
		Reply:            reply,
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}

// History 获取项目的对话历史
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - []model.Message: 消息列表，时间正序
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *ChatService) History(ctx context.Context, userID, projectID int64) ([]model.Message, error) {
	project, err := s.projectStore.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return s.messageStore.ListByProject(ctx, projectID)
}
