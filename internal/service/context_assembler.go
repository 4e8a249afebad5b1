// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/model"
)

// PromptStore 提示词读取接口
// 由 repository.PromptRepository 实现，测试时可注入假实现
type PromptStore interface {
	GetCurrent(ctx context.Context, projectID int64) (*model.Prompt, error)
}

// MessageStore 消息存取接口
// 由 repository.MessageRepository 实现
type MessageStore interface {
	Create(ctx context.Context, message *model.Message) error
	ListByProject(ctx context.Context, projectID int64) ([]model.Message, error)
}

// ContextAssembler 上下文组装器
// 把项目的提示词和完整历史拼成发给模型的消息列表
type ContextAssembler struct {
	promptStore   PromptStore
	messageStore  MessageStore
	defaultPrompt string // 项目没有设置提示词时使用
}

// NewContextAssembler 创建 ContextAssembler 实例
// 参数:
//   - promptStore: 提示词存储
//   - messageStore: 消息存储
//   - defaultPrompt: 默认系统提示词
//
// 返回:
//   - *ContextAssembler: 组装器实例
func NewContextAssembler(promptStore PromptStore, messageStore MessageStore, defaultPrompt string) *ContextAssembler {
	return &ContextAssembler{
		promptStore:   promptStore,
		messageStore:  messageStore,
		defaultPrompt: defaultPrompt,
	}
}

// Assemble 组装项目的完整模型上下文
// 结构固定：第一条是 system 提示词，之后是全部历史消息（时间正序）
// 历史里已持久化的消息一条不落、一字不改
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - []llm.Message: 发给模型的消息列表
//   - error: 存储错误
func (a *ContextAssembler) Assemble(ctx context.Context, projectID int64) ([]llm.Message, error) {
	// 1. 取当前提示词，没有设置过就用默认值
	systemText := a.defaultPrompt
	prompt, err := a.promptStore.GetCurrent(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if prompt != nil {
		systemText = prompt.Text
	}

	// 2. 取完整历史
	history, err := a.messageStore.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	// 3. 拼装：system 在最前，历史按存储顺序原样跟在后面
	messages := make([]llm.Message, 0, len(history)+1)
	messages = append(messages, llm.Message{
		Role:    model.MessageRoleSystem,
		Content: systemText,
	})
	for _, m := range history {
		messages = append(messages, llm.Message{
			Role:    m.Role,
			Content: m.Content,
		})
	}
	return messages, nil
}
