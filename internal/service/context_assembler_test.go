package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-platform/internal/model"
)

// fakePromptStore 测试用的提示词存储
type fakePromptStore struct {
	current *model.Prompt
	err     error
}

func (f *fakePromptStore) GetCurrent(ctx context.Context, projectID int64) (*model.Prompt, error) {
	return f.current, f.err
}

// fakeMessageStore 测试用的消息存储
// 内存实现，保持插入顺序
type fakeMessageStore struct {
	messages  []model.Message
	nextID    int64
	createErr error
	listErr   error
}

func (f *fakeMessageStore) Create(ctx context.Context, message *model.Message) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	message.ID = f.nextID
	f.messages = append(f.messages, *message)
	return nil
}

func (f *fakeMessageStore) ListByProject(ctx context.Context, projectID int64) ([]model.Message, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.Message
	for _, m := range f.messages {
		if m.ProjectID == projectID {
			out = append(out, m)
		}
	}
	return out, nil
}

func TestAssemble_WithProjectPrompt(t *testing.T) {
	prompts := &fakePromptStore{current: &model.Prompt{ProjectID: 1, Text: "You are a pirate."}}
	messages := &fakeMessageStore{messages: []model.Message{
		{ProjectID: 1, Role: model.MessageRoleUser, Content: "ahoy"},
		{ProjectID: 1, Role: model.MessageRoleAssistant, Content: "ahoy matey"},
		{ProjectID: 2, Role: model.MessageRoleUser, Content: "other project"},
	}}

	assembler := NewContextAssembler(prompts, messages, "default prompt")
	got, err := assembler.Assemble(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 3)
	// system 永远是第一条
	assert.Equal(t, model.MessageRoleSystem, got[0].Role)
	assert.Equal(t, "You are a pirate.", got[0].Content)
	// 历史按存储顺序原样跟在后面，不混入其他项目的消息
	assert.Equal(t, "ahoy", got[1].Content)
	assert.Equal(t, model.MessageRoleAssistant, got[2].Role)
	assert.Equal(t, "ahoy matey", got[2].Content)
}

func TestAssemble_DefaultPrompt(t *testing.T) {
	prompts := &fakePromptStore{current: nil} // 项目没设置过提示词
	messages := &fakeMessageStore{}

	assembler := NewContextAssembler(prompts, messages, "default prompt")
	got, err := assembler.Assemble(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.MessageRoleSystem, got[0].Role)
	assert.Equal(t, "default prompt", got[0].Content)
}

func TestAssemble_Idempotent(t *testing.T) {
	prompts := &fakePromptStore{current: &model.Prompt{ProjectID: 1, Text: "p"}}
	messages := &fakeMessageStore{messages: []model.Message{
		{ProjectID: 1, Role: model.MessageRoleUser, Content: "a"},
		{ProjectID: 1, Role: model.MessageRoleAssistant, Content: "b"},
	}}
	assembler := NewContextAssembler(prompts, messages, "d")

	first, err := assembler.Assemble(context.Background(), 1)
	require.NoError(t, err)
	second, err := assembler.Assemble(context.Background(), 1)
	require.NoError(t, err)

	// 无写入时两次组装结果完全一致
	assert.Equal(t, first, second)
	// 长度 = 1 + 历史条数
	assert.Len(t, first, 1+len(messages.messages))
}

func TestAssemble_StoreErrors(t *testing.T) {
	storeErr := errors.New("db down")

	t.Run("提示词存储失败", func(t *testing.T) {
		assembler := NewContextAssembler(&fakePromptStore{err: storeErr}, &fakeMessageStore{}, "d")
		_, err := assembler.Assemble(context.Background(), 1)
		assert.ErrorIs(t, err, storeErr)
	})

	t.Run("消息存储失败", func(t *testing.T) {
		assembler := NewContextAssembler(&fakePromptStore{}, &fakeMessageStore{listErr: storeErr}, "d")
		_, err := assembler.Assemble(context.Background(), 1)
		assert.ErrorIs(t, err, storeErr)
	})
}
