package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/model"
)

// fakeProjectStore 测试用的项目存储
type fakeProjectStore struct {
	projects map[int64]*model.Project // key: 项目ID
	err      error
}

func (f *fakeProjectStore) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.projects[id]
	if !ok || p.UserID != userID {
		return nil, nil
	}
	return p, nil
}

// fakeCompleter 测试用的模型客户端
type fakeCompleter struct {
	reply    string
	err      error
	gotCalls [][]llm.Message // 记录每次调用收到的上下文
}

func (f *fakeCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	f.gotCalls = append(f.gotCalls, messages)
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// newChatFixture 构造一套可用的测试依赖
// 项目 1 属于用户 10，当前提示词 "be brief"
func newChatFixture(completer *fakeCompleter) (*ChatService, *fakeMessageStore) {
	projects := &fakeProjectStore{projects: map[int64]*model.Project{
		1: {ID: 1, UserID: 10, Name: "demo"},
	}}
	prompts := &fakePromptStore{current: &model.Prompt{ProjectID: 1, Text: "be brief"}}
	messages := &fakeMessageStore{}
	assembler := NewContextAssembler(prompts, messages, "default")
	return NewChatService(projects, messages, assembler, completer), messages
}

func TestSendTurn_Success(t *testing.T) {
	completer := &fakeCompleter{reply: "hello!"}
	svc, messages := newChatFixture(completer)

	result, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "  hi  "})

	require.NoError(t, err)
	assert.Equal(t, "hello!", result.Reply)

	// 一轮成功对话正好落库两条：用户消息在前，助手消息在后
	require.Len(t, messages.messages, 2)
	assert.Equal(t, model.MessageRoleUser, messages.messages[0].Role)
	assert.Equal(t, "hi", messages.messages[0].Content) // 输入去掉首尾空白
	assert.Equal(t, model.MessageRoleAssistant, messages.messages[1].Role)
	assert.Equal(t, "hello!", messages.messages[1].Content)

	// 发给模型的上下文：system + 刚落库的用户消息
	require.Len(t, completer.gotCalls, 1)
	sent := completer.gotCalls[0]
	require.Len(t, sent, 2)
	assert.Equal(t, model.MessageRoleSystem, sent[0].Role)
	assert.Equal(t, "be brief", sent[0].Content)
	assert.Equal(t, "hi", sent[1].Content)
}

func TestSendTurn_EmptyMessage(t *testing.T) {
	completer := &fakeCompleter{reply: "unused"}
	svc, messages := newChatFixture(completer)

	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: input})
		assert.ErrorIs(t, err, ErrEmptyMessage)
	}

	// 空白输入不落库也不调用模型
	assert.Empty(t, messages.messages)
	assert.Empty(t, completer.gotCalls)
}

func TestSendTurn_ProjectNotFound(t *testing.T) {
	completer := &fakeCompleter{reply: "unused"}
	svc, messages := newChatFixture(completer)

	// 项目不存在
	_, err := svc.SendTurn(context.Background(), 10, 99, &ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	// 项目属于别人，同样按不存在处理
	_, err = svc.SendTurn(context.Background(), 11, 1, &ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrProjectNotFound)

	assert.Empty(t, messages.messages)
	assert.Empty(t, completer.gotCalls)
}

func TestSendTurn_ProviderFailure(t *testing.T) {
	provErr := &llm.Error{Kind: llm.KindRateLimited, StatusCode: 429}
	completer := &fakeCompleter{err: provErr}
	svc, messages := newChatFixture(completer)

	_, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "hi"})

	// 提供商错误原样向上传播，分类信息保留
	require.Error(t, err)
	kind, ok := llm.KindOf(err)
	require.True(t, ok)
	assert.Equal(t, llm.KindRateLimited, kind)

	// 用户消息保留，但不写入任何助手消息
	require.Len(t, messages.messages, 1)
	assert.Equal(t, model.MessageRoleUser, messages.messages[0].Role)
}

func TestSendTurn_StorageFailure(t *testing.T) {
	storeErr := errors.New("db down")
	completer := &fakeCompleter{reply: "unused"}
	svc, messages := newChatFixture(completer)
	messages.createErr = storeErr

	_, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "hi"})

	assert.ErrorIs(t, err, storeErr)
	// 用户消息都没写成功，不会调用模型
	assert.Empty(t, completer.gotCalls)
}

func TestSendTurn_HistoryAccumulates(t *testing.T) {
	completer := &fakeCompleter{reply: "reply"}
	svc, _ := newChatFixture(completer)

	_, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "first"})
	require.NoError(t, err)
	_, err = svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "second"})
	require.NoError(t, err)

	// 第二轮的上下文包含第一轮的完整记录
	require.Len(t, completer.gotCalls, 2)
	second := completer.gotCalls[1]
	require.Len(t, second, 4) // system + first + reply + second
	assert.Equal(t, "first", second[1].Content)
	assert.Equal(t, "reply", second[2].Content)
	assert.Equal(t, "second", second[3].Content)
}

func TestHistory(t *testing.T) {
	completer := &fakeCompleter{reply: "reply"}
	svc, _ := newChatFixture(completer)

	_, err := svc.SendTurn(context.Background(), 10, 1, &ChatRequest{Message: "hi"})
	require.NoError(t, err)

	history, err := svc.History(context.Background(), 10, 1)
	require.NoError(t, err)
	require.Len(t, history, 2)

	// 别人看不到这个项目的历史
	_, err = svc.History(context.Background(), 11, 1)
	assert.ErrorIs(t, err, ErrProjectNotFound)
}
