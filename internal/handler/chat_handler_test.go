package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-platform/internal/llm"
	"chatbot-platform/internal/model"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/response"
)

// 测试用的存储假实现

type stubProjectStore struct{ project *model.Project }

func (s *stubProjectStore) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Project, error) {
	if s.project == nil || s.project.ID != id || s.project.UserID != userID {
		return nil, nil
	}
	return s.project, nil
}

type stubPromptStore struct{}

func (s *stubPromptStore) GetCurrent(ctx context.Context, projectID int64) (*model.Prompt, error) {
	return nil, nil
}

type stubMessageStore struct{ messages []model.Message }

func (s *stubMessageStore) Create(ctx context.Context, m *model.Message) error {
	s.messages = append(s.messages, *m)
	return nil
}

func (s *stubMessageStore) ListByProject(ctx context.Context, projectID int64) ([]model.Message, error) {
	return s.messages, nil
}

type stubCompleter struct {
	reply string
	err   error
}

func (s *stubCompleter) Complete(ctx context.Context, messages []llm.Message) (string, error) {
	return s.reply, s.err
}

// newChatRouter 搭一个只含对话路由的测试路由器
// 认证中间件换成直接注入 user_id 的桩
func newChatRouter(completer service.Completer) *gin.Engine {
	gin.SetMode(gin.TestMode)

	projects := &stubProjectStore{project: &model.Project{ID: 1, UserID: 10}}
	messages := &stubMessageStore{}
	assembler := service.NewContextAssembler(&stubPromptStore{}, messages, "default")
	chatService := service.NewChatService(projects, messages, assembler, completer)
	chatHandler := NewChatHandler(chatService, nil)

	router := gin.New()
	router.POST("/api/v1/projects/:id/chat", func(c *gin.Context) {
		c.Set("user_id", int64(10))
	}, chatHandler.Send)
	return router
}

// postChat 发送一次对话请求并解析响应
func postChat(t *testing.T, router *gin.Engine, path, body string) (*httptest.ResponseRecorder, response.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestChatSend_Success(t *testing.T) {
	router := newChatRouter(&stubCompleter{reply: "hi there"})

	w, resp := postChat(t, router, "/api/v1/projects/1/chat", `{"message":"hello"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, response.CodeSuccess, resp.Code)
}

func TestChatSend_EmptyMessage(t *testing.T) {
	router := newChatRouter(&stubCompleter{reply: "unused"})

	w, resp := postChat(t, router, "/api/v1/projects/1/chat", `{"message":"   "}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, response.CodeEmptyMessage, resp.Code)
}

func TestChatSend_ProjectNotFound(t *testing.T) {
	router := newChatRouter(&stubCompleter{reply: "unused"})

	w, resp := postChat(t, router, "/api/v1/projects/99/chat", `{"message":"hello"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, response.CodeProjectNotFound, resp.Code)
}

func TestChatSend_ProviderErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        *llm.Error
		wantStatus int
		wantCode   int
	}{
		{
			name:       "提供商认证失败映射 401",
			err:        &llm.Error{Kind: llm.KindAuthentication, StatusCode: 401},
			wantStatus: http.StatusUnauthorized,
			wantCode:   response.CodeProviderAuth,
		},
		{
			name:       "提供商限流映射 429",
			err:        &llm.Error{Kind: llm.KindRateLimited, StatusCode: 429, RetryAfter: 5 * time.Second},
			wantStatus: http.StatusTooManyRequests,
			wantCode:   response.CodeProviderRateLimited,
		},
		{
			name:       "提供商不可用映射 503",
			err:        &llm.Error{Kind: llm.KindUnavailable, StatusCode: 502},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   response.CodeProviderUnavailable,
		},
		{
			name:       "响应格式错误映射 502",
			err:        &llm.Error{Kind: llm.KindMalformedResponse, StatusCode: 200},
			wantStatus: http.StatusBadGateway,
			wantCode:   response.CodeProviderMalformed,
		},
		{
			name:       "其他提供商错误映射 502",
			err:        &llm.Error{Kind: llm.KindProvider, StatusCode: 400},
			wantStatus: http.StatusBadGateway,
			wantCode:   response.CodeProviderError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newChatRouter(&stubCompleter{err: tt.err})

			w, resp := postChat(t, router, "/api/v1/projects/1/chat", `{"message":"hello"}`)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestChatSend_RetryAfterHeader(t *testing.T) {
	router := newChatRouter(&stubCompleter{
		err: &llm.Error{Kind: llm.KindRateLimited, StatusCode: 429, RetryAfter: 5 * time.Second},
	})

	w, _ := postChat(t, router, "/api/v1/projects/1/chat", `{"message":"hello"}`)

	assert.Equal(t, "5", w.Header().Get("Retry-After"))
}
