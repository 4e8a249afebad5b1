package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbot-platform/internal/config"
)

// newTestClient 创建指向测试服务器的客户端
func newTestClient(baseURL string) *Client {
	return New(config.LLMConfig{
		APIKey:      "test-key",
		Model:       "test-model",
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
		MaxTokens:   1000,
		Temperature: 0.7,
	})
}

// chatOKBody 构造一个正常的 chat/completions 响应体
func chatOKBody(content string) string {
	body, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return string(body)
}

func TestComplete_Success(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chatOKBody("  hello there  ")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	reply, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "you are helpful"},
		{Role: "user", Content: "hi"},
	})

	require.NoError(t, err)
	// 回复去掉首尾空白
	assert.Equal(t, "hello there", reply)

	// 请求体携带配置的模型和采样参数
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "test-model", gotReq.Model)
	assert.Equal(t, 1000, gotReq.MaxTokens)
	assert.InDelta(t, 0.7, gotReq.Temperature, 0.001)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
}

func TestComplete_ErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		retryAfter string
		body       string
		wantKind   Kind
	}{
		{"api key 无效", http.StatusUnauthorized, "", `{"error":"invalid key"}`, KindAuthentication},
		{"key 被禁用", http.StatusForbidden, "", `{"error":"forbidden"}`, KindAuthentication},
		{"限流", http.StatusTooManyRequests, "", `{"error":"slow down"}`, KindRateLimited},
		{"限流带 Retry-After", http.StatusTooManyRequests, "7", `{"error":"slow down"}`, KindRateLimited},
		{"服务端故障", http.StatusInternalServerError, "", "oops", KindUnavailable},
		{"网关故障", http.StatusBadGateway, "", "bad gateway", KindUnavailable},
		{"其他 4xx", http.StatusTeapot, "", "teapot", KindProvider},
		{"参数错误", http.StatusBadRequest, "", `{"error":"bad request"}`, KindProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok, "expected a classified provider error")
			assert.Equal(t, tt.wantKind, kind)

			var provErr *Error
			require.ErrorAs(t, err, &provErr)
			assert.Equal(t, tt.status, provErr.StatusCode)
			if tt.retryAfter != "" {
				assert.Equal(t, 7*time.Second, provErr.RetryAfter)
			}
		})
	}
}

func TestComplete_MalformedResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"非 JSON 响应", "<html>not json</html>"},
		{"choices 为空", `{"choices":[]}`},
		{"choices 缺失", `{"id":"x"}`},
		{"内容为空白", chatOKBody("   ")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

			require.Error(t, err)
			kind, ok := KindOf(err)
			require.True(t, ok)
			// 2xx 但内容不可用，算格式错误而不是正常回复
			assert.Equal(t, KindMalformedResponse, kind)
		})
	}
}

func TestComplete_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // 立即关掉，让连接被拒绝

	client := newTestClient(srv.URL)
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindUnavailable, kind)
}

func TestComplete_ContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(time.Second)
		w.Write([]byte(chatOKBody("too late")))
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	client := newTestClient(srv.URL)
	_, err := client.Complete(ctx, []Message{{Role: "user", Content: "hi"}})

	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok)
	// 超时按提供商不可用处理
	assert.Equal(t, KindUnavailable, kind)
}

func TestCompleteModel_OverridesModel(t *testing.T) {
	var gotReq chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(chatOKBody("ok")))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	_, err := client.CompleteModel(context.Background(), "another-model", []Message{{Role: "user", Content: "hi"}})

	require.NoError(t, err)
	assert.Equal(t, "another-model", gotReq.Model)
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   bool
	}{
		{"key 有效", http.StatusOK, true},
		{"key 无效", http.StatusUnauthorized, false},
		{"服务端故障", http.StatusInternalServerError, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/models", r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			client := newTestClient(srv.URL)
			assert.Equal(t, tt.want, client.ValidateKey(context.Background()))
		})
	}
}

func TestValidateKey_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := newTestClient(srv.URL)
	assert.False(t, client.ValidateKey(context.Background()))
}

func TestListModels(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"model-a"},{"id":"model-b"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	models, err := client.ListModels(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"model-a", "model-b"}, models)
}

func TestErrorString(t *testing.T) {
	err := classifyStatus(http.StatusTooManyRequests, "slow down", "3")
	assert.Equal(t, KindRateLimited, err.Kind)
	assert.Contains(t, err.Error(), "429")
}
