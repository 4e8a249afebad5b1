package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	// 空目录，没有配置文件，全部走默认值
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "localhost", cfg.MySQL.Host)
	assert.Equal(t, 3306, cfg.MySQL.Port)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWT.AccessExpire)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshExpire)

	// LLM 默认配置
	assert.Equal(t, "x-ai/grok-4-fast:free", cfg.LLM.Model)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, 1000, cfg.LLM.MaxTokens)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
	assert.Equal(t, DefaultSystemPrompt, cfg.LLM.DefaultSystemPrompt)

	// 上传默认配置
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(10*1024*1024), cfg.Upload.MaxFileSize)
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
  mode: release
llm:
  model: some/other-model
  max_tokens: 500
upload:
  max_file_size: 1024
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "release", cfg.Server.Mode)
	assert.Equal(t, "some/other-model", cfg.LLM.Model)
	assert.Equal(t, 500, cfg.LLM.MaxTokens)
	assert.Equal(t, int64(1024), cfg.Upload.MaxFileSize)

	// 没写的配置项仍用默认值
	assert.Equal(t, "localhost", cfg.MySQL.Host)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.001)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OPENROUTER_API_KEY", "sk-from-env")
	t.Setenv("OPENROUTER_MODEL", "env/model")
	t.Setenv("MYSQL_HOST", "db.internal")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sk-from-env", cfg.LLM.APIKey)
	assert.Equal(t, "env/model", cfg.LLM.Model)
	assert.Equal(t, "db.internal", cfg.MySQL.Host)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
