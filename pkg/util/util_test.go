package util

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("secret123")
	require.NoError(t, err)
	require.NotEmpty(t, hash)
	// bcrypt 每次加盐，哈希不等于原文
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, CheckPassword("secret123", hash))
	assert.False(t, CheckPassword("wrong", hash))
	assert.False(t, CheckPassword("secret123", "not-a-hash"))
}

func TestGenerateStoredFilename(t *testing.T) {
	name := GenerateStoredFilename("report.final.PDF")

	// 保留原始扩展名，主体替换为 UUID
	assert.Equal(t, ".PDF", filepath.Ext(name))
	assert.NotContains(t, name, "report")
	assert.NotContains(t, name, string(filepath.Separator))

	// 无扩展名的文件也能处理
	bare := GenerateStoredFilename("README")
	assert.Empty(t, filepath.Ext(bare))
	assert.NotEmpty(t, bare)

	// 两次生成不重名
	assert.NotEqual(t, GenerateStoredFilename("a.txt"), GenerateStoredFilename("a.txt"))
}

func TestGenerateUUID(t *testing.T) {
	id := GenerateUUID()
	assert.Len(t, id, 32)
	assert.False(t, strings.Contains(id, "-"))
	assert.NotEqual(t, id, GenerateUUID())
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "hello", TruncateString("hello", 10))
	assert.Equal(t, "hello...", TruncateString("hello world", 8))
	// maxLen 太小放不下省略号时直接硬截断
	assert.Equal(t, "hel", TruncateString("hello world", 3))
	assert.Equal(t, "", TruncateString("", 5))
}
