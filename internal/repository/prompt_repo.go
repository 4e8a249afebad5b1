// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chatbot-platform/internal/model"
)

// PromptRepository 系统提示词数据访问层
// 提示词只追加不修改，历史版本全部保留
type PromptRepository struct {
	db *gorm.DB
}

// NewPromptRepository 创建 PromptRepository 实例
func NewPromptRepository(db *gorm.DB) *PromptRepository {
	return &PromptRepository{db: db}
}

// Create 追加一条新的提示词
// 新提示词创建后立即成为项目的当前提示词
// 参数:
//   - ctx: 上下文
//   - prompt: 提示词对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *PromptRepository) Create(ctx context.Context, prompt *model.Prompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

// ListByProject 获取项目的全部提示词历史
// 按创建时间倒序排列（最新的在前）
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - []model.Prompt: 提示词列表
//   - error: 数据库错误
func (r *PromptRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Prompt, error) {
	var prompts []model.Prompt
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		Find(&prompts).Error
	return prompts, err
}

// GetCurrent 获取项目的当前提示词
// 当前提示词 = 创建时间最新的一条，时间相同时取 ID 更大的
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - *model.Prompt: 当前提示词，项目没有提示词时返回 nil
//   - error: 数据库错误
func (r *PromptRepository) GetCurrent(ctx context.Context, projectID int64) (*model.Prompt, error) {
	var prompt model.Prompt
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC, id DESC").
		First(&prompt).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prompt, nil
}
