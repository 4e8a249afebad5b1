// Package repository 提供数据访问层的实现
package repository

import (
	"context"

	"gorm.io/gorm"

	"chatbot-platform/internal/model"
)

// MessageRepository 消息数据访问层
// 负责对话消息相关的所有数据库操作
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建 MessageRepository 实例
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create 创建新消息
// 参数:
//   - ctx: 上下文
//   - message: 消息对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) Create(ctx context.Context, message *model.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// ListByProject 获取项目的所有消息
// 按创建时间正序排列（最早的在前），时间相同时按 ID 正序
// 这个顺序就是发给模型的上下文顺序
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - []model.Message: 消息列表
//   - error: 数据库错误
func (r *MessageRepository) ListByProject(ctx context.Context, projectID int64) ([]model.Message, error) {
	var messages []model.Message
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	return messages, err
}

// CountByProject 统计项目的消息数量
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - int64: 消息数量
//   - error: 数据库错误
func (r *MessageRepository) CountByProject(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Message{}).Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// DeleteByProject 删除项目的所有消息
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - error: 数据库错误
func (r *MessageRepository) DeleteByProject(ctx context.Context, projectID int64) error {
	return r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&model.Message{}).Error
}
