// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chatbot-platform/internal/model"
)

// ProjectRepository 项目数据访问层
// 负责项目相关的所有数据库操作
// 所有查询都带上 user_id 条件，保证用户只能访问自己的项目
type ProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository 创建 ProjectRepository 实例
func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create 创建新项目
// 参数:
//   - ctx: 上下文
//   - project: 项目对象，ID 和时间字段会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *ProjectRepository) Create(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByIDAndUser 获取指定用户的项目
// 项目不属于该用户时视同不存在
// 参数:
//   - ctx: 上下文
//   - id: 项目ID
//   - userID: 用户ID
//
// 返回:
//   - *model.Project: 项目对象，如果未找到返回 nil
//   - error: 数据库错误
func (r *ProjectRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.Project, error) {
	var project model.Project
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &project, nil
}

// ListByUser 获取用户的所有项目
// 按创建时间倒序排列（最新的在前）
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Project: 项目列表
//   - error: 数据库错误
func (r *ProjectRepository) ListByUser(ctx context.Context, userID int64) ([]model.Project, error) {
	var projects []model.Project
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

// Update 更新项目信息
// 参数:
//   - ctx: 上下文
//   - project: 包含要更新字段的项目对象，必须包含 ID
//
// 返回:
//   - error: 数据库错误
func (r *ProjectRepository) Update(ctx context.Context, project *model.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete 删除项目及其全部关联数据
// 在一个事务里级联删除提示词、消息和文件记录
// 数据库层也配置了外键级联，这里显式删除是为了兼容不支持外键的存储
// 参数:
//   - ctx: 上下文
//   - id: 项目ID
//
// 返回:
//   - error: 数据库错误
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.Prompt{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&model.File{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Project{}, id).Error
	})
}

// CountByUser 统计用户的项目数量
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - int64: 项目数量
//   - error: 数据库错误
func (r *ProjectRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Project{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
