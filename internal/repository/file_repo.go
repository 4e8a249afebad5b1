// Package repository 提供数据访问层的实现
package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"chatbot-platform/internal/model"
)

// FileRepository 文件元数据访问层
// 只负责数据库里的文件记录，磁盘上的实际文件由 service 层管理
type FileRepository struct {
	db *gorm.DB
}

// NewFileRepository 创建 FileRepository 实例
func NewFileRepository(db *gorm.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create 创建文件记录
// 参数:
//   - ctx: 上下文
//   - file: 文件对象，ID 和 CreatedAt 会被自动填充
//
// 返回:
//   - error: 数据库错误
func (r *FileRepository) Create(ctx context.Context, file *model.File) error {
	return r.db.WithContext(ctx).Create(file).Error
}

// GetByIDAndProject 获取项目下的指定文件
// 文件不属于该项目时视同不存在
// 参数:
//   - ctx: 上下文
//   - id: 文件ID
//   - projectID: 项目ID
//
// 返回:
//   - *model.File: 文件对象，如果未找到返回 nil
//   - error: 数据库错误
func (r *FileRepository) GetByIDAndProject(ctx context.Context, id, projectID int64) (*model.File, error) {
	var file model.File
	err := r.db.WithContext(ctx).Where("id = ? AND project_id = ?", id, projectID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &file, nil
}

// ListByProject 获取项目的所有文件记录
// 按上传时间倒序排列（最新的在前）
// 参数:
//   - ctx: 上下文
//   - projectID: 项目ID
//
// 返回:
//   - []model.File: 文件列表
//   - error: 数据库错误
func (r *FileRepository) ListByProject(ctx context.Context, projectID int64) ([]model.File, error) {
	var files []model.File
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&files).Error
	return files, err
}

// Delete 删除文件记录
// 参数:
//   - ctx: 上下文
//   - id: 文件ID
//
// 返回:
//   - error: 数据库错误
func (r *FileRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.File{}, id).Error
}
