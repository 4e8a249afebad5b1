// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"os"

	"chatbot-platform/internal/model"
	"chatbot-platform/internal/repository"
)

// ErrProjectNotFound 项目不存在或不属于当前用户
// 对调用方来说两种情况不做区分，避免泄露其他用户的项目是否存在
var ErrProjectNotFound = errors.New("项目不存在")

// ProjectService 项目服务
// 处理项目的增删改查，删除时级联清理提示词、消息和文件
type ProjectService struct {
	projectRepo *repository.ProjectRepository
	fileRepo    *repository.FileRepository
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(projectRepo *repository.ProjectRepository, fileRepo *repository.FileRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
	}
}

// CreateRequest 创建项目请求
type CreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"` // 项目名称
}

// Create 创建项目
// 参数:
//   - ctx: 上下文
//   - userID: 所属用户ID
//   - req: 创建请求
//
// 返回:
//   - *model.Project: 新建的项目
//   - error: 数据库错误
func (s *ProjectService) Create(ctx context.Context, userID int64, req *CreateRequest) (*model.Project, error) {
	project := &model.Project{
		UserID: userID,
		Name:   req.Name,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Get 获取用户的单个项目
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - *model.Project: 项目对象
//   - error: 项目不存在或不属于该用户返回 ErrProjectNotFound
func (s *ProjectService) Get(ctx context.Context, userID, projectID int64) (*model.Project, error) {
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

// List 获取用户的所有项目
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - []model.Project: 项目列表，按创建时间倒序
//   - error: 数据库错误
func (s *ProjectService) List(ctx context.Context, userID int64) ([]model.Project, error) {
	return s.projectRepo.ListByUser(ctx, userID)
}

// UpdateRequest 更新项目请求
type UpdateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"` // 新的项目名称
}

// Update 重命名项目
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - req: 更新请求
//
// 返回:
//   - *model.Project: 更新后的项目
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *ProjectService) Update(ctx context.Context, userID, projectID int64, req *UpdateRequest) (*model.Project, error) {
	project, err := s.Get(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}

	project.Name = req.Name
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete 删除项目及其全部关联数据
// 数据库记录在事务里删除，磁盘上的文件随后清理
// 磁盘清理失败不回滚数据库删除，只留下孤儿文件
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *ProjectService) Delete(ctx context.Context, userID, projectID int64) error {
	// 1. 确认项目属于该用户
	if _, err := s.Get(ctx, userID, projectID); err != nil {
		return err
	}

	// 2. 先取出文件记录，数据库删除后就查不到了
	files, err := s.fileRepo.ListByProject(ctx, projectID)
	if err != nil {
		return err
	}

	// 3. 删除数据库记录（级联删除提示词、消息、文件记录）
	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		return err
	}

	// 4. 清理磁盘上的实际文件
	for _, f := range files {
		// 文件可能已被手动删除，忽略不存在的错误
		_ = os.Remove(f.FilePath)
	}
	return nil
}
