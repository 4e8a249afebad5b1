// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"chatbot-platform/internal/model"
	"chatbot-platform/internal/repository"
)

// PromptService 系统提示词服务
// 提示词只追加不修改，最新的一条即项目的当前提示词
type PromptService struct {
	projectRepo *repository.ProjectRepository
	promptRepo  *repository.PromptRepository
}

// NewPromptService 创建 PromptService 实例
func NewPromptService(projectRepo *repository.ProjectRepository, promptRepo *repository.PromptRepository) *PromptService {
	return &PromptService{
		projectRepo: projectRepo,
		promptRepo:  promptRepo,
	}
}

// SetPromptRequest 设置提示词请求
type SetPromptRequest struct {
	Text string `json:"text" binding:"required,min=1"` // 提示词内容
}

// Set 为项目追加一条新的提示词
// 新提示词立即生效，旧版本保留在历史里
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - req: 设置请求
//
// 返回:
//   - *model.Prompt: 新建的提示词
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *PromptService) Set(ctx context.Context, userID, projectID int64, req *SetPromptRequest) (*model.Prompt, error) {
	// 确认项目属于该用户
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	prompt := &model.Prompt{
		ProjectID: projectID,
		Text:      req.Text,
	}
	if err := s.promptRepo.Create(ctx, prompt); err != nil {
		return nil, err
	}
	return prompt, nil
}

// GetCurrent 获取项目的当前提示词
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - *model.Prompt: 当前提示词，项目没有设置过时返回 nil
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *PromptService) GetCurrent(ctx context.Context, userID, projectID int64) (*model.Prompt, error) {
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return s.promptRepo.GetCurrent(ctx, projectID)
}

// History 获取项目的提示词历史
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - []model.Prompt: 提示词列表，按创建时间倒序
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *PromptService) History(ctx context.Context, userID, projectID int64) ([]model.Prompt, error) {
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return s.promptRepo.ListByProject(ctx, projectID)
}
