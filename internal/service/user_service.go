// Package service 提供业务逻辑层的实现
package service

import (
	"context"

	"chatbot-platform/internal/model"
	"chatbot-platform/internal/repository"
)

// UserService 用户服务
// 处理当前用户信息的查询
type UserService struct {
	userRepo *repository.UserRepository
}

// NewUserService 创建 UserService 实例
func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetByID 获取用户信息
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//
// 返回:
//   - *model.User: 用户对象
//   - error: 用户不存在返回 ErrUserNotFound
func (s *UserService) GetByID(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
