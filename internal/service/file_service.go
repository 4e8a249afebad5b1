// Package service 提供业务逻辑层的实现
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chatbot-platform/internal/model"
	"chatbot-platform/internal/repository"
	"chatbot-platform/pkg/util"
)

// 定义业务错误
var (
	ErrFileNotFound = errors.New("文件不存在")
	ErrFileTooLarge = errors.New("文件大小超出限制")
)

// FileService 文件服务
// 元数据存数据库，文件内容存本地磁盘
// 磁盘文件名用 UUID 重新生成，避免路径穿越和重名覆盖
type FileService struct {
	projectRepo *repository.ProjectRepository
	fileRepo    *repository.FileRepository
	uploadDir   string // 上传根目录
	maxSize     int64  // 单文件大小上限（字节）
}

// NewFileService 创建 FileService 实例
// 参数:
//   - projectRepo: 项目数据访问层
//   - fileRepo: 文件数据访问层
//   - uploadDir: 上传根目录，不存在时自动创建
//   - maxSize: 单文件大小上限（字节）
//
// 返回:
//   - *FileService: 文件服务实例
//   - error: 目录创建失败
func NewFileService(projectRepo *repository.ProjectRepository, fileRepo *repository.FileRepository, uploadDir string, maxSize int64) (*FileService, error) {
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileService{
		projectRepo: projectRepo,
		fileRepo:    fileRepo,
		uploadDir:   uploadDir,
		maxSize:     maxSize,
	}, nil
}

// Upload 上传文件到项目
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - filename: 原始文件名，仅作展示用
//   - contentType: MIME 类型
//   - size: 声明的文件大小
//   - reader: 文件内容
//
// 返回:
//   - *model.File: 文件记录
//   - error: ErrProjectNotFound / ErrFileTooLarge / IO 错误
func (s *FileService) Upload(ctx context.Context, userID, projectID int64, filename, contentType string, size int64, reader io.Reader) (*model.File, error) {
	// 1. 确认项目属于该用户
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	// 2. 检查大小限制
	if size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	// 3. 生成磁盘文件名并写入
	storedName := util.GenerateStoredFilename(filename)
	filePath := filepath.Join(s.uploadDir, storedName)

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, err
	}
	// LimitReader 兜底：声明的大小不可信，按上限多读一个字节来判断超限
	written, err := io.Copy(dst, io.LimitReader(reader, s.maxSize+1))
	closeErr := dst.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(filePath)
		return nil, err
	}
	if written > s.maxSize {
		_ = os.Remove(filePath)
		return nil, ErrFileTooLarge
	}

	// 4. 写入文件记录
	file := &model.File{
		ProjectID:   projectID,
		Filename:    filename,
		StoredName:  storedName,
		FilePath:    filePath,
		FileSize:    written,
		ContentType: contentType,
	}
	if err := s.fileRepo.Create(ctx, file); err != nil {
		// 记录写失败时清理磁盘文件，保持两边一致
		_ = os.Remove(filePath)
		return nil, err
	}
	return file, nil
}

// List 获取项目的文件列表
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//
// 返回:
//   - []model.File: 文件列表，按上传时间倒序
//   - error: 项目不存在返回 ErrProjectNotFound
func (s *FileService) List(ctx context.Context, userID, projectID int64) ([]model.File, error) {
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	return s.fileRepo.ListByProject(ctx, projectID)
}

// Get 获取单个文件记录
// 用于下载时定位磁盘路径
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - fileID: 文件ID
//
// 返回:
//   - *model.File: 文件记录
//   - error: ErrProjectNotFound / ErrFileNotFound
func (s *FileService) Get(ctx context.Context, userID, projectID, fileID int64) (*model.File, error) {
	project, err := s.projectRepo.GetByIDAndUser(ctx, projectID, userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	file, err := s.fileRepo.GetByIDAndProject(ctx, fileID, projectID)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, ErrFileNotFound
	}
	return file, nil
}

// Delete 删除文件
// 先删数据库记录，再删磁盘文件
// 参数:
//   - ctx: 上下文
//   - userID: 用户ID
//   - projectID: 项目ID
//   - fileID: 文件ID
//
// 返回:
//   - error: ErrProjectNotFound / ErrFileNotFound / 数据库错误
func (s *FileService) Delete(ctx context.Context, userID, projectID, fileID int64) error {
	file, err := s.Get(ctx, userID, projectID, fileID)
	if err != nil {
		return err
	}

	if err := s.fileRepo.Delete(ctx, file.ID); err != nil {
		return err
	}

	// 磁盘文件可能已不存在，忽略删除错误
	_ = os.Remove(file.FilePath)
	return nil
}
