// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chatbot-platform/internal/middleware"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/response"
)

// FileHandler 文件请求处理器
// 处理项目文件的上传、下载、列表和删除
type FileHandler struct {
	fileService *service.FileService
}

// NewFileHandler 创建 FileHandler 实例
func NewFileHandler(fileService *service.FileService) *FileHandler {
	return &FileHandler{
		fileService: fileService,
	}
}

// parseFileID 从路径参数解析文件 ID
func parseFileID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("file_id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的文件ID")
		return 0, false
	}
	return id, true
}

// Upload 上传文件到项目
// @Summary 上传文件到项目
// @Tags 文件
// @Security Bearer
// @Accept multipart/form-data
// @Produce json
// @Param id path int true "项目ID"
// @Param file formData file true "文件"
// @Success 200 {object} response.Response{data=model.File}
// @Router /api/v1/projects/{id}/files [post]
func (h *FileHandler) Upload(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "请选择要上传的文件")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		response.InternalError(c, "读取上传文件失败")
		return
	}
	defer src.Close()

	userID := middleware.GetUserID(c)
	file, err := h.fileService.Upload(
		c.Request.Context(),
		userID,
		projectID,
		fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"),
		fileHeader.Size,
		src,
	)
	if err != nil {
		switch err {
		case service.ErrProjectNotFound:
			response.ProjectNotFound(c)
		case service.ErrFileTooLarge:
			response.FileTooLarge(c)
		default:
			response.InternalError(c, "文件上传失败")
		}
		return
	}

	response.Created(c, file)
}

// List 获取项目的文件列表
// @Summary 获取项目的文件列表
// @Tags 文件
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response{data=[]model.File}
// @Router /api/v1/projects/{id}/files [get]
func (h *FileHandler) List(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	files, err := h.fileService.List(c.Request.Context(), userID, projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "获取文件列表失败")
		return
	}

	response.Success(c, files)
}

// Download 下载文件
// @Summary 下载项目中的文件
// @Tags 文件
// @Security Bearer
// @Produce octet-stream
// @Param id path int true "项目ID"
// @Param file_id path int true "文件ID"
// @Success 200 {file} binary
// @Router /api/v1/projects/{id}/files/{file_id} [get]
func (h *FileHandler) Download(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	file, err := h.fileService.Get(c.Request.Context(), userID, projectID, fileID)
	if err != nil {
		switch err {
		case service.ErrProjectNotFound:
			response.ProjectNotFound(c)
		case service.ErrFileNotFound:
			response.FileNotFound(c)
		default:
			response.InternalError(c, "获取文件失败")
		}
		return
	}

	// 用原始文件名作为下载名，磁盘路径不暴露给客户端
	c.FileAttachment(file.FilePath, file.Filename)
}

// Delete 删除文件
// @Summary 删除项目中的文件
// @Tags 文件
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Param file_id path int true "文件ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id}/files/{file_id} [delete]
func (h *FileHandler) Delete(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}
	fileID, ok := parseFileID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.fileService.Delete(c.Request.Context(), userID, projectID, fileID); err != nil {
		switch err {
		case service.ErrProjectNotFound:
			response.ProjectNotFound(c)
		case service.ErrFileNotFound:
			response.FileNotFound(c)
		default:
			response.InternalError(c, "删除文件失败")
		}
		return
	}

	response.SuccessWithMessage(c, "文件已删除", nil)
}
