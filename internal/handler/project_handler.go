// Package handler 提供 HTTP 请求处理器
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"chatbot-platform/internal/middleware"
	"chatbot-platform/internal/service"
	"chatbot-platform/pkg/response"
)

// ProjectHandler 项目请求处理器
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler 实例
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// parseProjectID 从路径参数解析项目 ID
// 解析失败时已写入 400 响应，调用方直接 return 即可
func parseProjectID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.BadRequest(c, "无效的项目ID")
		return 0, false
	}
	return id, true
}

// Create 创建项目
// @Summary 创建项目
// @Tags 项目
// @Security Bearer
// @Accept json
// @Produce json
// @Param body body service.CreateRequest true "项目信息"
// @Success 200 {object} response.Response{data=model.Project}
// @Router /api/v1/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	project, err := h.projectService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		response.InternalError(c, "创建项目失败")
		return
	}

	response.Created(c, project)
}

// List 获取项目列表
// @Summary 获取当前用户的项目列表
// @Tags 项目
// @Security Bearer
// @Produce json
// @Success 200 {object} response.Response{data=[]model.Project}
// @Router /api/v1/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	userID := middleware.GetUserID(c)

	projects, err := h.projectService.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c, "获取项目列表失败")
		return
	}

	response.Success(c, projects)
}

// Get 获取项目详情
// @Summary 获取项目详情
// @Tags 项目
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response{data=model.Project}
// @Router /api/v1/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	project, err := h.projectService.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "获取项目失败")
		return
	}

	response.Success(c, project)
}

// Update 重命名项目
// @Summary 重命名项目
// @Tags 项目
// @Security Bearer
// @Accept json
// @Produce json
// @Param id path int true "项目ID"
// @Param body body service.UpdateRequest true "新的项目信息"
// @Success 200 {object} response.Response{data=model.Project}
// @Router /api/v1/projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	var req service.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数错误: "+err.Error())
		return
	}

	userID := middleware.GetUserID(c)
	project, err := h.projectService.Update(c.Request.Context(), userID, projectID, &req)
	if err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "更新项目失败")
		return
	}

	response.Success(c, project)
}

// Delete 删除项目
// @Summary 删除项目及其全部数据
// @Tags 项目
// @Security Bearer
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} response.Response
// @Router /api/v1/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	projectID, ok := parseProjectID(c)
	if !ok {
		return
	}

	userID := middleware.GetUserID(c)
	if err := h.projectService.Delete(c.Request.Context(), userID, projectID); err != nil {
		if err == service.ErrProjectNotFound {
			response.ProjectNotFound(c)
			return
		}
		response.InternalError(c, "删除项目失败")
		return
	}

	response.SuccessWithMessage(c, "项目已删除", nil)
}
