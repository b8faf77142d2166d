package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// ProjectHandler 系级项目模块 HTTP 处理器
type ProjectHandler struct {
	projectSvc service.ProjectService
}

// NewProjectHandler 创建 ProjectHandler
func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

// Submit 提交项目（教师）
// POST /api/v1/department-projects
func (h *ProjectHandler) Submit(c *gin.Context) {
	var req dto.SubmitProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	project, err := h.projectSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, project)
}

// Review 审批项目（管理员）
// PUT /api/v1/department-projects/:id/review
func (h *ProjectHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.projectSvc.Review(c.Request.Context(), c.Param("id"), req.Decision); err != nil {
		if errors.Is(err, service.ErrProjectNotFound) {
			response.NotFound(c, 30002, "项目不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ListPending 待审批项目列表（管理员）
// GET /api/v1/department-projects/pending
func (h *ProjectHandler) ListPending(c *gin.Context) {
	projects, err := h.projectSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, projects)
}

// ListAll 全部项目（教师看板）
// GET /api/v1/department-projects
func (h *ProjectHandler) ListAll(c *gin.Context) {
	projects, err := h.projectSvc.ListAll(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, projects)
}

// ListPublic 公开项目列表（无需认证，含状态计数）
// GET /api/v1/projects
func (h *ProjectHandler) ListPublic(c *gin.Context) {
	var req dto.ProjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	result, err := h.projectSvc.ListPublic(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}
