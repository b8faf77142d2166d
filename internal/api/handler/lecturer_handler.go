package handler

import (
	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// LecturerHandler 教师展示模块 HTTP 处理器
type LecturerHandler struct {
	lecturerSvc service.LecturerService
}

// NewLecturerHandler 创建 LecturerHandler
func NewLecturerHandler(lecturerSvc service.LecturerService) *LecturerHandler {
	return &LecturerHandler{lecturerSvc: lecturerSvc}
}

// List 公开教师名录（无需认证）
// GET /api/v1/lecturers
func (h *LecturerHandler) List(c *gin.Context) {
	lecturers, err := h.lecturerSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, lecturers)
}

// Options 指导教师下拉选项（学生提交论文用）
// GET /api/v1/lecturers/options
func (h *LecturerHandler) Options(c *gin.Context) {
	options, err := h.lecturerSvc.Options(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, options)
}
