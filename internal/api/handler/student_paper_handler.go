package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// StudentPaperHandler 学生论文模块 HTTP 处理器
type StudentPaperHandler struct {
	paperSvc service.StudentPaperService
}

// NewStudentPaperHandler 创建 StudentPaperHandler
func NewStudentPaperHandler(paperSvc service.StudentPaperService) *StudentPaperHandler {
	return &StudentPaperHandler{paperSvc: paperSvc}
}

// Submit 提交学生论文
// POST /api/v1/student-papers
func (h *StudentPaperHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitStudentPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	paper, err := h.paperSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrSupervisorNotFound) {
			response.NotFound(c, 30001, "指导教师不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, paper)
}

// Review 审批学生论文（管理员）
// PUT /api/v1/student-papers/:id/review
func (h *StudentPaperHandler) Review(c *gin.Context) {
	var req dto.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.paperSvc.Review(c.Request.Context(), c.Param("id"), req.Decision); err != nil {
		if errors.Is(err, service.ErrPaperNotFound) {
			response.NotFound(c, 30002, "论文不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// ListPending 待审批学生论文列表（管理员）
// GET /api/v1/student-papers/pending
func (h *StudentPaperHandler) ListPending(c *gin.Context) {
	papers, err := h.paperSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, papers)
}

// ListMine 当前学生名下论文
// GET /api/v1/student-papers/mine
func (h *StudentPaperHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	papers, err := h.paperSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, papers)
}
