package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// PaperHandler 科研论文模块 HTTP 处理器
type PaperHandler struct {
	paperSvc service.PaperService
}

// NewPaperHandler 创建 PaperHandler
func NewPaperHandler(paperSvc service.PaperService) *PaperHandler {
	return &PaperHandler{paperSvc: paperSvc}
}

// Submit 提交科研论文（教师）
// POST /api/v1/papers
func (h *PaperHandler) Submit(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitResearchPaperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	paper, err := h.paperSvc.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, service.ErrLecturerProfileNotFound) {
			response.NotFound(c, 30001, "教师档案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, paper)
}

// Review 审批论文（管理员）
// PUT /api/v1/papers/:id/review
func (h *PaperHandler) Review(c *gin.Context) {
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

// ListPending 待审批论文列表（管理员）
// GET /api/v1/papers/pending
func (h *PaperHandler) ListPending(c *gin.Context) {
	papers, err := h.paperSvc.ListPending(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, papers)
}

// ListMine 当前教师名下论文
// GET /api/v1/papers/mine
func (h *PaperHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	papers, err := h.paperSvc.ListMine(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrLecturerProfileNotFound) {
			response.NotFound(c, 30001, "教师档案不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, papers)
}

// ListPublic 公开科研论文列表（无需认证）
// GET /api/v1/research
func (h *PaperHandler) ListPublic(c *gin.Context) {
	var req dto.ResearchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	papers, err := h.paperSvc.ListPublic(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, papers)
}
