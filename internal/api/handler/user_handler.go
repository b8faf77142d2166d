package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/service"
	"dept-portal/backend/pkg/response"
)

// UserHandler 用户管理模块 HTTP 处理器
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler 创建 UserHandler
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers 全量用户列表（管理员，含角色集）
// GET /api/v1/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userSvc.ListUsersWithRoles(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, users)
}

// ReviewUser 审批账号（管理员）
// PUT /api/v1/users/:id/review
func (h *UserHandler) ReviewUser(c *gin.Context) {
	var req dto.ReviewUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.ReviewUser(c.Request.Context(), c.Param("id"), req.Decision); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, "用户不存在")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, nil)
}

// AssignRole 分配角色（管理员）
// POST /api/v1/users/:id/roles
func (h *UserHandler) AssignRole(c *gin.Context) {
	var req dto.AssignRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.userSvc.AssignRole(c.Request.Context(), c.Param("id"), &req); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		case errors.Is(err, service.ErrRoleAlreadyAssigned):
			response.Conflict(c, 20002, "该角色已分配给此用户")
		case errors.Is(err, service.ErrUserNotApproved):
			response.Conflict(c, 20005, "账号未通过审批，不能分配角色")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, nil)
}

// UpdateStudentProfile 学生更新本人档案
// PUT /api/v1/students/me/profile
func (h *UserHandler) UpdateStudentProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	user, err := h.userSvc.UpdateStudentProfile(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, "用户不存在")
		case errors.Is(err, service.ErrMatricNumberTaken):
			response.Conflict(c, 20003, "该学号已被其他用户占用")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}
