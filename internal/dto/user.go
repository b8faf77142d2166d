package dto

// ── 用户模块 DTO ──

// UserResponse 用户信息响应（含角色集）
type UserResponse struct {
	ID           string   `json:"id"`
	DisplayName  string   `json:"display_name"`
	Email        string   `json:"email"`
	MatricNumber string   `json:"matric_number,omitempty"`
	Status       string   `json:"status"`
	Roles        []string `json:"roles"`
	CreatedAt    string   `json:"created_at"`
}

// ReviewUserRequest 账号审批请求
type ReviewUserRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
}

// AssignRoleRequest 分配角色请求
type AssignRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin lecturer student"`
}

// UpdateStudentProfileRequest 学生档案更新请求（upsert 语义）
type UpdateStudentProfileRequest struct {
	DisplayName  string `json:"display_name"  binding:"required,max=100"`
	MatricNumber string `json:"matric_number" binding:"required,max=30"`
}
