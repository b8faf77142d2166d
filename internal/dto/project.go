package dto

// ── 项目模块 DTO ──

// SubmitProjectRequest 提交系级项目请求
type SubmitProjectRequest struct {
	Title        string `json:"title"        binding:"required"`
	Description  string `json:"description"  binding:"required"`
	Technologies string `json:"technologies" binding:"omitempty,max=500"`
	TeamMembers  string `json:"team_members" binding:"omitempty,max=500"`
	GithubURL    string `json:"github_url"   binding:"omitempty,url"`
	ProjectURL   string `json:"project_url"  binding:"omitempty,url"`
	StartDate    string `json:"start_date"   binding:"omitempty,datetime=2006-01-02"`
	Status       string `json:"status"       binding:"omitempty,oneof=active completed paused planning"`
}

// ProjectListRequest 公开项目列表查询参数
type ProjectListRequest struct {
	Search string `form:"search" binding:"omitempty,max=100"`
	Status string `form:"status" binding:"omitempty,oneof=active completed paused planning"`
}

// ProjectResponse 项目响应
type ProjectResponse struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Technologies   []string `json:"technologies,omitempty"`
	TeamMembers    []string `json:"team_members,omitempty"`
	GithubURL      string   `json:"github_url,omitempty"`
	ProjectURL     string   `json:"project_url,omitempty"`
	StartDate      string   `json:"start_date,omitempty"`
	Status         string   `json:"status"`
	ApprovalStatus string   `json:"approval_status"`
	CreatedAt      string   `json:"created_at"`
}

// ProjectListResponse 公开项目列表响应（含各生命周期状态计数）
type ProjectListResponse struct {
	List         []ProjectResponse `json:"list"`
	StatusCounts map[string]int    `json:"status_counts"`
}
