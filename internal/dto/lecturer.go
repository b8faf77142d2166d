package dto

// ── 教师模块 DTO ──

// LecturerResponse 教师档案响应
type LecturerResponse struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Email             string   `json:"email,omitempty"`
	Title             string   `json:"title,omitempty"`
	ResearchInterests []string `json:"research_interests,omitempty"`
}

// LecturerOption 下拉选择用的教师简要信息（学生选指导教师）
type LecturerOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
