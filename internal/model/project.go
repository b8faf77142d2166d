package model

import "time"

// 项目生命周期状态（区别于审批状态，是对外展示的分面）
const (
	ProjectActive    = "active"
	ProjectCompleted = "completed"
	ProjectPaused    = "paused"
	ProjectPlanning  = "planning"
)

// ValidProjectStatus 判断项目生命周期状态是否合法
func ValidProjectStatus(status string) bool {
	switch status {
	case ProjectActive, ProjectCompleted, ProjectPaused, ProjectPlanning:
		return true
	}
	return false
}

// DepartmentProject 系级项目表 — 对应 department_projects
// 无归属人：项目属于系，不属于某个提交者
type DepartmentProject struct {
	ID             string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title          string      `gorm:"type:text;not null"                             json:"title"`
	Description    string      `gorm:"type:text;not null"                             json:"description"`
	Technologies   StringArray `gorm:"type:text[]"                                    json:"technologies,omitempty"`
	TeamMembers    StringArray `gorm:"type:text[]"                                    json:"team_members,omitempty"`
	GithubURL      *string     `gorm:"type:text"                                      json:"github_url,omitempty"`
	ProjectURL     *string     `gorm:"type:text"                                      json:"project_url,omitempty"`
	StartDate      *time.Time  `gorm:"type:date"                                      json:"start_date,omitempty"`
	Status         string      `gorm:"type:varchar(20);not null;default:'active'"     json:"status"`
	ApprovalStatus string      `gorm:"type:varchar(20);not null;default:'pending'"    json:"approval_status"`
	CreatedAt      time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (DepartmentProject) TableName() string { return "department_projects" }
