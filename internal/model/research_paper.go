package model

import "time"

// ResearchPaper 教师科研论文表 — 对应 research_papers
// 新建时 approval_status 必为 pending，只能由管理员审批流转
type ResearchPaper struct {
	ID                  string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	LecturerID          string      `gorm:"type:uuid;not null"                             json:"lecturer_id"`
	Title               string      `gorm:"type:text;not null"                             json:"title"`
	Abstract            string      `gorm:"type:text;not null"                             json:"abstract"`
	Authors             StringArray `gorm:"type:text[]"                                    json:"authors,omitempty"`
	Keywords            StringArray `gorm:"type:text[]"                                    json:"keywords,omitempty"`
	JournalOrConference *string     `gorm:"type:varchar(255)"                              json:"journal_or_conference,omitempty"`
	PublicationDate     *time.Time  `gorm:"type:date"                                      json:"publication_date,omitempty"`
	FileURL             *string     `gorm:"type:text"                                      json:"file_url,omitempty"`
	ApprovalStatus      string      `gorm:"type:varchar(20);not null;default:'pending'"    json:"approval_status"`
	CreatedAt           time.Time   `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`

	// 关联
	Lecturer *Lecturer `gorm:"foreignKey:LecturerID;references:ID" json:"lecturer,omitempty"`
}

// TableName 指定表名
func (ResearchPaper) TableName() string { return "research_papers" }
