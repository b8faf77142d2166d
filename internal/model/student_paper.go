package model

import "time"

// StudentPaper 学生论文表 — 对应 student_papers
// 归属于提交学生（user_id），可选关联指导教师
type StudentPaper struct {
	ID                  string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID              string      `gorm:"type:uuid;not null"                             json:"user_id"`
	SupervisorID        *string     `gorm:"type:uuid"                                      json:"supervisor_id,omitempty"`
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
	Supervisor *Lecturer `gorm:"foreignKey:SupervisorID;references:ID" json:"supervisor,omitempty"`
}

// TableName 指定表名
func (StudentPaper) TableName() string { return "student_papers" }
