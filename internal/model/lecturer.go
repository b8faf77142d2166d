package model

// Lecturer 教师档案表 — 对应 lecturers
// 首次分配 lecturer 角色时自动创建，user_id 唯一保证不重复建档
type Lecturer struct {
	ID                string      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID            string      `gorm:"type:uuid;not null;unique"                      json:"user_id"`
	Name              string      `gorm:"type:varchar(100);not null"                     json:"name"`
	Email             *string     `gorm:"type:varchar(255)"                              json:"email,omitempty"`
	Title             *string     `gorm:"type:varchar(100)"                              json:"title,omitempty"`
	ResearchInterests StringArray `gorm:"type:text[]"                                    json:"research_interests,omitempty"`
	BaseModel
}

// TableName 指定表名
func (Lecturer) TableName() string { return "lecturers" }
