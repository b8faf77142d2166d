package model

// Profile 用户档案表 — 对应 profiles
// 注册即创建，status 初始为 pending，由管理员审批
type Profile struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	DisplayName  string  `gorm:"type:varchar(100)"                              json:"display_name"`
	Email        string  `gorm:"type:varchar(255);not null;unique"              json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	MatricNumber *string `gorm:"type:varchar(30);unique"                        json:"matric_number,omitempty"`
	Status       string  `gorm:"type:varchar(20);not null;default:'pending'"    json:"status"`
	BaseModel
}

// TableName 指定表名
func (Profile) TableName() string { return "profiles" }
