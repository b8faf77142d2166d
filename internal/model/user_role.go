package model

import "time"

// UserRole 用户角色表 — 对应 user_roles
// (user_id, role) 唯一：同一角色不可重复分配
type UserRole struct {
	ID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:uq_user_role"    json:"user_id"`
	Role      string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_user_role" json:"role"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

// TableName 指定表名
func (UserRole) TableName() string { return "user_roles" }
