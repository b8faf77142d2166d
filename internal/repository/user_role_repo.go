package repository

import (
	"context"

	"gorm.io/gorm"

	"dept-portal/backend/internal/model"
)

// UserRoleRepository 用户角色数据访问接口
type UserRoleRepository interface {
	// Exists 查询 (userID, role) 角色分配是否已存在
	Exists(ctx context.Context, userID, role string) (bool, error)
	Create(ctx context.Context, userRole *model.UserRole) error
	ListByUser(ctx context.Context, userID string) ([]model.UserRole, error)
}

// userRoleRepo UserRoleRepository 的 GORM 实现
type userRoleRepo struct {
	db *gorm.DB
}

// NewUserRoleRepo 创建 UserRoleRepository 实例
func NewUserRoleRepo(db *gorm.DB) UserRoleRepository {
	return &userRoleRepo{db: db}
}

func (r *userRoleRepo) Exists(ctx context.Context, userID, role string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.UserRole{}).
		Where("user_id = ? AND role = ?", userID, role).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRoleRepo) Create(ctx context.Context, userRole *model.UserRole) error {
	return r.db.WithContext(ctx).Create(userRole).Error
}

func (r *userRoleRepo) ListByUser(ctx context.Context, userID string) ([]model.UserRole, error) {
	var roles []model.UserRole
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}
