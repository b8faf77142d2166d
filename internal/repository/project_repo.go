package repository

import (
	"context"

	"gorm.io/gorm"

	"dept-portal/backend/internal/model"
)

// ProjectRepository 系级项目数据访问接口
type ProjectRepository interface {
	Create(ctx context.Context, project *model.DepartmentProject) error
	GetByID(ctx context.Context, id string) (*model.DepartmentProject, error)
	// UpdateStatus 更新审批状态；目标行不存在时返回 gorm.ErrRecordNotFound
	UpdateStatus(ctx context.Context, id, status string) error
	ListPending(ctx context.Context) ([]model.DepartmentProject, error)
	ListApproved(ctx context.Context) ([]model.DepartmentProject, error)
	// ListAll 全部项目（教师看板：不分审批状态）
	ListAll(ctx context.Context) ([]model.DepartmentProject, error)
}

// projectRepo ProjectRepository 的 GORM 实现
type projectRepo struct {
	db *gorm.DB
}

// NewProjectRepo 创建 ProjectRepository 实例
func NewProjectRepo(db *gorm.DB) ProjectRepository {
	return &projectRepo{db: db}
}

func (r *projectRepo) Create(ctx context.Context, project *model.DepartmentProject) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepo) GetByID(ctx context.Context, id string) (*model.DepartmentProject, error) {
	var project model.DepartmentProject
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.DepartmentProject{}).
		Where("id = ?", id).
		Update("approval_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *projectRepo) ListPending(ctx context.Context) ([]model.DepartmentProject, error) {
	return r.listByStatus(ctx, model.StatusPending)
}

func (r *projectRepo) ListApproved(ctx context.Context) ([]model.DepartmentProject, error) {
	return r.listByStatus(ctx, model.StatusApproved)
}

func (r *projectRepo) listByStatus(ctx context.Context, status string) ([]model.DepartmentProject, error) {
	var projects []model.DepartmentProject
	err := r.db.WithContext(ctx).
		Where("approval_status = ?", status).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *projectRepo) ListAll(ctx context.Context) ([]model.DepartmentProject, error) {
	var projects []model.DepartmentProject
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
