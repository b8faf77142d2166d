package repository

import (
	"context"

	"gorm.io/gorm"

	"dept-portal/backend/internal/model"
)

// StudentPaperRepository 学生论文数据访问接口
type StudentPaperRepository interface {
	Create(ctx context.Context, paper *model.StudentPaper) error
	GetByID(ctx context.Context, id string) (*model.StudentPaper, error)
	// UpdateStatus 更新审批状态；目标行不存在时返回 gorm.ErrRecordNotFound
	UpdateStatus(ctx context.Context, id, status string) error
	ListPending(ctx context.Context) ([]model.StudentPaper, error)
	ListByUser(ctx context.Context, userID string) ([]model.StudentPaper, error)
}

// studentPaperRepo StudentPaperRepository 的 GORM 实现
type studentPaperRepo struct {
	db *gorm.DB
}

// NewStudentPaperRepo 创建 StudentPaperRepository 实例
func NewStudentPaperRepo(db *gorm.DB) StudentPaperRepository {
	return &studentPaperRepo{db: db}
}

func (r *studentPaperRepo) Create(ctx context.Context, paper *model.StudentPaper) error {
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *studentPaperRepo) GetByID(ctx context.Context, id string) (*model.StudentPaper, error) {
	var paper model.StudentPaper
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Where("id = ?", id).
		First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *studentPaperRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.StudentPaper{}).
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

func (r *studentPaperRepo) ListPending(ctx context.Context) ([]model.StudentPaper, error) {
	var papers []model.StudentPaper
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Where("approval_status = ?", model.StatusPending).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *studentPaperRepo) ListByUser(ctx context.Context, userID string) ([]model.StudentPaper, error) {
	var papers []model.StudentPaper
	err := r.db.WithContext(ctx).
		Preload("Supervisor").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}
