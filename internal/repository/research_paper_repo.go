package repository

import (
	"context"

	"gorm.io/gorm"

	"dept-portal/backend/internal/model"
)

// ResearchPaperRepository 科研论文数据访问接口
type ResearchPaperRepository interface {
	Create(ctx context.Context, paper *model.ResearchPaper) error
	GetByID(ctx context.Context, id string) (*model.ResearchPaper, error)
	// UpdateStatus 更新审批状态；目标行不存在时返回 gorm.ErrRecordNotFound
	UpdateStatus(ctx context.Context, id, status string) error
	ListPending(ctx context.Context) ([]model.ResearchPaper, error)
	ListByLecturer(ctx context.Context, lecturerID string) ([]model.ResearchPaper, error)
	ListApproved(ctx context.Context) ([]model.ResearchPaper, error)
}

// researchPaperRepo ResearchPaperRepository 的 GORM 实现
type researchPaperRepo struct {
	db *gorm.DB
}

// NewResearchPaperRepo 创建 ResearchPaperRepository 实例
func NewResearchPaperRepo(db *gorm.DB) ResearchPaperRepository {
	return &researchPaperRepo{db: db}
}

func (r *researchPaperRepo) Create(ctx context.Context, paper *model.ResearchPaper) error {
	return r.db.WithContext(ctx).Create(paper).Error
}

func (r *researchPaperRepo) GetByID(ctx context.Context, id string) (*model.ResearchPaper, error) {
	var paper model.ResearchPaper
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Where("id = ?", id).
		First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

func (r *researchPaperRepo) UpdateStatus(ctx context.Context, id, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.ResearchPaper{}).
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

func (r *researchPaperRepo) ListPending(ctx context.Context) ([]model.ResearchPaper, error) {
	return r.listByStatus(ctx, model.StatusPending)
}

func (r *researchPaperRepo) ListApproved(ctx context.Context) ([]model.ResearchPaper, error) {
	return r.listByStatus(ctx, model.StatusApproved)
}

func (r *researchPaperRepo) listByStatus(ctx context.Context, status string) ([]model.ResearchPaper, error) {
	var papers []model.ResearchPaper
	err := r.db.WithContext(ctx).
		Preload("Lecturer").
		Where("approval_status = ?", status).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}

func (r *researchPaperRepo) ListByLecturer(ctx context.Context, lecturerID string) ([]model.ResearchPaper, error) {
	var papers []model.ResearchPaper
	err := r.db.WithContext(ctx).
		Where("lecturer_id = ?", lecturerID).
		Order("created_at DESC").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}
