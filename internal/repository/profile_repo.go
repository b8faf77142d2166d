package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dept-portal/backend/internal/model"
)

// ProfileRepository 用户档案数据访问接口
type ProfileRepository interface {
	Create(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, userID string) (*model.Profile, error)
	GetByEmail(ctx context.Context, email string) (*model.Profile, error)
	GetByMatricNumber(ctx context.Context, matricNumber string) (*model.Profile, error)
	// UpdateStatus 更新审批状态；目标行不存在时返回 gorm.ErrRecordNotFound
	UpdateStatus(ctx context.Context, userID, status string) error
	// UpsertStudentProfile 以 user_id 为键 upsert 显示名与学号；
	// 学号唯一约束冲突时返回 gorm.ErrDuplicatedKey
	UpsertStudentProfile(ctx context.Context, profile *model.Profile) error
	List(ctx context.Context) ([]model.Profile, error)
}

// profileRepo ProfileRepository 的 GORM 实现
type profileRepo struct {
	db *gorm.DB
}

// NewProfileRepo 创建 ProfileRepository 实例
func NewProfileRepo(db *gorm.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepo) GetByID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByEmail(ctx context.Context, email string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) GetByMatricNumber(ctx context.Context, matricNumber string) (*model.Profile, error) {
	var profile model.Profile
	err := r.db.WithContext(ctx).
		Where("matric_number = ?", matricNumber).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) UpdateStatus(ctx context.Context, userID, status string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("user_id = ?", userID).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *profileRepo) UpsertStudentProfile(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"display_name", "matric_number", "updated_at"}),
		}).
		Create(profile).Error
}

func (r *profileRepo) List(ctx context.Context) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
