package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/cache"
)

const lecturersCacheKey = "lecturers:all"

// LecturerService 教师展示业务接口
type LecturerService interface {
	// List 公开教师名录
	List(ctx context.Context) ([]dto.LecturerResponse, error)
	// Options 学生提交论文时的指导教师下拉选项
	Options(ctx context.Context) ([]dto.LecturerOption, error)
}

type lecturerService struct {
	repo   *repository.Repository
	cache  *cache.Client
	logger *zap.Logger
}

// NewLecturerService 创建 LecturerService 实例
func NewLecturerService(repo *repository.Repository, cacheClient *cache.Client, logger *zap.Logger) LecturerService {
	return &lecturerService{repo: repo, cache: cacheClient, logger: logger}
}

func (s *lecturerService) List(ctx context.Context) ([]dto.LecturerResponse, error) {
	var cached []dto.LecturerResponse
	if err := s.cache.GetJSON(ctx, lecturersCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取教师列表缓存失败", zap.Error(err))
	}

	lecturers, err := s.repo.Lecturer.List(ctx)
	if err != nil {
		s.logger.Error("列出教师失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LecturerResponse, 0, len(lecturers))
	for i := range lecturers {
		l := &lecturers[i]
		resp := dto.LecturerResponse{
			ID:                l.ID,
			Name:              l.Name,
			ResearchInterests: l.ResearchInterests,
		}
		if l.Email != nil {
			resp.Email = *l.Email
		}
		if l.Title != nil {
			resp.Title = *l.Title
		}
		result = append(result, resp)
	}

	if err := s.cache.SetJSON(ctx, lecturersCacheKey, result); err != nil {
		s.logger.Warn("写入教师列表缓存失败", zap.Error(err))
	}

	return result, nil
}

func (s *lecturerService) Options(ctx context.Context) ([]dto.LecturerOption, error) {
	lecturers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]dto.LecturerOption, 0, len(lecturers))
	for _, l := range lecturers {
		options = append(options, dto.LecturerOption{ID: l.ID, Name: l.Name})
	}
	return options, nil
}
