package service

import (
	"go.uber.org/zap"

	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/cache"
	"dept-portal/backend/pkg/jwt"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth         AuthService
	User         UserService
	Paper        PaperService
	StudentPaper StudentPaperService
	Project      ProjectService
	Lecturer     LecturerService
	Export       ExportService
}

// NewService 创建 Service 聚合
func NewService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cacheClient *cache.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:         NewAuthService(repo, jwtMgr, cacheClient, logger),
		User:         NewUserService(repo, cacheClient, logger),
		Paper:        NewPaperService(repo, cacheClient, logger),
		StudentPaper: NewStudentPaperService(repo, cacheClient, logger),
		Project:      NewProjectService(repo, cacheClient, logger),
		Lecturer:     NewLecturerService(repo, cacheClient, logger),
		Export:       NewExportService(repo, logger),
	}
}
