package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/model"
	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/cache"
)

// ── 项目模块业务错误 ──

var ErrProjectNotFound = errors.New("项目不存在")

const (
	projectsPendingKey  = "projects:pending"
	projectsApprovedKey = "projects:approved"
	projectsAllKey      = "projects:all"
	projectsPattern     = "projects:*"
)

// ProjectService 系级项目业务接口
// 项目无归属人：任何教师可提交、可在看板看到全部项目
type ProjectService interface {
	Submit(ctx context.Context, req *dto.SubmitProjectRequest) (*dto.ProjectResponse, error)
	Review(ctx context.Context, projectID, decision string) error
	ListPending(ctx context.Context) ([]dto.ProjectResponse, error)
	// ListAll 教师看板：全部项目，不分审批状态
	ListAll(ctx context.Context) ([]dto.ProjectResponse, error)
	// ListPublic 公开列表：approved 全量 + 内存过滤 + 生命周期状态计数
	ListPublic(ctx context.Context, req *dto.ProjectListRequest) (*dto.ProjectListResponse, error)
}

type projectService struct {
	repo   *repository.Repository
	cache  *cache.Client
	logger *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(repo *repository.Repository, cacheClient *cache.Client, logger *zap.Logger) ProjectService {
	return &projectService{repo: repo, cache: cacheClient, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *projectService) Submit(ctx context.Context, req *dto.SubmitProjectRequest) (*dto.ProjectResponse, error) {
	status := req.Status
	if status == "" {
		status = model.ProjectActive
	}

	project := &model.DepartmentProject{
		Title:          req.Title,
		Description:    req.Description,
		Technologies:   SplitList(req.Technologies),
		TeamMembers:    SplitList(req.TeamMembers),
		GithubURL:      optionalString(req.GithubURL),
		ProjectURL:     optionalString(req.ProjectURL),
		StartDate:      parseDate(req.StartDate),
		Status:         status,
		ApprovalStatus: model.StatusPending, // 提交者不可指定审批状态
	}

	if err := s.repo.Project.Create(ctx, project); err != nil {
		s.logger.Error("创建项目失败", zap.Error(err))
		return nil, err
	}

	s.invalidateProjects(ctx)

	resp := toProjectResponse(project)
	return &resp, nil
}

// ────────────────────── Review ──────────────────────

func (s *projectService) Review(ctx context.Context, projectID, decision string) error {
	if err := s.repo.Project.UpdateStatus(ctx, projectID, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		s.logger.Error("审批项目失败", zap.String("id", projectID), zap.Error(err))
		return err
	}

	s.invalidateProjects(ctx)
	return nil
}

// ────────────────────── ListPending ──────────────────────

func (s *projectService) ListPending(ctx context.Context) ([]dto.ProjectResponse, error) {
	return s.cachedList(ctx, projectsPendingKey, func() ([]model.DepartmentProject, error) {
		return s.repo.Project.ListPending(ctx)
	})
}

// ────────────────────── ListAll ──────────────────────

func (s *projectService) ListAll(ctx context.Context) ([]dto.ProjectResponse, error) {
	return s.cachedList(ctx, projectsAllKey, func() ([]model.DepartmentProject, error) {
		return s.repo.Project.ListAll(ctx)
	})
}

// ────────────────────── ListPublic ──────────────────────

func (s *projectService) ListPublic(ctx context.Context, req *dto.ProjectListRequest) (*dto.ProjectListResponse, error) {
	projects, err := s.approvedProjects(ctx)
	if err != nil {
		return nil, err
	}

	// 状态计数基于全量已通过项目，不受搜索与状态筛选影响（状态卡片角标数）
	counts := make(map[string]int, 4)
	for i := range projects {
		counts[projects[i].Status]++
	}

	filtered := FilterProjects(projects, req.Search, req.Status)
	list := make([]dto.ProjectResponse, 0, len(filtered))
	for i := range filtered {
		list = append(list, toProjectResponse(&filtered[i]))
	}

	return &dto.ProjectListResponse{List: list, StatusCounts: counts}, nil
}

// ── 内部辅助方法 ──

func (s *projectService) approvedProjects(ctx context.Context) ([]model.DepartmentProject, error) {
	var cached []model.DepartmentProject
	if err := s.cache.GetJSON(ctx, projectsApprovedKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取项目列表缓存失败", zap.Error(err))
	}

	projects, err := s.repo.Project.ListApproved(ctx)
	if err != nil {
		s.logger.Error("列出项目失败", zap.Error(err))
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, projectsApprovedKey, projects); err != nil {
		s.logger.Warn("写入项目列表缓存失败", zap.Error(err))
	}
	return projects, nil
}

func (s *projectService) cachedList(ctx context.Context, key string, load func() ([]model.DepartmentProject, error)) ([]dto.ProjectResponse, error) {
	var cached []dto.ProjectResponse
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取项目列表缓存失败", zap.String("key", key), zap.Error(err))
	}

	projects, err := load()
	if err != nil {
		s.logger.Error("列出项目失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	result := make([]dto.ProjectResponse, 0, len(projects))
	for i := range projects {
		result = append(result, toProjectResponse(&projects[i]))
	}

	if err := s.cache.SetJSON(ctx, key, result); err != nil {
		s.logger.Warn("写入项目列表缓存失败", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

func (s *projectService) invalidateProjects(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, projectsPattern); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", projectsPattern), zap.Error(err))
	}
}

// toProjectResponse 将 model.DepartmentProject 转换为 dto.ProjectResponse
func toProjectResponse(project *model.DepartmentProject) dto.ProjectResponse {
	resp := dto.ProjectResponse{
		ID:             project.ID,
		Title:          project.Title,
		Description:    project.Description,
		Technologies:   project.Technologies,
		TeamMembers:    project.TeamMembers,
		Status:         project.Status,
		ApprovalStatus: project.ApprovalStatus,
		CreatedAt:      project.CreatedAt.Format(time.RFC3339),
	}
	if project.GithubURL != nil {
		resp.GithubURL = *project.GithubURL
	}
	if project.ProjectURL != nil {
		resp.ProjectURL = *project.ProjectURL
	}
	if project.StartDate != nil {
		resp.StartDate = project.StartDate.Format("2006-01-02")
	}
	return resp
}
