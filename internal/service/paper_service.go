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

// ── 科研论文模块业务错误 ──

var (
	ErrLecturerProfileNotFound = errors.New("教师档案不存在")
	ErrPaperNotFound           = errors.New("论文不存在")
)

const (
	papersPendingKey  = "papers:pending"
	papersApprovedKey = "papers:approved"
	papersByLecturer  = "papers:lecturer:" // + lecturerID
	papersPattern     = "papers:*"
)

// PaperService 科研论文业务接口
//
// 提交入口只对持有教师档案的用户开放；新提交一律 pending，
// 审批流转只能由管理员触发。公开列表只含 approved 条目
type PaperService interface {
	Submit(ctx context.Context, userID string, req *dto.SubmitResearchPaperRequest) (*dto.PaperResponse, error)
	// Review 审批论文；重复审批覆盖旧决定
	Review(ctx context.Context, paperID, decision string) error
	ListPending(ctx context.Context) ([]dto.PaperResponse, error)
	// ListMine 当前教师名下全部论文（不分审批状态）
	ListMine(ctx context.Context, userID string) ([]dto.PaperResponse, error)
	// ListPublic 公开列表：approved 全量 + 内存过滤
	ListPublic(ctx context.Context, req *dto.ResearchListRequest) ([]dto.PaperResponse, error)
}

type paperService struct {
	repo   *repository.Repository
	cache  *cache.Client
	logger *zap.Logger
}

// NewPaperService 创建 PaperService 实例
func NewPaperService(repo *repository.Repository, cacheClient *cache.Client, logger *zap.Logger) PaperService {
	return &paperService{repo: repo, cache: cacheClient, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *paperService) Submit(ctx context.Context, userID string, req *dto.SubmitResearchPaperRequest) (*dto.PaperResponse, error) {
	// 提交者必须已有教师档案
	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerProfileNotFound
		}
		s.logger.Error("查询教师档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	paper := &model.ResearchPaper{
		LecturerID:          lecturer.ID,
		Title:               req.Title,
		Abstract:            req.Abstract,
		Authors:             SplitList(req.Authors),
		Keywords:            SplitList(req.Keywords),
		JournalOrConference: optionalString(req.JournalOrConference),
		PublicationDate:     parseDate(req.PublicationDate),
		FileURL:             optionalString(req.FileURL),
		ApprovalStatus:      model.StatusPending, // 提交者不可指定审批状态
	}

	if err := s.repo.ResearchPaper.Create(ctx, paper); err != nil {
		s.logger.Error("创建论文失败", zap.Error(err))
		return nil, err
	}

	s.invalidatePapers(ctx)

	paper.Lecturer = lecturer
	resp := toResearchPaperResponse(paper)
	return &resp, nil
}

// ────────────────────── Review ──────────────────────

func (s *paperService) Review(ctx context.Context, paperID, decision string) error {
	if err := s.repo.ResearchPaper.UpdateStatus(ctx, paperID, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaperNotFound
		}
		s.logger.Error("审批论文失败", zap.String("id", paperID), zap.Error(err))
		return err
	}

	s.invalidatePapers(ctx)
	return nil
}

// ────────────────────── ListPending ──────────────────────

func (s *paperService) ListPending(ctx context.Context) ([]dto.PaperResponse, error) {
	return s.cachedList(ctx, papersPendingKey, func() ([]model.ResearchPaper, error) {
		return s.repo.ResearchPaper.ListPending(ctx)
	})
}

// ────────────────────── ListMine ──────────────────────

func (s *paperService) ListMine(ctx context.Context, userID string) ([]dto.PaperResponse, error) {
	lecturer, err := s.repo.Lecturer.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLecturerProfileNotFound
		}
		s.logger.Error("查询教师档案失败", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	return s.cachedList(ctx, papersByLecturer+lecturer.ID, func() ([]model.ResearchPaper, error) {
		return s.repo.ResearchPaper.ListByLecturer(ctx, lecturer.ID)
	})
}

// ────────────────────── ListPublic ──────────────────────

func (s *paperService) ListPublic(ctx context.Context, req *dto.ResearchListRequest) ([]dto.PaperResponse, error) {
	// 缓存 approved 全量，过滤在内存中完成（搜索组合不落缓存键）
	papers, err := s.approvedPapers(ctx)
	if err != nil {
		return nil, err
	}

	filtered := FilterResearchPapers(papers, req.Search, req.Keyword)

	result := make([]dto.PaperResponse, 0, len(filtered))
	for i := range filtered {
		result = append(result, toResearchPaperResponse(&filtered[i]))
	}
	return result, nil
}

// ── 内部辅助方法 ──

func (s *paperService) approvedPapers(ctx context.Context) ([]model.ResearchPaper, error) {
	var cached []model.ResearchPaper
	if err := s.cache.GetJSON(ctx, papersApprovedKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取论文列表缓存失败", zap.Error(err))
	}

	papers, err := s.repo.ResearchPaper.ListApproved(ctx)
	if err != nil {
		s.logger.Error("列出论文失败", zap.Error(err))
		return nil, err
	}

	if err := s.cache.SetJSON(ctx, papersApprovedKey, papers); err != nil {
		s.logger.Warn("写入论文列表缓存失败", zap.Error(err))
	}
	return papers, nil
}

func (s *paperService) cachedList(ctx context.Context, key string, load func() ([]model.ResearchPaper, error)) ([]dto.PaperResponse, error) {
	var cached []dto.PaperResponse
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取论文列表缓存失败", zap.String("key", key), zap.Error(err))
	}

	papers, err := load()
	if err != nil {
		s.logger.Error("列出论文失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PaperResponse, 0, len(papers))
	for i := range papers {
		result = append(result, toResearchPaperResponse(&papers[i]))
	}

	if err := s.cache.SetJSON(ctx, key, result); err != nil {
		s.logger.Warn("写入论文列表缓存失败", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

func (s *paperService) invalidatePapers(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, papersPattern); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", papersPattern), zap.Error(err))
	}
}

// toResearchPaperResponse 将 model.ResearchPaper 转换为 dto.PaperResponse
func toResearchPaperResponse(paper *model.ResearchPaper) dto.PaperResponse {
	resp := dto.PaperResponse{
		ID:             paper.ID,
		Title:          paper.Title,
		Abstract:       paper.Abstract,
		Authors:        paper.Authors,
		Keywords:       paper.Keywords,
		ApprovalStatus: paper.ApprovalStatus,
		CreatedAt:      paper.CreatedAt.Format(time.RFC3339),
	}
	if paper.JournalOrConference != nil {
		resp.JournalOrConference = *paper.JournalOrConference
	}
	if paper.PublicationDate != nil {
		resp.PublicationDate = paper.PublicationDate.Format("2006-01-02")
	}
	if paper.FileURL != nil {
		resp.FileURL = *paper.FileURL
	}
	if paper.Lecturer != nil {
		resp.LecturerName = paper.Lecturer.Name
	}
	return resp
}

// optionalString 空串返回 nil，否则返回指针（可空列的写入辅助）
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// parseDate 解析 YYYY-MM-DD 日期；入参已由 binding 校验，空串返回 nil
func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}
