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

// ── 学生论文模块业务错误 ──

var ErrSupervisorNotFound = errors.New("指导教师不存在")

const (
	studentPapersPendingKey = "student_papers:pending"
	studentPapersByUser     = "student_papers:user:" // + userID
	studentPapersPattern    = "student_papers:*"
)

// StudentPaperService 学生论文业务接口
// 论文归属提交学生本人，指导教师可选
type StudentPaperService interface {
	Submit(ctx context.Context, userID string, req *dto.SubmitStudentPaperRequest) (*dto.PaperResponse, error)
	Review(ctx context.Context, paperID, decision string) error
	ListPending(ctx context.Context) ([]dto.PaperResponse, error)
	// ListMine 当前学生名下全部论文（不分审批状态）
	ListMine(ctx context.Context, userID string) ([]dto.PaperResponse, error)
}

type studentPaperService struct {
	repo   *repository.Repository
	cache  *cache.Client
	logger *zap.Logger
}

// NewStudentPaperService 创建 StudentPaperService 实例
func NewStudentPaperService(repo *repository.Repository, cacheClient *cache.Client, logger *zap.Logger) StudentPaperService {
	return &studentPaperService{repo: repo, cache: cacheClient, logger: logger}
}

// ────────────────────── Submit ──────────────────────

func (s *studentPaperService) Submit(ctx context.Context, userID string, req *dto.SubmitStudentPaperRequest) (*dto.PaperResponse, error) {
	// 指导教师可选，给了就必须真实存在
	var supervisor *model.Lecturer
	if req.SupervisorID != "" {
		var err error
		supervisor, err = s.repo.Lecturer.GetByID(ctx, req.SupervisorID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSupervisorNotFound
			}
			s.logger.Error("查询教师档案失败", zap.String("id", req.SupervisorID), zap.Error(err))
			return nil, err
		}
	}

	paper := &model.StudentPaper{
		UserID:              userID,
		SupervisorID:        optionalString(req.SupervisorID),
		Title:               req.Title,
		Abstract:            req.Abstract,
		Authors:             SplitList(req.Authors),
		Keywords:            SplitList(req.Keywords),
		JournalOrConference: optionalString(req.JournalOrConference),
		PublicationDate:     parseDate(req.PublicationDate),
		FileURL:             optionalString(req.FileURL),
		ApprovalStatus:      model.StatusPending, // 提交者不可指定审批状态
	}

	if err := s.repo.StudentPaper.Create(ctx, paper); err != nil {
		s.logger.Error("创建学生论文失败", zap.Error(err))
		return nil, err
	}

	s.invalidateStudentPapers(ctx)

	paper.Supervisor = supervisor
	resp := toStudentPaperResponse(paper)
	return &resp, nil
}

// ────────────────────── Review ──────────────────────

func (s *studentPaperService) Review(ctx context.Context, paperID, decision string) error {
	if err := s.repo.StudentPaper.UpdateStatus(ctx, paperID, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPaperNotFound
		}
		s.logger.Error("审批学生论文失败", zap.String("id", paperID), zap.Error(err))
		return err
	}

	s.invalidateStudentPapers(ctx)
	return nil
}

// ────────────────────── ListPending ──────────────────────

func (s *studentPaperService) ListPending(ctx context.Context) ([]dto.PaperResponse, error) {
	return s.cachedList(ctx, studentPapersPendingKey, func() ([]model.StudentPaper, error) {
		return s.repo.StudentPaper.ListPending(ctx)
	})
}

// ────────────────────── ListMine ──────────────────────

func (s *studentPaperService) ListMine(ctx context.Context, userID string) ([]dto.PaperResponse, error) {
	return s.cachedList(ctx, studentPapersByUser+userID, func() ([]model.StudentPaper, error) {
		return s.repo.StudentPaper.ListByUser(ctx, userID)
	})
}

// ── 内部辅助方法 ──

func (s *studentPaperService) cachedList(ctx context.Context, key string, load func() ([]model.StudentPaper, error)) ([]dto.PaperResponse, error) {
	var cached []dto.PaperResponse
	if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取学生论文列表缓存失败", zap.String("key", key), zap.Error(err))
	}

	papers, err := load()
	if err != nil {
		s.logger.Error("列出学生论文失败", zap.String("key", key), zap.Error(err))
		return nil, err
	}

	result := make([]dto.PaperResponse, 0, len(papers))
	for i := range papers {
		result = append(result, toStudentPaperResponse(&papers[i]))
	}

	if err := s.cache.SetJSON(ctx, key, result); err != nil {
		s.logger.Warn("写入学生论文列表缓存失败", zap.String("key", key), zap.Error(err))
	}
	return result, nil
}

func (s *studentPaperService) invalidateStudentPapers(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, studentPapersPattern); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", studentPapersPattern), zap.Error(err))
	}
}

// toStudentPaperResponse 将 model.StudentPaper 转换为 dto.PaperResponse
func toStudentPaperResponse(paper *model.StudentPaper) dto.PaperResponse {
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
	if paper.Supervisor != nil {
		resp.SupervisorName = paper.Supervisor.Name
	}
	return resp
}
