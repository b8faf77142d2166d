package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/model"
)

// ── 测试辅助 ──

func setupTestPaperService() (PaperService, *mockLecturerRepo, *mockResearchPaperRepo) {
	repo, _, _, lecturerRepo := newTestRepo()
	paperRepo := repo.ResearchPaper.(*mockResearchPaperRepo)
	svc := NewPaperService(repo, nil, zap.NewNop())
	return svc, lecturerRepo, paperRepo
}

func createTestLecturer(lecturerRepo *mockLecturerRepo, id, userID, name string) *model.Lecturer {
	lecturer := &model.Lecturer{ID: id, UserID: userID, Name: name}
	lecturerRepo.lecturers[id] = lecturer
	return lecturer
}

// ── Submit 测试 ──

func TestPaperService_Submit_Success(t *testing.T) {
	svc, lecturerRepo, paperRepo := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	resp, err := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{
		Title:           "分布式缓存一致性研究",
		Abstract:        "摘要内容",
		Authors:         "A, B",
		Keywords:        "缓存, 一致性",
		PublicationDate: "2024-06-01",
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	// 提交者不能指定审批状态：新论文必为 pending
	if resp.ApprovalStatus != model.StatusPending {
		t.Errorf("期望审批状态=pending，实际=%s", resp.ApprovalStatus)
	}

	// 逗号分隔的作者串应解析为序列
	if len(resp.Authors) != 2 || resp.Authors[0] != "A" || resp.Authors[1] != "B" {
		t.Errorf("期望作者=[A B]，实际=%v", resp.Authors)
	}
	if len(resp.Keywords) != 2 {
		t.Errorf("期望2个关键词，实际=%v", resp.Keywords)
	}
	if resp.LecturerName != "王教授" {
		t.Errorf("期望归属教师=王教授，实际=%s", resp.LecturerName)
	}

	stored, _ := paperRepo.GetByID(context.Background(), resp.ID)
	if stored.LecturerID != "lec-001" {
		t.Errorf("期望归属 lec-001，实际=%s", stored.LecturerID)
	}
}

func TestPaperService_Submit_NoLecturerProfile(t *testing.T) {
	svc, _, _ := setupTestPaperService()

	_, err := svc.Submit(context.Background(), "uid-without-profile", &dto.SubmitResearchPaperRequest{
		Title:    "无档案提交",
		Abstract: "摘要",
	})
	if !errors.Is(err, ErrLecturerProfileNotFound) {
		t.Errorf("期望 ErrLecturerProfileNotFound，实际: %v", err)
	}
}

// ── Review 测试 ──

func TestPaperService_Review_Success(t *testing.T) {
	svc, lecturerRepo, paperRepo := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	resp, err := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{
		Title: "待审批论文", Abstract: "摘要",
	})
	if err != nil {
		t.Fatalf("Submit 应成功: %v", err)
	}

	if err := svc.Review(context.Background(), resp.ID, model.StatusApproved); err != nil {
		t.Fatalf("Review 应成功: %v", err)
	}
	stored, _ := paperRepo.GetByID(context.Background(), resp.ID)
	if stored.ApprovalStatus != model.StatusApproved {
		t.Errorf("期望状态=approved，实际=%s", stored.ApprovalStatus)
	}
}

func TestPaperService_Review_NotFound(t *testing.T) {
	svc, _, _ := setupTestPaperService()

	err := svc.Review(context.Background(), "nonexistent", model.StatusApproved)
	if !errors.Is(err, ErrPaperNotFound) {
		t.Errorf("期望 ErrPaperNotFound，实际: %v", err)
	}
}

func TestPaperService_Review_Rereview(t *testing.T) {
	svc, lecturerRepo, paperRepo := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	resp, _ := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{
		Title: "反复审批", Abstract: "摘要",
	})

	// 先拒后批：最后一次决定生效
	svc.Review(context.Background(), resp.ID, model.StatusRejected)
	svc.Review(context.Background(), resp.ID, model.StatusApproved)

	stored, _ := paperRepo.GetByID(context.Background(), resp.ID)
	if stored.ApprovalStatus != model.StatusApproved {
		t.Errorf("期望最终状态=approved，实际=%s", stored.ApprovalStatus)
	}
}

// ── 列表测试 ──

func TestPaperService_ListPending(t *testing.T) {
	svc, lecturerRepo, _ := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	p1, _ := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{Title: "P1", Abstract: "a"})
	svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{Title: "P2", Abstract: "a"})
	svc.Review(context.Background(), p1.ID, model.StatusApproved)

	pending, err := svc.ListPending(context.Background())
	if err != nil {
		t.Fatalf("ListPending 应成功: %v", err)
	}
	if len(pending) != 1 || pending[0].Title != "P2" {
		t.Errorf("期望待审批仅 P2，实际=%v", pending)
	}
}

func TestPaperService_ListMine(t *testing.T) {
	svc, lecturerRepo, _ := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")
	createTestLecturer(lecturerRepo, "lec-002", "uid-002", "李教授")

	svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{Title: "我的论文", Abstract: "a"})
	svc.Submit(context.Background(), "uid-002", &dto.SubmitResearchPaperRequest{Title: "别人的论文", Abstract: "a"})

	mine, err := svc.ListMine(context.Background(), "uid-001")
	if err != nil {
		t.Fatalf("ListMine 应成功: %v", err)
	}
	if len(mine) != 1 || mine[0].Title != "我的论文" {
		t.Errorf("期望仅自己的论文，实际=%v", mine)
	}
}

func TestPaperService_ListMine_NoProfile(t *testing.T) {
	svc, _, _ := setupTestPaperService()

	_, err := svc.ListMine(context.Background(), "uid-without-profile")
	if !errors.Is(err, ErrLecturerProfileNotFound) {
		t.Errorf("期望 ErrLecturerProfileNotFound，实际: %v", err)
	}
}

func TestPaperService_ListPublic_OnlyApproved(t *testing.T) {
	svc, lecturerRepo, _ := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	p1, _ := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{Title: "已通过", Abstract: "a"})
	svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{Title: "待审批", Abstract: "a"})
	svc.Review(context.Background(), p1.ID, model.StatusApproved)

	public, err := svc.ListPublic(context.Background(), &dto.ResearchListRequest{})
	if err != nil {
		t.Fatalf("ListPublic 应成功: %v", err)
	}
	if len(public) != 1 || public[0].Title != "已通过" {
		t.Errorf("公开列表应只含 approved，实际=%v", public)
	}
}

func TestPaperService_ListPublic_SearchFilter(t *testing.T) {
	svc, lecturerRepo, _ := setupTestPaperService()
	createTestLecturer(lecturerRepo, "lec-001", "uid-001", "王教授")

	p1, _ := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{
		Title: "Deep Learning Survey", Abstract: "a", Keywords: "ml, ai",
	})
	p2, _ := svc.Submit(context.Background(), "uid-001", &dto.SubmitResearchPaperRequest{
		Title: "Database Systems", Abstract: "a", Keywords: "storage",
	})
	svc.Review(context.Background(), p1.ID, model.StatusApproved)
	svc.Review(context.Background(), p2.ID, model.StatusApproved)

	// 标题搜索大小写不敏感
	result, err := svc.ListPublic(context.Background(), &dto.ResearchListRequest{Search: "deep"})
	if err != nil {
		t.Fatalf("ListPublic 应成功: %v", err)
	}
	if len(result) != 1 || result[0].Title != "Deep Learning Survey" {
		t.Errorf("期望命中 Deep Learning Survey，实际=%v", result)
	}

	// 关键词过滤
	result, _ = svc.ListPublic(context.Background(), &dto.ResearchListRequest{Keyword: "storage"})
	if len(result) != 1 || result[0].Title != "Database Systems" {
		t.Errorf("期望命中 Database Systems，实际=%v", result)
	}
}
