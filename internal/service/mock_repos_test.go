package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"dept-portal/backend/internal/model"
)

// ── Mock ProfileRepository ──

type mockProfileRepo struct {
	profiles map[string]*model.Profile
	seq      int
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[string]*model.Profile)}
}

func (m *mockProfileRepo) Create(_ context.Context, profile *model.Profile) error {
	for _, p := range m.profiles {
		if p.Email == profile.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	if profile.UserID == "" {
		m.seq++
		profile.UserID = fmt.Sprintf("uid-%03d", m.seq)
	}
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = time.Now()
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) GetByID(_ context.Context, userID string) (*model.Profile, error) {
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByEmail(_ context.Context, email string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) GetByMatricNumber(_ context.Context, matricNumber string) (*model.Profile, error) {
	for _, p := range m.profiles {
		if p.MatricNumber != nil && *p.MatricNumber == matricNumber {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProfileRepo) UpdateStatus(_ context.Context, userID, status string) error {
	p, ok := m.profiles[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (m *mockProfileRepo) UpsertStudentProfile(_ context.Context, profile *model.Profile) error {
	// 学号唯一索引：他人已占用则冲突
	if profile.MatricNumber != nil {
		for _, p := range m.profiles {
			if p.UserID != profile.UserID && p.MatricNumber != nil && *p.MatricNumber == *profile.MatricNumber {
				return gorm.ErrDuplicatedKey
			}
		}
	}
	m.profiles[profile.UserID] = profile
	return nil
}

func (m *mockProfileRepo) List(_ context.Context) ([]model.Profile, error) {
	ids := make([]string, 0, len(m.profiles))
	for id := range m.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	result := make([]model.Profile, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.profiles[id])
	}
	return result, nil
}

// ── Mock UserRoleRepository ──

type mockUserRoleRepo struct {
	roles []model.UserRole
}

func newMockUserRoleRepo() *mockUserRoleRepo {
	return &mockUserRoleRepo{}
}

func (m *mockUserRoleRepo) Exists(_ context.Context, userID, role string) (bool, error) {
	for _, r := range m.roles {
		if r.UserID == userID && r.Role == role {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockUserRoleRepo) Create(_ context.Context, userRole *model.UserRole) error {
	for _, r := range m.roles {
		if r.UserID == userRole.UserID && r.Role == userRole.Role {
			return gorm.ErrDuplicatedKey
		}
	}
	if userRole.ID == "" {
		userRole.ID = fmt.Sprintf("role-%03d", len(m.roles)+1)
	}
	userRole.CreatedAt = time.Now()
	m.roles = append(m.roles, *userRole)
	return nil
}

func (m *mockUserRoleRepo) ListByUser(_ context.Context, userID string) ([]model.UserRole, error) {
	var result []model.UserRole
	for _, r := range m.roles {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	return result, nil
}

// ── Mock LecturerRepository ──

type mockLecturerRepo struct {
	lecturers map[string]*model.Lecturer
	seq       int
}

func newMockLecturerRepo() *mockLecturerRepo {
	return &mockLecturerRepo{lecturers: make(map[string]*model.Lecturer)}
}

func (m *mockLecturerRepo) Create(_ context.Context, lecturer *model.Lecturer) error {
	for _, l := range m.lecturers {
		if l.UserID == lecturer.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	if lecturer.ID == "" {
		m.seq++
		lecturer.ID = fmt.Sprintf("lec-%03d", m.seq)
	}
	m.lecturers[lecturer.ID] = lecturer
	return nil
}

func (m *mockLecturerRepo) GetByID(_ context.Context, id string) (*model.Lecturer, error) {
	if l, ok := m.lecturers[id]; ok {
		return l, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLecturerRepo) GetByUserID(_ context.Context, userID string) (*model.Lecturer, error) {
	for _, l := range m.lecturers {
		if l.UserID == userID {
			return l, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockLecturerRepo) List(_ context.Context) ([]model.Lecturer, error) {
	result := make([]model.Lecturer, 0, len(m.lecturers))
	for _, l := range m.lecturers {
		result = append(result, *l)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ── Mock ResearchPaperRepository ──

type mockResearchPaperRepo struct {
	papers map[string]*model.ResearchPaper
	order  []string
	seq    int
}

func newMockResearchPaperRepo() *mockResearchPaperRepo {
	return &mockResearchPaperRepo{papers: make(map[string]*model.ResearchPaper)}
}

func (m *mockResearchPaperRepo) Create(_ context.Context, paper *model.ResearchPaper) error {
	if paper.ID == "" {
		m.seq++
		paper.ID = fmt.Sprintf("rp-%03d", m.seq)
	}
	if paper.CreatedAt.IsZero() {
		paper.CreatedAt = time.Now()
	}
	m.papers[paper.ID] = paper
	m.order = append(m.order, paper.ID)
	return nil
}

func (m *mockResearchPaperRepo) GetByID(_ context.Context, id string) (*model.ResearchPaper, error) {
	if p, ok := m.papers[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockResearchPaperRepo) UpdateStatus(_ context.Context, id, status string) error {
	p, ok := m.papers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ApprovalStatus = status
	return nil
}

func (m *mockResearchPaperRepo) ListPending(_ context.Context) ([]model.ResearchPaper, error) {
	return m.listByStatus(model.StatusPending), nil
}

func (m *mockResearchPaperRepo) ListApproved(_ context.Context) ([]model.ResearchPaper, error) {
	return m.listByStatus(model.StatusApproved), nil
}

func (m *mockResearchPaperRepo) listByStatus(status string) []model.ResearchPaper {
	var result []model.ResearchPaper
	for _, id := range m.order {
		if m.papers[id].ApprovalStatus == status {
			result = append(result, *m.papers[id])
		}
	}
	return result
}

func (m *mockResearchPaperRepo) ListByLecturer(_ context.Context, lecturerID string) ([]model.ResearchPaper, error) {
	var result []model.ResearchPaper
	for _, id := range m.order {
		if m.papers[id].LecturerID == lecturerID {
			result = append(result, *m.papers[id])
		}
	}
	return result, nil
}

// ── Mock StudentPaperRepository ──

type mockStudentPaperRepo struct {
	papers map[string]*model.StudentPaper
	order  []string
	seq    int
}

func newMockStudentPaperRepo() *mockStudentPaperRepo {
	return &mockStudentPaperRepo{papers: make(map[string]*model.StudentPaper)}
}

func (m *mockStudentPaperRepo) Create(_ context.Context, paper *model.StudentPaper) error {
	if paper.ID == "" {
		m.seq++
		paper.ID = fmt.Sprintf("sp-%03d", m.seq)
	}
	if paper.CreatedAt.IsZero() {
		paper.CreatedAt = time.Now()
	}
	m.papers[paper.ID] = paper
	m.order = append(m.order, paper.ID)
	return nil
}

func (m *mockStudentPaperRepo) GetByID(_ context.Context, id string) (*model.StudentPaper, error) {
	if p, ok := m.papers[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentPaperRepo) UpdateStatus(_ context.Context, id, status string) error {
	p, ok := m.papers[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ApprovalStatus = status
	return nil
}

func (m *mockStudentPaperRepo) ListPending(_ context.Context) ([]model.StudentPaper, error) {
	var result []model.StudentPaper
	for _, id := range m.order {
		if m.papers[id].ApprovalStatus == model.StatusPending {
			result = append(result, *m.papers[id])
		}
	}
	return result, nil
}

func (m *mockStudentPaperRepo) ListByUser(_ context.Context, userID string) ([]model.StudentPaper, error) {
	var result []model.StudentPaper
	for _, id := range m.order {
		if m.papers[id].UserID == userID {
			result = append(result, *m.papers[id])
		}
	}
	return result, nil
}

// ── Mock ProjectRepository ──

type mockProjectRepo struct {
	projects map[string]*model.DepartmentProject
	order    []string
	seq      int
}

func newMockProjectRepo() *mockProjectRepo {
	return &mockProjectRepo{projects: make(map[string]*model.DepartmentProject)}
}

func (m *mockProjectRepo) Create(_ context.Context, project *model.DepartmentProject) error {
	if project.ID == "" {
		m.seq++
		project.ID = fmt.Sprintf("proj-%03d", m.seq)
	}
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	m.projects[project.ID] = project
	m.order = append(m.order, project.ID)
	return nil
}

func (m *mockProjectRepo) GetByID(_ context.Context, id string) (*model.DepartmentProject, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockProjectRepo) UpdateStatus(_ context.Context, id, status string) error {
	p, ok := m.projects[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ApprovalStatus = status
	return nil
}

func (m *mockProjectRepo) ListPending(_ context.Context) ([]model.DepartmentProject, error) {
	return m.listByStatus(model.StatusPending), nil
}

func (m *mockProjectRepo) ListApproved(_ context.Context) ([]model.DepartmentProject, error) {
	return m.listByStatus(model.StatusApproved), nil
}

func (m *mockProjectRepo) listByStatus(status string) []model.DepartmentProject {
	var result []model.DepartmentProject
	for _, id := range m.order {
		if m.projects[id].ApprovalStatus == status {
			result = append(result, *m.projects[id])
		}
	}
	return result
}

func (m *mockProjectRepo) ListAll(_ context.Context) ([]model.DepartmentProject, error) {
	var result []model.DepartmentProject
	for _, id := range m.order {
		result = append(result, *m.projects[id])
	}
	return result, nil
}
