package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"dept-portal/backend/config"
	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/model"
	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/jwt"
)

// ── 测试辅助 ──

func newTestRepo() (*repository.Repository, *mockProfileRepo, *mockUserRoleRepo, *mockLecturerRepo) {
	profileRepo := newMockProfileRepo()
	roleRepo := newMockUserRoleRepo()
	lecturerRepo := newMockLecturerRepo()
	repo := &repository.Repository{
		Profile:       profileRepo,
		UserRole:      roleRepo,
		Lecturer:      lecturerRepo,
		ResearchPaper: newMockResearchPaperRepo(),
		StudentPaper:  newMockStudentPaperRepo(),
		Project:       newMockProjectRepo(),
	}
	return repo, profileRepo, roleRepo, lecturerRepo
}

func newTestAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "test-secret-key-32-bytes-long!!!",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 168 * time.Hour,
		},
	}
}

func setupTestAuthService() (AuthService, *repository.Repository, *mockProfileRepo, *mockUserRoleRepo, *jwt.Manager) {
	repo, profileRepo, roleRepo, _ := newTestRepo()
	cfg := newTestAuthConfig()
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc := NewAuthService(repo, jwtMgr, nil, zap.NewNop())
	return svc, repo, profileRepo, roleRepo, jwtMgr
}

func createTestProfile(profileRepo *mockProfileRepo, userID, email, password, status string) *model.Profile {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	profile := &model.Profile{
		UserID:       userID,
		DisplayName:  "测试用户",
		Email:        email,
		PasswordHash: string(hash),
		Status:       status,
		BaseModel:    model.BaseModel{CreatedAt: time.Now()},
	}
	profileRepo.profiles[userID] = profile
	return profile
}

// ── Register 测试 ──

func TestAuthService_Register_Success(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	resp, err := svc.Register(context.Background(), &dto.RegisterRequest{
		DisplayName: "张三",
		Email:       "zhangsan@example.edu",
		Password:    "password123",
	})
	if err != nil {
		t.Fatalf("Register 应成功: %v", err)
	}
	if resp.Status != model.StatusPending {
		t.Errorf("新注册账号应为 pending，实际=%s", resp.Status)
	}
	if resp.ID == "" {
		t.Error("期望返回用户 ID")
	}
}

func TestAuthService_Register_EmailExists(t *testing.T) {
	svc, _, profileRepo, _, _ := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "taken@example.edu", "password123", model.StatusApproved)

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{
		Email:    "taken@example.edu",
		Password: "password123",
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Errorf("期望 ErrEmailExists，实际: %v", err)
	}
}

// ── Login 测试 ──

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, profileRepo, roleRepo, jwtMgr := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "user@example.edu", "password123", model.StatusApproved)
	roleRepo.Create(context.Background(), &model.UserRole{UserID: "uid-001", Role: model.RoleStudent})

	resp, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("期望返回 Token 对")
	}
	if resp.ExpiresIn != int((15 * time.Minute).Seconds()) {
		t.Errorf("期望 expires_in=900，实际=%d", resp.ExpiresIn)
	}

	// 角色快照应写入 Token 声明
	claims, err := jwtMgr.ParseToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("解析 AccessToken 失败: %v", err)
	}
	if !claims.HasRole(model.RoleStudent) {
		t.Errorf("期望角色快照含 student，实际=%v", claims.Roles)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, profileRepo, _, _ := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "user@example.edu", "password123", model.StatusApproved)

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.edu",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.edu",
		Password: "password123",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("期望 ErrInvalidCredentials，实际: %v", err)
	}
}

// ── Refresh 测试 ──

func TestAuthService_Refresh_Success(t *testing.T) {
	svc, _, profileRepo, roleRepo, _ := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "user@example.edu", "password123", model.StatusApproved)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 刷新时角色集应重新查询（登录后新分配的角色要出现在新快照里）
	roleRepo.Create(context.Background(), &model.UserRole{UserID: "uid-001", Role: model.RoleLecturer})

	resp, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh 应成功: %v", err)
	}
	found := false
	for _, r := range resp.User.Roles {
		if r == model.RoleLecturer {
			found = true
		}
	}
	if !found {
		t.Errorf("期望刷新后角色快照含 lecturer，实际=%v", resp.User.Roles)
	}
}

func TestAuthService_Refresh_RejectsAccessToken(t *testing.T) {
	svc, _, profileRepo, _, _ := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "user@example.edu", "password123", model.StatusApproved)

	login, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.edu",
		Password: "password123",
	})
	if err != nil {
		t.Fatalf("Login 应成功: %v", err)
	}

	// 用 access token 冒充 refresh token 应被拒绝
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: login.AccessToken})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

func TestAuthService_Refresh_Garbage(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, ErrInvalidRefresh) {
		t.Errorf("期望 ErrInvalidRefresh，实际: %v", err)
	}
}

// ── Me 测试 ──

func TestAuthService_Me_Success(t *testing.T) {
	svc, _, profileRepo, roleRepo, _ := setupTestAuthService()
	createTestProfile(profileRepo, "uid-001", "user@example.edu", "password123", model.StatusApproved)
	roleRepo.Create(context.Background(), &model.UserRole{UserID: "uid-001", Role: model.RoleAdmin})

	resp, err := svc.Me(context.Background(), "uid-001")
	if err != nil {
		t.Fatalf("Me 应成功: %v", err)
	}
	if resp.Email != "user@example.edu" {
		t.Errorf("期望 email=user@example.edu，实际=%s", resp.Email)
	}
	if len(resp.Roles) != 1 || resp.Roles[0] != model.RoleAdmin {
		t.Errorf("期望角色=[admin]，实际=%v", resp.Roles)
	}
}

func TestAuthService_Me_NotFound(t *testing.T) {
	svc, _, _, _, _ := setupTestAuthService()

	_, err := svc.Me(context.Background(), "nonexistent")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("期望 ErrUserNotFound，实际: %v", err)
	}
}
