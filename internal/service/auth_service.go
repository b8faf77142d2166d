package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/model"
	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/cache"
	"dept-portal/backend/pkg/jwt"
)

// ── 认证模块业务错误 ──

var (
	ErrInvalidCredentials = errors.New("邮箱或密码错误")
	ErrEmailExists        = errors.New("邮箱已被注册")
	ErrUserNotFound       = errors.New("用户不存在")
	ErrInvalidRefresh     = errors.New("refresh token 无效")
)

// AuthService 认证业务接口
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	// Refresh 校验 refresh token 后重新查询角色集并签发新 Token 对，
	// 旧 refresh token 进入黑名单（轮换）
	Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error)
	// Logout 将当前 access token（以及可选的 refresh token）加入黑名单
	Logout(ctx context.Context, claims *jwt.Claims, refreshToken string) error
	Me(ctx context.Context, userID string) (*dto.UserResponse, error)
}

type authService struct {
	repo   *repository.Repository
	jwtMgr *jwt.Manager
	cache  *cache.Client
	logger *zap.Logger
}

// NewAuthService 创建 AuthService 实例
func NewAuthService(
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	cacheClient *cache.Client,
	logger *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		jwtMgr: jwtMgr,
		cache:  cacheClient,
		logger: logger,
	}
}

// ────────────────────── Register ──────────────────────

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	// 1. 检查邮箱唯一性
	if _, err := s.repo.Profile.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 哈希密码 (bcrypt)
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("密码哈希失败", zap.Error(err))
		return nil, err
	}

	// 3. 创建档案：新账号一律 pending，等待管理员审批
	profile := &model.Profile{
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		PasswordHash: string(hash),
		Status:       model.StatusPending,
	}
	if err := s.repo.Profile.Create(ctx, profile); err != nil {
		// 并发注册竞争唯一索引
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailExists
		}
		s.logger.Error("创建用户失败", zap.Error(err))
		return nil, err
	}

	if err := s.cache.Invalidate(ctx, "users:*"); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", "users:*"), zap.Error(err))
	}

	return &dto.RegisterResponse{
		ID:     profile.UserID,
		Email:  profile.Email,
		Status: profile.Status,
	}, nil
}

// ────────────────────── Login ──────────────────────

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	// 1. 查询用户
	profile, err := s.repo.Profile.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("查询用户失败", zap.Error(err))
		return nil, err
	}

	// 2. 验证密码 (bcrypt)
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// 3. 查询角色集并签发 Token 对（角色快照写入 JWT）
	return s.issueTokens(ctx, profile)
}

// ────────────────────── Refresh ──────────────────────

func (s *authService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.TokenResponse, error) {
	claims, err := s.jwtMgr.ParseToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidRefresh
	}
	if claims.TokenType != "refresh" {
		return nil, ErrInvalidRefresh
	}

	// 黑名单检查（已登出 / 已轮换的 refresh token 不可复用）
	blacklisted, err := s.cache.IsBlacklisted(ctx, claims.ID)
	if err != nil {
		s.logger.Warn("黑名单查询失败", zap.Error(err))
	} else if blacklisted {
		return nil, ErrInvalidRefresh
	}

	profile, err := s.repo.Profile.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", claims.UserID), zap.Error(err))
		return nil, err
	}

	resp, err := s.issueTokens(ctx, profile)
	if err != nil {
		return nil, err
	}

	// 轮换：旧 refresh token 失效
	if claims.ExpiresAt != nil {
		if err := s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Warn("旧 refresh token 加入黑名单失败", zap.Error(err))
		}
	}

	return resp, nil
}

// ────────────────────── Logout ──────────────────────

func (s *authService) Logout(ctx context.Context, claims *jwt.Claims, refreshToken string) error {
	if claims.ExpiresAt != nil {
		if err := s.cache.BlacklistToken(ctx, claims.ID, time.Until(claims.ExpiresAt.Time)); err != nil {
			s.logger.Error("access token 加入黑名单失败", zap.Error(err))
			return err
		}
	}

	// refresh token 可选：给了就一并拉黑，解析失败不影响登出结果
	if refreshToken != "" {
		if rc, err := s.jwtMgr.ParseToken(refreshToken); err == nil && rc.ExpiresAt != nil {
			if err := s.cache.BlacklistToken(ctx, rc.ID, time.Until(rc.ExpiresAt.Time)); err != nil {
				s.logger.Warn("refresh token 加入黑名单失败", zap.Error(err))
			}
		}
	}

	return nil
}

// ────────────────────── Me ──────────────────────

func (s *authService) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	profile, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	roles, err := s.repo.UserRole.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户角色失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(profile, roles)
	return &resp, nil
}

// ── 内部辅助方法 ──

// issueTokens 查询角色集快照并生成 Token 对
func (s *authService) issueTokens(ctx context.Context, profile *model.Profile) (*dto.TokenResponse, error) {
	userRoles, err := s.repo.UserRole.ListByUser(ctx, profile.UserID)
	if err != nil {
		s.logger.Error("查询用户角色失败", zap.String("id", profile.UserID), zap.Error(err))
		return nil, err
	}
	roles := roleNames(userRoles)

	accessToken, err := s.jwtMgr.GenerateAccessToken(profile.UserID, profile.Email, roles)
	if err != nil {
		s.logger.Error("生成 AccessToken 失败", zap.Error(err))
		return nil, err
	}

	refreshToken, err := s.jwtMgr.GenerateRefreshToken(profile.UserID, profile.Email, roles)
	if err != nil {
		s.logger.Error("生成 RefreshToken 失败", zap.Error(err))
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.jwtMgr.AccessTokenTTL().Seconds()),
		User:         toUserResponse(profile, userRoles),
	}, nil
}

// roleNames 提取角色名序列（保持分配时间升序）
func roleNames(userRoles []model.UserRole) []string {
	names := make([]string, 0, len(userRoles))
	for _, r := range userRoles {
		names = append(names, r.Role)
	}
	return names
}

// toUserResponse 将档案与角色集组装为 dto.UserResponse
func toUserResponse(profile *model.Profile, userRoles []model.UserRole) dto.UserResponse {
	resp := dto.UserResponse{
		ID:          profile.UserID,
		DisplayName: profile.DisplayName,
		Email:       profile.Email,
		Status:      profile.Status,
		Roles:       roleNames(userRoles),
		CreatedAt:   profile.CreatedAt.Format(time.RFC3339),
	}
	if profile.MatricNumber != nil {
		resp.MatricNumber = *profile.MatricNumber
	}
	return resp
}
