package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"dept-portal/backend/internal/dto"
	"dept-portal/backend/internal/model"
	"dept-portal/backend/internal/repository"
	"dept-portal/backend/pkg/cache"
)

// ── 用户模块业务错误 ──

var (
	ErrRoleAlreadyAssigned = errors.New("该角色已分配给此用户")
	ErrUserNotApproved     = errors.New("账号未通过审批，不能分配角色")
	ErrMatricNumberTaken   = errors.New("该学号已被其他用户占用")
)

const usersCacheKey = "users:all"

// UserService 用户管理业务接口（管理员审批 / 角色分配 + 学生自助档案）
type UserService interface {
	// ReviewUser 审批账号：pending → approved/rejected。
	// 重复审批覆盖旧决定（幂等的最后写入生效）
	ReviewUser(ctx context.Context, userID, decision string) error
	// AssignRole 为已审批账号追加角色；首次分配 lecturer 角色时
	// 自动从账号档案派生教师档案
	AssignRole(ctx context.Context, userID string, req *dto.AssignRoleRequest) error
	// ListUsersWithRoles 全量用户列表，逐用户挂载角色集
	ListUsersWithRoles(ctx context.Context) ([]dto.UserResponse, error)
	// UpdateStudentProfile 学生档案 upsert（显示名 + 学号）
	UpdateStudentProfile(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	cache  *cache.Client
	logger *zap.Logger
}

// NewUserService 创建 UserService 实例
func NewUserService(repo *repository.Repository, cacheClient *cache.Client, logger *zap.Logger) UserService {
	return &userService{repo: repo, cache: cacheClient, logger: logger}
}

// ────────────────────── ReviewUser ──────────────────────

func (s *userService) ReviewUser(ctx context.Context, userID, decision string) error {
	if err := s.repo.Profile.UpdateStatus(ctx, userID, decision); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("审批账号失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	s.invalidateUsers(ctx)
	return nil
}

// ────────────────────── AssignRole ──────────────────────

func (s *userService) AssignRole(ctx context.Context, userID string, req *dto.AssignRoleRequest) error {
	// 1. 目标账号必须存在且已审批通过
	profile, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return err
	}
	if profile.Status != model.StatusApproved {
		return ErrUserNotApproved
	}

	// 2. 同一角色不可重复分配
	exists, err := s.repo.UserRole.Exists(ctx, userID, req.Role)
	if err != nil {
		s.logger.Error("查询角色分配失败", zap.String("id", userID), zap.Error(err))
		return err
	}
	if exists {
		return ErrRoleAlreadyAssigned
	}

	// 3. 写入角色（唯一索引兜底并发竞争）
	if err := s.repo.UserRole.Create(ctx, &model.UserRole{UserID: userID, Role: req.Role}); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrRoleAlreadyAssigned
		}
		s.logger.Error("分配角色失败", zap.String("id", userID), zap.Error(err))
		return err
	}

	// 4. 首次成为 lecturer 时从账号档案派生教师档案（已有档案则跳过）
	if req.Role == model.RoleLecturer {
		if err := s.ensureLecturerProfile(ctx, profile); err != nil {
			// 角色已写入，档案创建失败单独上抛；下次再分配会因角色重复
			// 而失败，档案需人工补建——该非事务性是已知限制
			s.logger.Error("创建教师档案失败", zap.String("id", userID), zap.Error(err))
			return err
		}
		s.invalidateLecturers(ctx)
	}

	s.invalidateUsers(ctx)
	return nil
}

// ensureLecturerProfile 不存在则创建教师档案：
// 姓名 / 邮箱取自账号档案，为空时才回退到占位值
func (s *userService) ensureLecturerProfile(ctx context.Context, profile *model.Profile) error {
	_, err := s.repo.Lecturer.GetByUserID(ctx, profile.UserID)
	if err == nil {
		return nil // 档案已存在，幂等跳过
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	name := profile.DisplayName
	if name == "" {
		name = "New Lecturer"
	}
	var email *string
	if profile.Email != "" {
		email = &profile.Email
	}

	lecturer := &model.Lecturer{
		UserID: profile.UserID,
		Name:   name,
		Email:  email,
	}
	if err := s.repo.Lecturer.Create(ctx, lecturer); err != nil {
		// 并发下另一请求先建档
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return err
	}
	return nil
}

// ────────────────────── ListUsersWithRoles ──────────────────────

func (s *userService) ListUsersWithRoles(ctx context.Context) ([]dto.UserResponse, error) {
	var cached []dto.UserResponse
	if err := s.cache.GetJSON(ctx, usersCacheKey, &cached); err == nil {
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("读取用户列表缓存失败", zap.Error(err))
	}

	profiles, err := s.repo.Profile.List(ctx)
	if err != nil {
		s.logger.Error("列出用户失败", zap.Error(err))
		return nil, err
	}

	// 逐用户查询角色集（管理员看板数据量小，N+1 在可接受范围）
	result := make([]dto.UserResponse, 0, len(profiles))
	for i := range profiles {
		roles, err := s.repo.UserRole.ListByUser(ctx, profiles[i].UserID)
		if err != nil {
			s.logger.Error("查询用户角色失败", zap.String("id", profiles[i].UserID), zap.Error(err))
			return nil, err
		}
		result = append(result, toUserResponse(&profiles[i], roles))
	}

	if err := s.cache.SetJSON(ctx, usersCacheKey, result); err != nil {
		s.logger.Warn("写入用户列表缓存失败", zap.Error(err))
	}

	return result, nil
}

// ────────────────────── UpdateStudentProfile ──────────────────────

func (s *userService) UpdateStudentProfile(ctx context.Context, userID string, req *dto.UpdateStudentProfileRequest) (*dto.UserResponse, error) {
	// 读取现有档案：保留邮箱 / 密码等 upsert 不触碰的字段
	profile, err := s.repo.Profile.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("查询用户失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	// 预检学号占用：自身覆盖不算冲突
	if holder, err := s.repo.Profile.GetByMatricNumber(ctx, req.MatricNumber); err == nil {
		if holder.UserID != userID {
			return nil, ErrMatricNumberTaken
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("查询学号占用失败", zap.String("matric", req.MatricNumber), zap.Error(err))
		return nil, err
	}

	profile.DisplayName = req.DisplayName
	matric := req.MatricNumber
	profile.MatricNumber = &matric

	if err := s.repo.Profile.UpsertStudentProfile(ctx, profile); err != nil {
		// 唯一索引兜底预检后的并发竞争
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrMatricNumberTaken
		}
		s.logger.Error("更新学生档案失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	s.invalidateUsers(ctx)

	roles, err := s.repo.UserRole.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("查询用户角色失败", zap.String("id", userID), zap.Error(err))
		return nil, err
	}

	resp := toUserResponse(profile, roles)
	return &resp, nil
}

// ── 内部辅助方法 ──

func (s *userService) invalidateUsers(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "users:*"); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", "users:*"), zap.Error(err))
	}
}

func (s *userService) invalidateLecturers(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "lecturers:*"); err != nil {
		s.logger.Warn("缓存失效失败", zap.String("pattern", "lecturers:*"), zap.Error(err))
	}
}
