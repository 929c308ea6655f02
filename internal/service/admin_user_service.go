package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/xM4T3US/server-mjtech/internal/cache"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"gorm.io/gorm"
)

// AdminUserService 管理员账号管理服务（仅 admin 角色可用）
type AdminUserService struct {
	adminRepo     repository.AdminUserRepository
	accessLogRepo repository.AccessLogRepository
	authService   *AuthService
}

// NewAdminUserService 创建管理员账号管理服务实例
func NewAdminUserService(adminRepo repository.AdminUserRepository, accessLogRepo repository.AccessLogRepository, authService *AuthService) *AdminUserService {
	return &AdminUserService{
		adminRepo:     adminRepo,
		accessLogRepo: accessLogRepo,
		authService:   authService,
	}
}

// List 获取管理员列表（不含密码哈希）
func (s *AdminUserService) List() ([]models.AdminUser, error) {
	return s.adminRepo.List()
}

// CreateInput 创建管理员的入参
type CreateInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Create 创建管理员（与审计日志同事务写入）
func (s *AdminUserService) Create(operator *models.AdminUser, input CreateInput, ip, userAgent string) (*models.AdminUser, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = models.RoleEditor
	}

	if username == "" {
		return nil, NewValidationError("username is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, NewValidationError("a valid email is required")
	}
	if len(input.Password) < 6 {
		return nil, NewValidationError("password must be at least 6 characters")
	}
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, ErrInvalidRole
	}

	if existing, err := s.adminRepo.GetByUsernameOrEmail(username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrUsernameTaken
	}
	if existing, err := s.adminRepo.GetByUsernameOrEmail(email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := s.authService.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(input.FullName)
	if fullName == "" {
		fullName = username
	}

	user := &models.AdminUser{
		Username:     username,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	err = s.adminRepo.Transaction(func(tx *gorm.DB) error {
		if err := s.adminRepo.WithTx(tx).Create(user); err != nil {
			return err
		}
		log := &models.AccessLog{
			Username:  operatorName(operator),
			Action:    "user_create",
			Success:   true,
			Detail:    fmt.Sprintf("created admin user %s (role=%s)", username, role),
			IP:        ip,
			UserAgent: userAgent,
		}
		if operator != nil {
			log.AdminID = &operator.ID
		}
		return s.accessLogRepo.WithTx(tx).Create(log)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// SetRole 修改管理员角色
func (s *AdminUserService) SetRole(operator *models.AdminUser, id uint, role string) (*models.AdminUser, error) {
	role = strings.TrimSpace(role)
	if role != models.RoleAdmin && role != models.RoleEditor {
		return nil, ErrInvalidRole
	}
	if operator != nil && operator.ID == id {
		return nil, ErrSelfOperation
	}

	user, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.adminRepo.UpdateFields(id, map[string]interface{}{"role": role}); err != nil {
		return nil, err
	}
	user.Role = role
	_ = cache.DelAdminAuthState(context.Background(), id)
	return user, nil
}

// ToggleActive 启用/停用管理员（不允许操作自己）
func (s *AdminUserService) ToggleActive(operator *models.AdminUser, id uint) (*models.AdminUser, error) {
	if operator != nil && operator.ID == id {
		return nil, ErrSelfOperation
	}
	user, err := s.adminRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	if err := s.adminRepo.UpdateFields(id, map[string]interface{}{"is_active": !user.IsActive}); err != nil {
		return nil, err
	}
	user.IsActive = !user.IsActive
	// 停用后立即失效鉴权快照，令已签发 Token 失效
	_ = cache.DelAdminAuthState(context.Background(), id)
	return user, nil
}

// Delete 删除管理员（不允许删除自己）
func (s *AdminUserService) Delete(operator *models.AdminUser, id uint) error {
	if operator != nil && operator.ID == id {
		return ErrSelfOperation
	}
	user, err := s.adminRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.adminRepo.Delete(id); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), id)
	return nil
}

func operatorName(operator *models.AdminUser) string {
	if operator == nil {
		return ""
	}
	return operator.Username
}
