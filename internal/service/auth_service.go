package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/xM4T3US/server-mjtech/internal/cache"
	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 认证服务（登录、锁定策略、JWT 签发与校验）
type AuthService struct {
	cfg         *config.Config
	adminRepo   repository.AdminUserRepository
	settingRepo repository.SettingRepository
	now         func() time.Time
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, adminRepo repository.AdminUserRepository, settingRepo repository.SettingRepository) *AuthService {
	return &AuthService{
		cfg:         cfg,
		adminRepo:   adminRepo,
		settingRepo: settingRepo,
		now:         time.Now,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// JWTClaims JWT 声明
type JWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token（rememberMe 使用更长有效期）
func (s *AuthService) GenerateJWT(user *models.AdminUser, rememberMe bool) (string, time.Time, error) {
	hours := s.cfg.JWT.ExpireHours
	if rememberMe && s.cfg.JWT.RememberMeExpireHours > 0 {
		hours = s.cfg.JWT.RememberMeExpireHours
	}
	if hours <= 0 {
		hours = 8
	}
	now := s.now()
	expiresAt := now.Add(time.Duration(hours) * time.Hour)

	claims := JWTClaims{
		AdminID:  user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}

// lockoutPolicy 读取锁定策略（settings 优先，其次配置默认值）
func (s *AuthService) lockoutPolicy() (maxAttempts int, lockout time.Duration) {
	maxAttempts = s.cfg.Security.Lockout.MaxAttempts
	lockoutSeconds := s.cfg.Security.Lockout.LockoutSeconds
	if s.settingRepo != nil {
		if v, ok, err := s.settingRepo.Get(models.SettingMaxLoginAttempts); err == nil && ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				maxAttempts = n
			}
		}
		if v, ok, err := s.settingRepo.Get(models.SettingLockoutSeconds); err == nil && ok {
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
				lockoutSeconds = n
			}
		}
	}
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	if lockoutSeconds <= 0 {
		lockoutSeconds = 900
	}
	return maxAttempts, time.Duration(lockoutSeconds) * time.Second
}

// Login 管理员登录（含失败计数与锁定状态机）
func (s *AuthService) Login(identity, password string, rememberMe bool) (*models.AdminUser, string, time.Time, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" || password == "" {
		return nil, "", time.Time{}, NewValidationError("username and password are required")
	}

	user, err := s.adminRepo.GetByUsernameOrEmail(identity)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", time.Time{}, ErrAccountDisabled
	}

	now := s.now()
	if user.IsLocked(now) {
		// 锁定期间不做密码比对
		return nil, "", time.Time{}, &AccountLockedError{LockedUntil: *user.LockedUntil}
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		maxAttempts, lockout := s.lockoutPolicy()
		attempts := user.FailedAttempts + 1
		fields := map[string]interface{}{"failed_attempts": attempts}
		var lockedUntil *time.Time
		if attempts >= maxAttempts {
			until := now.Add(lockout)
			lockedUntil = &until
			fields["locked_until"] = until
		}
		if err := s.adminRepo.UpdateFields(user.ID, fields); err != nil {
			logger.Errorw("login_failure_counter_update_failed", "admin_id", user.ID, "error", err)
		}
		if lockedUntil != nil {
			logger.Warnw("admin_account_locked",
				"admin_id", user.ID,
				"username", user.Username,
				"failed_attempts", attempts,
				"locked_until", lockedUntil.Format(time.RFC3339),
			)
			return nil, "", time.Time{}, &AccountLockedError{LockedUntil: *lockedUntil}
		}
		return nil, "", time.Time{}, &InvalidCredentialsError{AttemptsRemaining: maxAttempts - attempts}
	}

	// 登录成功，清零计数并解除锁定
	fields := map[string]interface{}{
		"failed_attempts": 0,
		"locked_until":    nil,
		"last_login_at":   now,
	}
	if err := s.adminRepo.UpdateFields(user.ID, fields); err != nil {
		return nil, "", time.Time{}, err
	}
	user.FailedAttempts = 0
	user.LockedUntil = nil
	user.LastLoginAt = &now

	token, expiresAt, err := s.GenerateJWT(user, rememberMe)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetAdminAuthState(context.Background(), cache.BuildAdminAuthState(user))

	return user, token, expiresAt, nil
}

// VerifyToken 校验 Token 并返回最新的管理员信息（账号被停用则拒绝）
func (s *AuthService) VerifyToken(tokenString string) (*models.AdminUser, *JWTClaims, error) {
	claims, err := s.ParseJWT(tokenString)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}
	user, err := s.adminRepo.GetByID(claims.AdminID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, nil, ErrAccountDisabled
	}
	return user, claims, nil
}

// ChangePassword 修改管理员密码
func (s *AuthService) ChangePassword(adminID uint, oldPassword, newPassword string) error {
	user, err := s.adminRepo.GetByID(adminID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := s.VerifyPassword(user.PasswordHash, oldPassword); err != nil {
		return ErrInvalidPassword
	}
	if len(newPassword) < 6 {
		return NewValidationError("password must be at least 6 characters")
	}

	hash, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}
	if err := s.adminRepo.UpdateFields(adminID, map[string]interface{}{"password_hash": hash}); err != nil {
		return err
	}
	_ = cache.DelAdminAuthState(context.Background(), adminID)
	return nil
}
