package service

import (
	"errors"
	"fmt"
	"time"
)

// 服务层统一错误定义，handler 层通过 errors.Is 映射为 HTTP 状态码
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrNotFound           = errors.New("record not found")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already taken")
	ErrInvalidRole        = errors.New("invalid role")
	ErrValidation         = errors.New("validation failed")
	ErrForbidden          = errors.New("forbidden")
	ErrSelfOperation      = errors.New("operation not allowed on own account")
	ErrUpstream           = errors.New("upstream request failed")
)

// InvalidCredentialsError 密码错误（达到锁定阈值前携带剩余尝试次数）
type InvalidCredentialsError struct {
	AttemptsRemaining int
}

// Error 实现 error 接口
func (e *InvalidCredentialsError) Error() string {
	return fmt.Sprintf("invalid credentials, %d attempts remaining", e.AttemptsRemaining)
}

// Unwrap 保持 errors.Is(err, ErrInvalidCredentials) 成立
func (e *InvalidCredentialsError) Unwrap() error {
	return ErrInvalidCredentials
}

// AccountLockedError 账号锁定错误（携带解锁时间）
type AccountLockedError struct {
	LockedUntil time.Time
}

// Error 实现 error 接口
func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account locked until %s", e.LockedUntil.Format(time.RFC3339))
}

// RemainingMinutes 距离解锁的剩余分钟数（向上取整，至少 1 分钟）
func (e *AccountLockedError) RemainingMinutes(now time.Time) int {
	remaining := e.LockedUntil.Sub(now)
	if remaining <= 0 {
		return 0
	}
	minutes := int((remaining + time.Minute - 1) / time.Minute)
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}

// NewValidationError 构造带说明的参数校验错误
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
