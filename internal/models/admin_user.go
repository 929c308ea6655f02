package models

import (
	"time"
)

// 管理员角色
const (
	RoleAdmin  = "admin"  // 全量权限（含用户管理）
	RoleEditor = "editor" // 仅商品管理
)

// AdminUser 后台管理员表
type AdminUser struct {
	ID             uint       `gorm:"primarykey" json:"id"`                              // 主键
	Username       string     `gorm:"uniqueIndex;not null" json:"username"`              // 登录账号
	Email          string     `gorm:"uniqueIndex;not null" json:"email"`                 // 邮箱（也可用于登录）
	FullName       string     `gorm:"not null;default:''" json:"full_name"`              // 显示名
	PasswordHash   string     `gorm:"not null" json:"-"`                                 // 密码哈希（不返回给前端）
	Role           string     `gorm:"type:varchar(20);not null;default:'editor';index" json:"role"` // 角色（admin/editor）
	IsActive       bool       `gorm:"not null;default:true;index" json:"is_active"`      // 是否启用
	FailedAttempts int        `gorm:"not null;default:0" json:"-"`                       // 连续登录失败次数
	LockedUntil    *time.Time `gorm:"index" json:"-"`                                    // 锁定截止时间（为空或已过期则未锁定）
	LastLoginAt    *time.Time `json:"last_login_at"`                                     // 最后登录时间
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`                           // 创建时间
	UpdatedAt      time.Time  `json:"updated_at"`                                        // 更新时间
}

// TableName 指定表名
func (AdminUser) TableName() string {
	return "admin_users"
}

// IsLocked 判断当前是否处于锁定状态
func (u *AdminUser) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}
