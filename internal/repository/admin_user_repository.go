package repository

import (
	"errors"

	"github.com/xM4T3US/server-mjtech/internal/models"

	"gorm.io/gorm"
)

// AdminUserRepository 管理员数据访问接口
type AdminUserRepository interface {
	GetByUsernameOrEmail(identity string) (*models.AdminUser, error)
	GetByID(id uint) (*models.AdminUser, error)
	List() ([]models.AdminUser, error)
	Count() (int64, error)
	Create(user *models.AdminUser) error
	Update(user *models.AdminUser) error
	UpdateFields(id uint, fields map[string]interface{}) error
	Delete(id uint) error
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) AdminUserRepository
}

// GormAdminUserRepository GORM 实现
type GormAdminUserRepository struct {
	db *gorm.DB
}

// NewAdminUserRepository 创建管理员仓库
func NewAdminUserRepository(db *gorm.DB) *GormAdminUserRepository {
	return &GormAdminUserRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormAdminUserRepository) WithTx(tx *gorm.DB) AdminUserRepository {
	if tx == nil {
		return r
	}
	return &GormAdminUserRepository{db: tx}
}

// GetByUsernameOrEmail 根据用户名或邮箱获取管理员
func (r *GormAdminUserRepository) GetByUsernameOrEmail(identity string) (*models.AdminUser, error) {
	var user models.AdminUser
	err := r.db.Where("username = ? OR email = ?", identity, identity).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取管理员
func (r *GormAdminUserRepository) GetByID(id uint) (*models.AdminUser, error) {
	var user models.AdminUser
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// List 获取管理员列表
func (r *GormAdminUserRepository) List() ([]models.AdminUser, error) {
	users := make([]models.AdminUser, 0)
	err := r.db.
		Select("id", "username", "email", "role", "is_active", "last_login_at", "created_at").
		Order("id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

// Count 统计管理员数量
func (r *GormAdminUserRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&models.AdminUser{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create 创建管理员
func (r *GormAdminUserRepository) Create(user *models.AdminUser) error {
	return r.db.Create(user).Error
}

// Update 更新管理员
func (r *GormAdminUserRepository) Update(user *models.AdminUser) error {
	return r.db.Save(user).Error
}

// UpdateFields 按列更新管理员（登录计数等局部写入）
func (r *GormAdminUserRepository) UpdateFields(id uint, fields map[string]interface{}) error {
	if id == 0 || len(fields) == 0 {
		return nil
	}
	return r.db.Model(&models.AdminUser{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 删除管理员
func (r *GormAdminUserRepository) Delete(id uint) error {
	if id == 0 {
		return nil
	}
	return r.db.Delete(&models.AdminUser{}, id).Error
}

// Transaction 在事务中执行
func (r *GormAdminUserRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}
