package models

import (
	"strconv"

	"github.com/xM4T3US/server-mjtech/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(username, email, password string) error {
	var count int64
	DB.Model(&AdminUser{}).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if email == "" {
		email = "admin@mjtech.com.br"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := AdminUser{
		Username:     username,
		Email:        email,
		FullName:     "Administrador",
		PasswordHash: string(hash),
		Role:         RoleAdmin,
		IsActive:     true,
	}
	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}
	return nil
}

// InitDefaultSettings 初始化默认店铺设置（仅在键不存在时写入）
func InitDefaultSettings(storeName, whatsapp, email, website string, maxAttempts, lockoutSeconds int) error {
	defaults := []Setting{
		{Key: SettingStoreName, Value: storeName},
		{Key: SettingStoreWhatsApp, Value: whatsapp},
		{Key: SettingStoreEmail, Value: email},
		{Key: SettingStoreWebsite, Value: website},
		{Key: SettingMaxLoginAttempts, Value: strconv.Itoa(maxAttempts)},
		{Key: SettingLockoutSeconds, Value: strconv.Itoa(lockoutSeconds)},
	}
	for _, s := range defaults {
		var count int64
		DB.Model(&Setting{}).Where("key = ?", s.Key).Count(&count)
		if count > 0 {
			continue
		}
		if err := DB.Create(&s).Error; err != nil {
			return err
		}
	}
	return nil
}
