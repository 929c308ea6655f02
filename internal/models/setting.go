package models

// 内置配置键
const (
	SettingStoreName        = "store_name"
	SettingStoreWhatsApp    = "store_whatsapp"
	SettingStoreEmail       = "store_email"
	SettingStoreWebsite     = "store_website"
	SettingMaxLoginAttempts = "max_login_attempts"
	SettingLockoutSeconds   = "lockout_time"
)

// Setting 系统设置表（键值对存储）
type Setting struct {
	Key   string `gorm:"primarykey" json:"key"` // 配置键
	Value string `json:"value"`                 // 配置值（字符串存储，数值自行解析）
}

// TableName 指定表名
func (Setting) TableName() string {
	return "settings"
}
