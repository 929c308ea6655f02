package models

import (
	"time"
)

// AccessLog 后台操作日志表
type AccessLog struct {
	ID        uint      `gorm:"primarykey" json:"id"`              // 主键
	AdminID   *uint     `gorm:"index" json:"admin_id,omitempty"`   // 操作者 ID（登录失败等场景可为空）
	Username  string    `gorm:"index" json:"username"`             // 操作者账号快照
	Action    string    `gorm:"index;not null" json:"action"`      // 动作（login/product_create/...）
	Success   bool      `gorm:"not null;default:true;index" json:"success"` // 操作是否成功（登录失败记 false）
	Detail    string    `json:"detail"`                            // 详情
	IP        string    `gorm:"type:varchar(64)" json:"ip"`        // 客户端 IP
	UserAgent string    `json:"user_agent"`                        // User-Agent
	CreatedAt time.Time `gorm:"index" json:"created_at"`           // 记录时间
}

// TableName 指定表名
func (AccessLog) TableName() string {
	return "access_logs"
}
