package models

import (
	"time"
)

// Product 商品表（主键为字符串，兼容 Mercado Livre 商品 ID 与本地生成 ID）
type Product struct {
	ID                string    `gorm:"primarykey;type:varchar(64)" json:"id"`                        // 主键（MLB... 或 mjtech-...）
	Name              string    `gorm:"not null" json:"name"`                                         // 商品名称
	Description       string    `json:"description"`                                                  // 简介
	Price             Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // 现价
	OriginalPrice     *Money    `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`           // 原价（可空，用于折扣展示）
	Discount          string    `gorm:"type:varchar(20)" json:"discount,omitempty"`                   // 折扣标签（如 "33% OFF"，为空时按价格推导）
	Image             string    `json:"image"`                                                        // 主图 URL
	Category          string    `gorm:"index;default:'TECNOLOGIA'" json:"category"`                   // 分类
	Condition         string    `gorm:"type:varchar(20);default:'Novo'" json:"condition"`             // 成色（Novo/Usado）
	WhatsAppLink      string    `json:"whatsapp_link"`                                                // WhatsApp 咨询链接
	AvailableQuantity int       `gorm:"not null;default:10" json:"available_quantity"`                // 可售数量
	SoldQuantity      int       `gorm:"not null;default:0" json:"sold_quantity"`                      // 已售数量
	FreeShipping      bool      `gorm:"not null;default:false" json:"free_shipping"`                  // 是否包邮
	IsActive          bool      `gorm:"not null;default:true;index" json:"is_active"`                 // 是否上架
	CreatedAt         time.Time `gorm:"index" json:"created_at"`                                      // 创建时间
	UpdatedAt         time.Time `json:"updated_at"`                                                   // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}
