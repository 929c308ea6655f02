package main

import (
	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员与店铺设置
	if err := models.InitDefaultAdmin("admin", "admin@mjtech.com.br", "admin123"); err != nil {
		stdLog.Fatalf("Failed to seed default admin: %v", err)
	}
	if err := models.InitDefaultSettings(
		cfg.Store.Name,
		cfg.Store.WhatsApp,
		cfg.Store.Email,
		cfg.Store.Website,
		cfg.Security.Lockout.MaxAttempts,
		cfg.Security.Lockout.LockoutSeconds,
	); err != nil {
		stdLog.Fatalf("Failed to seed settings: %v", err)
	}

	// 示例商品
	originalMouse := models.NewMoneyFromDecimal(decimal.NewFromFloat(119.90))
	originalKeyboard := models.NewMoneyFromDecimal(decimal.NewFromFloat(279.90))
	products := []models.Product{
		{
			ID:                "mjtech-seed-mouse",
			Name:              "Mouse Gamer MJ TECH Edition",
			Description:       "Mouse gamer com design exclusivo MJ TECH, RGB e 16000 DPI",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(79.90)),
			OriginalPrice:     &originalMouse,
			Image:             "https://images.unsplash.com/photo-1527814050087-3793815479db?w=300",
			Category:          "PERIFÉRICOS",
			Condition:         "Novo",
			WhatsAppLink:      "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre o mouse gamer",
			AvailableQuantity: 25,
			SoldQuantity:      42,
			IsActive:          true,
		},
		{
			ID:                "mjtech-seed-keyboard",
			Name:              "Teclado Mecânico MJ TECH Pro",
			Description:       "Teclado mecânico com switches Outemu Blue e iluminação RGB",
			Price:             models.NewMoneyFromDecimal(decimal.NewFromFloat(189.90)),
			OriginalPrice:     &originalKeyboard,
			Image:             "https://images.unsplash.com/photo-1541140532154-b024d705b90a?w=300",
			Category:          "PERIFÉRICOS",
			Condition:         "Novo",
			WhatsAppLink:      "https://wa.me/5519995189387?text=Olá! Gostaria de informações sobre o teclado mecânico",
			AvailableQuantity: 18,
			SoldQuantity:      31,
			IsActive:          true,
		},
	}
	for _, product := range products {
		var count int64
		models.DB.Model(&models.Product{}).Where("id = ?", product.ID).Count(&count)
		if count > 0 {
			continue
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Fatalf("Failed to seed product %s: %v", product.ID, err)
		}
	}

	stdLog.Println("Seed completed")
}
