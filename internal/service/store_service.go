package service

import (
	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"
)

// StoreService 店铺信息服务（settings 表优先，配置兜底）
type StoreService struct {
	cfg         *config.Config
	settingRepo repository.SettingRepository
}

// NewStoreService 创建店铺信息服务实例
func NewStoreService(cfg *config.Config, settingRepo repository.SettingRepository) *StoreService {
	return &StoreService{
		cfg:         cfg,
		settingRepo: settingRepo,
	}
}

// StoreInfo 店铺公开信息
type StoreInfo struct {
	ID       string       `json:"id"`
	Nickname string       `json:"nickname"`
	Country  string       `json:"country"`
	Message  string       `json:"message"`
	Contact  StoreContact `json:"contact"`
}

// StoreContact 店铺联系方式
type StoreContact struct {
	WhatsApp string `json:"whatsapp"`
	Email    string `json:"email"`
	Website  string `json:"website"`
}

// Info 返回店铺公开信息
func (s *StoreService) Info() StoreInfo {
	info := StoreInfo{
		ID:       s.cfg.Mercado.SellerID,
		Nickname: s.cfg.Store.Name,
		Country:  "BR",
		Message:  "Loja especializada em tecnologia e reparos",
		Contact: StoreContact{
			WhatsApp: s.cfg.Store.WhatsApp,
			Email:    s.cfg.Store.Email,
			Website:  s.cfg.Store.Website,
		},
	}
	if s.settingRepo == nil {
		return info
	}
	settings, err := s.settingRepo.GetAll()
	if err != nil {
		return info
	}
	if v := settings[models.SettingStoreName]; v != "" {
		info.Nickname = v
	}
	if v := settings[models.SettingStoreWhatsApp]; v != "" {
		info.Contact.WhatsApp = v
	}
	if v := settings[models.SettingStoreEmail]; v != "" {
		info.Contact.Email = v
	}
	if v := settings[models.SettingStoreWebsite]; v != "" {
		info.Contact.Website = v
	}
	return info
}

// Name 返回店铺名称
func (s *StoreService) Name() string {
	return s.Info().Nickname
}
