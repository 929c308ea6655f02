package provider

import (
	"github.com/xM4T3US/server-mjtech/internal/authz"
	"github.com/xM4T3US/server-mjtech/internal/cache"
	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/mercadolivre"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"
	"github.com/xM4T3US/server-mjtech/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	// Repositories
	AdminUserRepo repository.AdminUserRepository
	ProductRepo   repository.ProductRepository
	AccessLogRepo repository.AccessLogRepository
	SettingRepo   repository.SettingRepository

	// Services
	AuthzService     *authz.Service
	AuthService      *service.AuthService
	ProductService   *service.ProductService
	AdminUserService *service.AdminUserService
	AccessLogService *service.AccessLogService
	CatalogService   *service.CatalogService
	StoreService     *service.StoreService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminUserRepo = repository.NewAdminUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.AccessLogRepo = repository.NewAccessLogRepository(db)
	c.SettingRepo = repository.NewSettingRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
	} else {
		c.AuthzService = authzService
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminUserRepo, c.SettingRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.SettingRepo)
	c.AdminUserService = service.NewAdminUserService(c.AdminUserRepo, c.AccessLogRepo, c.AuthService)
	c.AccessLogService = service.NewAccessLogService(c.AccessLogRepo)
	c.StoreService = service.NewStoreService(c.Config, c.SettingRepo)

	var mlClient *mercadolivre.Client
	if c.Config.Mercado.ClientID != "" && c.Config.Mercado.ClientSecret != "" {
		client, err := mercadolivre.NewClient(mercadolivre.Config{
			ClientID:       c.Config.Mercado.ClientID,
			ClientSecret:   c.Config.Mercado.ClientSecret,
			SellerID:       c.Config.Mercado.SellerID,
			Nickname:       c.Config.Mercado.Nickname,
			SiteID:         c.Config.Mercado.SiteID,
			BaseURL:        c.Config.Mercado.BaseURL,
			TimeoutSeconds: c.Config.Mercado.TimeoutSeconds,
			Limit:          c.Config.Mercado.Limit,
		})
		if err != nil {
			logger.Errorw("provider_init_mercadolivre_failed", "error", err)
		} else {
			mlClient = client
		}
	}
	c.CatalogService = service.NewCatalogService(c.Config, c.ProductService, mlClient)
}
