package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/xM4T3US/server-mjtech/internal/cache"
	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/mercadolivre"
	"github.com/xM4T3US/server-mjtech/internal/models"
)

// 目录数据来源
const (
	SourceLocal    = "local"
	SourceAPI      = "api"
	SourceCache    = "cache"
	SourceFallback = "fallback"
)

// CatalogService 前台商品目录服务（本地库或 Mercado Livre，带缓存与兜底）
type CatalogService struct {
	cfg            *config.Config
	productService *ProductService
	mlClient       *mercadolivre.Client
}

// NewCatalogService 创建目录服务实例（mlClient 可为 nil，此时仅使用本地库）
func NewCatalogService(cfg *config.Config, productService *ProductService, mlClient *mercadolivre.Client) *CatalogService {
	return &CatalogService{
		cfg:            cfg,
		productService: productService,
		mlClient:       mlClient,
	}
}

// CatalogResult 目录查询结果
type CatalogResult struct {
	Products []mercadolivre.Product
	Source   string
	SellerID string
}

func (s *CatalogService) cacheKey() string {
	seller := strings.TrimSpace(s.cfg.Mercado.SellerID)
	if seller == "" {
		seller = "local"
	}
	return fmt.Sprintf("catalog:products:%s", seller)
}

func (s *CatalogService) cacheTTL() time.Duration {
	minutes := s.cfg.Catalog.CacheTTLMinutes
	if minutes <= 0 {
		minutes = 30
	}
	return time.Duration(minutes) * time.Minute
}

// useMercadoLivre 判断是否走 Mercado Livre 数据源
func (s *CatalogService) useMercadoLivre() bool {
	return strings.EqualFold(strings.TrimSpace(s.cfg.Catalog.Source), "mercadolivre") && s.mlClient != nil
}

// Products 获取前台商品列表（缓存优先，上游失败用兜底数据）
func (s *CatalogService) Products(ctx context.Context) (*CatalogResult, error) {
	if !s.useMercadoLivre() {
		return s.localProducts()
	}

	var cached []mercadolivre.Product
	hit, err := cache.GetJSON(ctx, s.cacheKey(), &cached)
	if err != nil {
		logger.Warnw("catalog_cache_read_failed", "error", err)
	}
	if hit {
		return &CatalogResult{
			Products: cached,
			Source:   SourceCache,
			SellerID: s.cfg.Mercado.SellerID,
		}, nil
	}

	return s.fetchAndCache(ctx)
}

// Refresh 清除缓存并强制拉取最新数据
func (s *CatalogService) Refresh(ctx context.Context) (*CatalogResult, error) {
	if !s.useMercadoLivre() {
		return s.localProducts()
	}
	if err := cache.Del(ctx, s.cacheKey()); err != nil {
		logger.Warnw("catalog_cache_invalidate_failed", "error", err)
	}
	return s.fetchAndCache(ctx)
}

func (s *CatalogService) fetchAndCache(ctx context.Context) (*CatalogResult, error) {
	items, err := s.mlClient.SearchSellerItems(ctx, s.cfg.Mercado.SellerID)
	if err != nil {
		logger.Errorw("mercadolivre_fetch_failed", "error", err)
		return &CatalogResult{
			Products: mercadolivre.FallbackProducts(),
			Source:   SourceFallback,
			SellerID: s.cfg.Mercado.SellerID,
		}, nil
	}

	products := mercadolivre.MapItems(items)
	if err := cache.SetJSON(ctx, s.cacheKey(), products, s.cacheTTL()); err != nil {
		logger.Warnw("catalog_cache_write_failed", "error", err)
	}
	logger.Infow("mercadolivre_products_fetched", "count", len(products))

	return &CatalogResult{
		Products: products,
		Source:   SourceAPI,
		SellerID: s.cfg.Mercado.SellerID,
	}, nil
}

// localProducts 从本地库读取上架商品并转换为前台视图（保持创建时间倒序）。
// 本地库读取失败同样降级为兜底商品，公开接口永远不对外暴露错误。
func (s *CatalogService) localProducts() (*CatalogResult, error) {
	records, err := s.productService.ListActive()
	if err != nil {
		logger.Errorw("catalog_local_read_failed", "error", err)
		return &CatalogResult{
			Products: mercadolivre.FallbackProducts(),
			Source:   SourceFallback,
			SellerID: s.cfg.Mercado.SellerID,
		}, nil
	}
	products := make([]mercadolivre.Product, 0, len(records))
	for _, record := range records {
		products = append(products, localProductView(record))
	}
	return &CatalogResult{
		Products: products,
		Source:   SourceLocal,
		SellerID: s.cfg.Mercado.SellerID,
	}, nil
}

// localProductView 将数据库商品转换为前台视图
func localProductView(record models.Product) mercadolivre.Product {
	product := mercadolivre.Product{
		ID:                record.ID,
		Title:             record.Name,
		Description:       mercadolivre.TruncateText(record.Description, 100),
		Image:             record.Image,
		Price:             record.Price.FormatBRL(),
		Link:              record.WhatsAppLink,
		Condition:         record.Condition,
		AvailableQuantity: record.AvailableQuantity,
		SoldQuantity:      record.SoldQuantity,
		FreeShipping:      record.FreeShipping,
		Category:          record.Category,
	}
	if record.OriginalPrice != nil {
		product.OldPrice = record.OriginalPrice.FormatBRL()
	}
	// 显式维护的折扣标签优先，其次按价差推导
	product.Discount = record.Discount
	if product.Discount == "" {
		product.Discount = Discount(record.Price, record.OriginalPrice)
	}
	if product.Image == "" {
		product.Image = mercadolivre.BestImage(mercadolivre.Item{})
	}
	return product
}

// HealthInfo 健康检查信息
type HealthInfo struct {
	MercadoLivre HealthMercadoLivre `json:"mercado_livre"`
	Cache        HealthCache        `json:"cache"`
}

// HealthMercadoLivre 上游连接状态
type HealthMercadoLivre struct {
	Connected bool   `json:"connected"`
	SellerID  string `json:"seller_id"`
	Source    string `json:"source"`
}

// HealthCache 缓存状态
type HealthCache struct {
	Enabled    bool   `json:"enabled"`
	TTL        string `json:"ttl"`
	ProductTTL string `json:"product_ttl,omitempty"`
}

// Health 汇总目录相关的健康信息
func (s *CatalogService) Health(ctx context.Context) HealthInfo {
	info := HealthInfo{
		MercadoLivre: HealthMercadoLivre{
			Connected: s.mlClient != nil && s.mlClient.Connected(),
			SellerID:  s.cfg.Mercado.SellerID,
			Source:    strings.ToLower(strings.TrimSpace(s.cfg.Catalog.Source)),
		},
		Cache: HealthCache{
			Enabled: cache.Enabled(),
			TTL:     s.cacheTTL().String(),
		},
	}
	if ttl, err := cache.TTL(ctx, s.cacheKey()); err == nil && ttl > 0 {
		info.Cache.ProductTTL = ttl.String()
	}
	return info
}
