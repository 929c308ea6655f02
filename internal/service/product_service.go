package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// 商品默认值
const (
	DefaultCondition         = "Novo"
	DefaultCategory          = "TECNOLOGIA"
	DefaultAvailableQuantity = 10
)

// productUpdatableColumns 允许通过更新接口修改的列白名单
var productUpdatableColumns = map[string]bool{
	"name":               true,
	"description":        true,
	"price":              true,
	"original_price":     true,
	"discount":           true,
	"image":              true,
	"category":           true,
	"condition":          true,
	"whatsapp_link":      true,
	"available_quantity": true,
	"sold_quantity":      true,
	"free_shipping":      true,
	"is_active":          true,
}

// ProductService 商品服务
type ProductService struct {
	productRepo repository.ProductRepository
	settingRepo repository.SettingRepository
}

// NewProductService 创建商品服务实例
func NewProductService(productRepo repository.ProductRepository, settingRepo repository.SettingRepository) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		settingRepo: settingRepo,
	}
}

// ProductInput 创建/更新商品的入参
type ProductInput struct {
	ID                string        `json:"id"`
	Name              string        `json:"name"`
	Description       string        `json:"description"`
	Price             *models.Money `json:"price"`
	OriginalPrice     *models.Money `json:"original_price"`
	Discount          *string       `json:"discount"`
	Image             string        `json:"image"`
	Category          string        `json:"category"`
	Condition         string        `json:"condition"`
	WhatsAppLink      string        `json:"whatsapp_link"`
	AvailableQuantity *int          `json:"available_quantity"`
	SoldQuantity      *int          `json:"sold_quantity"`
	FreeShipping      *bool         `json:"free_shipping"`
	IsActive          *bool         `json:"is_active"`
}

// Create 创建商品（填充默认值并生成 ID）
func (s *ProductService) Create(input ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, NewValidationError("name is required")
	}
	if input.Price == nil || !input.Price.Decimal.IsPositive() {
		return nil, NewValidationError("price must be greater than zero")
	}
	if input.OriginalPrice != nil && input.OriginalPrice.Decimal.LessThan(input.Price.Decimal) {
		return nil, NewValidationError("original_price must not be lower than price")
	}

	id := strings.TrimSpace(input.ID)
	if id == "" {
		id = "mjtech-" + uuid.NewString()
	} else {
		existing, err := s.productRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, NewValidationError("product id already exists")
		}
	}

	product := &models.Product{
		ID:                id,
		Name:              name,
		Description:       strings.TrimSpace(input.Description),
		Price:             *input.Price,
		OriginalPrice:     input.OriginalPrice,
		Image:             strings.TrimSpace(input.Image),
		Category:          DefaultCategory,
		Condition:         DefaultCondition,
		WhatsAppLink:      strings.TrimSpace(input.WhatsAppLink),
		AvailableQuantity: DefaultAvailableQuantity,
		IsActive:          true,
	}
	if c := strings.TrimSpace(input.Category); c != "" {
		product.Category = c
	}
	if c := strings.TrimSpace(input.Condition); c != "" {
		product.Condition = c
	}
	if input.AvailableQuantity != nil && *input.AvailableQuantity >= 0 {
		product.AvailableQuantity = *input.AvailableQuantity
	}
	if input.SoldQuantity != nil && *input.SoldQuantity >= 0 {
		product.SoldQuantity = *input.SoldQuantity
	}
	if input.FreeShipping != nil {
		product.FreeShipping = *input.FreeShipping
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	// 显式提供的折扣标签优先，否则按价差推导
	if input.Discount != nil {
		product.Discount = strings.TrimSpace(*input.Discount)
	}
	if product.Discount == "" {
		product.Discount = Discount(product.Price, product.OriginalPrice)
	}
	if product.WhatsAppLink == "" {
		product.WhatsAppLink = s.buildWhatsAppLink(product.Name)
	}
	if product.WhatsAppLink == "" {
		return nil, NewValidationError("whatsapp_link is required")
	}

	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Update 更新商品（仅白名单字段生效）
func (s *ProductService) Update(id string, input ProductInput) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	fields := make(map[string]interface{})
	if name := strings.TrimSpace(input.Name); name != "" {
		fields["name"] = name
	}
	if input.Description != "" {
		fields["description"] = strings.TrimSpace(input.Description)
	}
	if input.Price != nil {
		if !input.Price.Decimal.IsPositive() {
			return nil, NewValidationError("price must be greater than zero")
		}
		fields["price"] = *input.Price
	}
	if input.OriginalPrice != nil {
		fields["original_price"] = *input.OriginalPrice
	}
	if input.Discount != nil {
		fields["discount"] = strings.TrimSpace(*input.Discount)
	}
	if input.Image != "" {
		fields["image"] = strings.TrimSpace(input.Image)
	}
	if input.Category != "" {
		fields["category"] = strings.TrimSpace(input.Category)
	}
	if input.Condition != "" {
		fields["condition"] = strings.TrimSpace(input.Condition)
	}
	if input.WhatsAppLink != "" {
		fields["whatsapp_link"] = strings.TrimSpace(input.WhatsAppLink)
	}
	if input.AvailableQuantity != nil {
		if *input.AvailableQuantity < 0 {
			return nil, NewValidationError("available_quantity must not be negative")
		}
		fields["available_quantity"] = *input.AvailableQuantity
	}
	if input.SoldQuantity != nil {
		if *input.SoldQuantity < 0 {
			return nil, NewValidationError("sold_quantity must not be negative")
		}
		fields["sold_quantity"] = *input.SoldQuantity
	}
	if input.FreeShipping != nil {
		fields["free_shipping"] = *input.FreeShipping
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}

	for column := range fields {
		if !productUpdatableColumns[column] {
			delete(fields, column)
		}
	}
	if len(fields) == 0 {
		return product, nil
	}

	if err := s.productRepo.UpdateFields(id, fields); err != nil {
		return nil, err
	}
	return s.productRepo.GetByID(id)
}

// ToggleActive 切换商品上下架状态
func (s *ProductService) ToggleActive(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	if err := s.productRepo.UpdateFields(id, map[string]interface{}{"is_active": !product.IsActive}); err != nil {
		return nil, err
	}
	product.IsActive = !product.IsActive
	return product, nil
}

// Delete 删除商品（物理删除）
func (s *ProductService) Delete(id string) error {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return ErrNotFound
	}
	return s.productRepo.Delete(id)
}

// GetByID 获取单个商品
func (s *ProductService) GetByID(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// List 后台商品列表（含下架商品）
func (s *ProductService) List(filter repository.ProductListFilter) ([]models.Product, int64, error) {
	return s.productRepo.List(filter)
}

// ListActive 前台商品列表（仅上架，按创建时间倒序）
func (s *ProductService) ListActive() ([]models.Product, error) {
	filter := repository.ProductListFilter{OnlyActive: true}
	products, _, err := s.productRepo.List(filter)
	return products, err
}

// buildWhatsAppLink 根据店铺 WhatsApp 配置生成商品咨询链接
func (s *ProductService) buildWhatsAppLink(productName string) string {
	base := ""
	if s.settingRepo != nil {
		if v, ok, err := s.settingRepo.Get(models.SettingStoreWhatsApp); err == nil && ok {
			base = strings.TrimSpace(v)
		}
	}
	if base == "" {
		return ""
	}
	message := "Olá! Tenho interesse no produto: " + productName
	return fmt.Sprintf("%s?text=%s", base, url.QueryEscape(message))
}

// Discount 根据原价与现价计算折扣标签（如 "15% OFF"），无折扣返回空字符串
func Discount(price models.Money, originalPrice *models.Money) string {
	if originalPrice == nil {
		return ""
	}
	old := originalPrice.Decimal
	current := price.Decimal
	if !old.IsPositive() || old.LessThanOrEqual(current) {
		return ""
	}
	percent := old.Sub(current).Div(old).Mul(decimal.NewFromInt(100)).Round(0)
	return percent.String() + "% OFF"
}
