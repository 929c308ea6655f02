package mercadolivre

import (
	"sort"
	"strings"

	"github.com/xM4T3US/server-mjtech/internal/models"

	"github.com/shopspring/decimal"
)

const (
	placeholderImage   = "https://via.placeholder.com/300x300/1a1a2e/4a90e2?text=MJ+TECH"
	descriptionMaxLen  = 100
	defaultDescription = "Produto MJ TECH"
)

// Product 前台商品视图（目录接口的输出结构）
type Product struct {
	ID                string `json:"id"`
	Title             string `json:"title"`
	Description       string `json:"description"`
	Image             string `json:"image"`
	Price             string `json:"price"`
	OldPrice          string `json:"oldPrice,omitempty"`
	Discount          string `json:"discount,omitempty"`
	Link              string `json:"link"`
	Condition         string `json:"condition"`
	AvailableQuantity int    `json:"available_quantity"`
	SoldQuantity      int    `json:"sold_quantity"`
	FreeShipping      bool   `json:"free_shipping"`
	Category          string `json:"category"`
}

// MapItem 将 Mercado Livre 条目转换为前台商品视图
func MapItem(item Item) Product {
	price := models.NewMoneyFromFloat(item.Price)
	product := Product{
		ID:                item.ID,
		Title:             item.Title,
		Description:       TruncateText(item.Title, descriptionMaxLen),
		Image:             BestImage(item),
		Price:             price.FormatBRL(),
		Link:              item.Permalink,
		Condition:         ConditionLabel(item.Condition),
		AvailableQuantity: item.AvailableQuantity,
		SoldQuantity:      item.SoldQuantity,
		FreeShipping:      item.Shipping.FreeShipping,
		Category:          CategoryFromDomain(item.DomainID),
	}
	if item.OriginalPrice > item.Price {
		old := models.NewMoneyFromFloat(item.OriginalPrice)
		product.OldPrice = old.FormatBRL()
		product.Discount = DiscountLabel(item.Price, item.OriginalPrice)
	}
	return product
}

// MapItems 批量转换并按可售数量降序排列
func MapItems(items []Item) []Product {
	products := make([]Product, 0, len(items))
	for _, item := range items {
		products = append(products, MapItem(item))
	}
	SortByAvailability(products)
	return products
}

// SortByAvailability 按可售数量降序排列（稳定排序）
func SortByAvailability(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].AvailableQuantity > products[j].AvailableQuantity
	})
}

// BestImage 选取最佳商品图（缩略图升级为大图并强制 https，placeholder 兜底）
func BestImage(item Item) string {
	imageURL := item.Thumbnail
	if imageURL != "" {
		imageURL = strings.Replace(imageURL, "-I.jpg", "-O.jpg", 1)
		imageURL = strings.Replace(imageURL, "http://", "https://", 1)
	}
	if len(item.Pictures) > 0 {
		if url := strings.TrimSpace(item.Pictures[0].SecureURL); url != "" {
			imageURL = url
		} else if url := strings.TrimSpace(item.Pictures[0].URL); url != "" {
			imageURL = url
		}
	}
	if imageURL == "" || strings.Contains(imageURL, "placeholder") {
		return placeholderImage
	}
	return imageURL
}

// DiscountLabel 计算折扣标签（如 "33% OFF"），无折扣返回空字符串
func DiscountLabel(price, originalPrice float64) string {
	if originalPrice <= 0 || originalPrice <= price {
		return ""
	}
	old := decimal.NewFromFloat(originalPrice)
	current := decimal.NewFromFloat(price)
	percent := old.Sub(current).Div(old).Mul(decimal.NewFromInt(100)).Round(0)
	return percent.String() + "% OFF"
}

// ConditionLabel 成色标签（new -> Novo，其余 Usado）
func ConditionLabel(condition string) string {
	if strings.EqualFold(strings.TrimSpace(condition), "new") {
		return "Novo"
	}
	return "Usado"
}

// CategoryFromDomain 从 domain_id 提取分类（去掉 MLB- 前缀）
func CategoryFromDomain(domainID string) string {
	domainID = strings.TrimSpace(domainID)
	if domainID == "" {
		return "TECNOLOGIA"
	}
	return strings.TrimPrefix(domainID, "MLB-")
}

// TruncateText 截断文本并追加省略号，空文本返回默认描述
func TruncateText(text string, maxLen int) string {
	if text == "" {
		return defaultDescription
	}
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	return string(runes[:maxLen]) + "..."
}
