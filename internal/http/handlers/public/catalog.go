package public

import (
	"time"

	handlershared "github.com/xM4T3US/server-mjtech/internal/http/handlers/shared"
	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
)

var serviceStartedAt = time.Now()

// Products 前台商品列表
func (h *Handler) Products(c *gin.Context) {
	result, err := h.CatalogService.Products(c.Request.Context())
	if err != nil {
		handlershared.RequestLog(c).Errorw("catalog_products_failed", "error", err)
		response.Internal(c, "Erro ao carregar produtos")
		return
	}

	response.Raw(c, gin.H{
		"store":     h.StoreService.Name(),
		"seller_id": result.SellerID,
		"count":     len(result.Products),
		"products":  result.Products,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"source":    result.Source,
	})
}

// Store 店铺公开信息
func (h *Handler) Store(c *gin.Context) {
	response.Raw(c, gin.H{
		"store":     h.StoreService.Info(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Health 健康检查
func (h *Handler) Health(c *gin.Context) {
	info := h.CatalogService.Health(c.Request.Context())
	response.Raw(c, gin.H{
		"service":        "MJ TECH Store API",
		"status":         "operational",
		"timestamp":      time.Now().UTC().Format(time.RFC3339),
		"uptime_seconds": int64(time.Since(serviceStartedAt).Seconds()),
		"mercado_livre":  info.MercadoLivre,
		"cache":          info.Cache,
	})
}

// Refresh 清缓存并重新拉取商品
func (h *Handler) Refresh(c *gin.Context) {
	result, err := h.CatalogService.Refresh(c.Request.Context())
	if err != nil {
		handlershared.RequestLog(c).Errorw("catalog_refresh_failed", "error", err)
		response.Internal(c, "Erro ao atualizar produtos")
		return
	}

	message := "Produtos atualizados com sucesso"
	if result.Source == service.SourceFallback {
		message = "Upstream indisponível, usando produtos de fallback"
	}
	response.Raw(c, gin.H{
		"message":   message,
		"count":     len(result.Products),
		"source":    result.Source,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
