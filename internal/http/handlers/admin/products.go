package admin

import (
	"fmt"
	"strconv"
	"strings"

	handlershared "github.com/xM4T3US/server-mjtech/internal/http/handlers/shared"
	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/repository"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
)

// ListProducts 获取商品列表 (Admin)
func (h *Handler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.ProductListFilter{
		Page:     page,
		PageSize: pageSize,
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}

	products, total, err := h.ProductService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, gin.H{
		"items":     products,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetProduct 获取商品详情 (Admin)
func (h *Handler) GetProduct(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.BadRequest(c, "Identificador do produto é obrigatório")
		return
	}

	product, err := h.ProductService.GetByID(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, product)
}

// CreateProduct 创建商品 (Admin)
func (h *Handler) CreateProduct(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	product, err := h.ProductService.Create(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "product_create",
		fmt.Sprintf("created product %s (%s)", product.ID, product.Name),
		c.ClientIP(), c.Request.UserAgent())
	response.Created(c, product)
}

// UpdateProduct 更新商品 (Admin)
func (h *Handler) UpdateProduct(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.BadRequest(c, "Identificador do produto é obrigatório")
		return
	}

	var input service.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	product, err := h.ProductService.Update(id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "product_update",
		fmt.Sprintf("updated product %s", id),
		c.ClientIP(), c.Request.UserAgent())
	response.OK(c, product)
}

// ToggleProduct 切换商品上下架 (Admin)
func (h *Handler) ToggleProduct(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.BadRequest(c, "Identificador do produto é obrigatório")
		return
	}

	product, err := h.ProductService.ToggleActive(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "product_toggle",
		fmt.Sprintf("toggled product %s active=%t", id, product.IsActive),
		c.ClientIP(), c.Request.UserAgent())
	response.OK(c, product)
}

// DeleteProduct 删除商品 (Admin)
func (h *Handler) DeleteProduct(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		response.BadRequest(c, "Identificador do produto é obrigatório")
		return
	}

	if err := h.ProductService.Delete(id); err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "product_delete",
		fmt.Sprintf("deleted product %s", id),
		c.ClientIP(), c.Request.UserAgent())
	response.OKMessage(c, "Produto removido com sucesso", nil)
}
