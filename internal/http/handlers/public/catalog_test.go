package public_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/provider"
	"github.com/xM4T3US/server-mjtech/internal/repository"
	"github.com/xM4T3US/server-mjtech/internal/router"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newPublicAPI(t *testing.T) (*gin.Engine, *service.ProductService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.Product{}, &models.AccessLog{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.JWT.SecretKey = "public-api-test-secret-0123456789abcdef"
	cfg.Catalog.Source = "local"
	cfg.Store.Name = "MJ TECH Store"
	cfg.Store.WhatsApp = "https://wa.me/5519995189387"
	cfg.Store.Email = "contato@mjtech.com.br"

	adminRepo := repository.NewAdminUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	accessLogRepo := repository.NewAccessLogRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.Set(models.SettingStoreWhatsApp, "https://wa.me/5519995189387"); err != nil {
		t.Fatalf("seed whatsapp setting failed: %v", err)
	}

	authService := service.NewAuthService(cfg, adminRepo, settingRepo)
	productService := service.NewProductService(productRepo, settingRepo)

	container := &provider.Container{
		Config:           cfg,
		AdminUserRepo:    adminRepo,
		ProductRepo:      productRepo,
		AccessLogRepo:    accessLogRepo,
		SettingRepo:      settingRepo,
		AuthService:      authService,
		ProductService:   productService,
		AdminUserService: service.NewAdminUserService(adminRepo, accessLogRepo, authService),
		AccessLogService: service.NewAccessLogService(accessLogRepo),
		CatalogService:   service.NewCatalogService(cfg, productService, nil),
		StoreService:     service.NewStoreService(cfg, settingRepo),
	}
	return router.SetupRouter(cfg, container), productService
}

func getJSON(t *testing.T, engine *gin.Engine, path string) (int, map[string]interface{}) {
	t.Helper()

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	engine.ServeHTTP(recorder, request)

	var body map[string]interface{}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v (%s)", err, recorder.Body.String())
	}
	return recorder.Code, body
}

func money(t *testing.T, value string) *models.Money {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal failed: %v", err)
	}
	m := models.NewMoneyFromDecimal(d)
	return &m
}

func TestPublicProductsEndpoint(t *testing.T) {
	engine, productService := newPublicAPI(t)

	if _, err := productService.Create(service.ProductInput{
		ID:            "mjtech-public-mouse",
		Name:          "Mouse Sem Fio",
		Price:         money(t, "89.90"),
		OriginalPrice: money(t, "129.90"),
	}); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	status, body := getJSON(t, engine, "/api/products")
	if status != http.StatusOK {
		t.Fatalf("status want 200 got %d", status)
	}
	if body["success"] != true {
		t.Fatalf("success want true: %v", body)
	}
	if body["store"] != "MJ TECH Store" {
		t.Fatalf("store want MJ TECH Store got %v", body["store"])
	}
	if body["source"] != service.SourceLocal {
		t.Fatalf("source want local got %v", body["source"])
	}
	if count, _ := body["count"].(float64); count != 1 {
		t.Fatalf("count want 1 got %v", body["count"])
	}
	products, _ := body["products"].([]interface{})
	if len(products) != 1 {
		t.Fatalf("products length want 1 got %d", len(products))
	}
	first, _ := products[0].(map[string]interface{})
	if first["price"] != "R$ 89,90" {
		t.Fatalf("price want R$ 89,90 got %v", first["price"])
	}
	if first["oldPrice"] != "R$ 129,90" {
		t.Fatalf("oldPrice want R$ 129,90 got %v", first["oldPrice"])
	}
	if first["discount"] != "31% OFF" {
		t.Fatalf("discount want 31%% OFF got %v", first["discount"])
	}
	if first["free_shipping"] != false {
		t.Fatalf("free_shipping want false got %v", first["free_shipping"])
	}
}

func TestPublicStoreEndpoint(t *testing.T) {
	engine, _ := newPublicAPI(t)

	status, body := getJSON(t, engine, "/api/store")
	if status != http.StatusOK {
		t.Fatalf("status want 200 got %d", status)
	}
	store, _ := body["store"].(map[string]interface{})
	if store["nickname"] != "MJ TECH Store" {
		t.Fatalf("nickname want MJ TECH Store got %v", store["nickname"])
	}
	if store["country"] != "BR" {
		t.Fatalf("country want BR got %v", store["country"])
	}
	contact, _ := store["contact"].(map[string]interface{})
	if contact["whatsapp"] != "https://wa.me/5519995189387" {
		t.Fatalf("whatsapp contact mismatch: %v", contact["whatsapp"])
	}
}

func TestPublicHealthEndpoint(t *testing.T) {
	engine, _ := newPublicAPI(t)

	status, body := getJSON(t, engine, "/api/health")
	if status != http.StatusOK {
		t.Fatalf("status want 200 got %d", status)
	}
	if body["service"] != "MJ TECH Store API" {
		t.Fatalf("service name mismatch: %v", body["service"])
	}
	if body["status"] != "operational" {
		t.Fatalf("status field want operational got %v", body["status"])
	}
	ml, _ := body["mercado_livre"].(map[string]interface{})
	if ml["connected"] != false {
		t.Fatalf("upstream should be disconnected without client: %v", ml["connected"])
	}
	cacheInfo, _ := body["cache"].(map[string]interface{})
	if cacheInfo["enabled"] != false {
		t.Fatalf("cache should be disabled in tests: %v", cacheInfo["enabled"])
	}
}

func TestPublicRefreshEndpoint(t *testing.T) {
	engine, _ := newPublicAPI(t)

	status, body := getJSON(t, engine, "/api/refresh")
	if status != http.StatusOK {
		t.Fatalf("status want 200 got %d", status)
	}
	if body["message"] != "Produtos atualizados com sucesso" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	if body["source"] != service.SourceLocal {
		t.Fatalf("source want local got %v", body["source"])
	}
}
