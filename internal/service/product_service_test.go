package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func newProductTestService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.Set(models.SettingStoreWhatsApp, "https://wa.me/5519995189387"); err != nil {
		t.Fatalf("seed whatsapp setting failed: %v", err)
	}
	return NewProductService(repository.NewProductRepository(db), settingRepo), db
}

func moneyPtr(t *testing.T, value string) *models.Money {
	t.Helper()

	d, err := decimal.NewFromString(value)
	if err != nil {
		t.Fatalf("parse decimal %q failed: %v", value, err)
	}
	m := models.NewMoneyFromDecimal(d)
	return &m
}

func TestProductCreateDefaults(t *testing.T) {
	svc, _ := newProductTestService(t)

	product, err := svc.Create(ProductInput{
		Name:  "Mouse Gamer RGB",
		Price: moneyPtr(t, "79.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(product.ID, "mjtech-") {
		t.Fatalf("generated id should carry mjtech prefix, got %q", product.ID)
	}
	if product.Category != DefaultCategory {
		t.Fatalf("category want %q got %q", DefaultCategory, product.Category)
	}
	if product.Condition != DefaultCondition {
		t.Fatalf("condition want %q got %q", DefaultCondition, product.Condition)
	}
	if product.AvailableQuantity != DefaultAvailableQuantity {
		t.Fatalf("available_quantity want %d got %d", DefaultAvailableQuantity, product.AvailableQuantity)
	}
	if !product.IsActive {
		t.Fatalf("new product should be active")
	}
	if product.FreeShipping {
		t.Fatalf("free_shipping should default to false")
	}
	if product.Discount != "" {
		t.Fatalf("product without old price should carry no discount, got %q", product.Discount)
	}
}

func TestProductCreateRequiresOutboundLink(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	// 没有配置 store_whatsapp，也没有显式链接
	svc := NewProductService(repository.NewProductRepository(db), repository.NewSettingRepository(db))

	if _, err := svc.Create(ProductInput{
		Name:  "Cabo HDMI",
		Price: moneyPtr(t, "29.90"),
	}); !errors.Is(err, ErrValidation) {
		t.Fatalf("create without any outbound link want ErrValidation got %v", err)
	}

	product, err := svc.Create(ProductInput{
		Name:         "Cabo HDMI",
		Price:        moneyPtr(t, "29.90"),
		WhatsAppLink: "https://wa.me/5519900001111?text=Cabo",
	})
	if err != nil {
		t.Fatalf("create with explicit link failed: %v", err)
	}
	if product.WhatsAppLink != "https://wa.me/5519900001111?text=Cabo" {
		t.Fatalf("explicit link should be kept, got %q", product.WhatsAppLink)
	}
}

func TestProductCreateDiscountLabel(t *testing.T) {
	svc, _ := newProductTestService(t)

	// 显式标签优先于推导
	label := "OFERTA"
	explicit, err := svc.Create(ProductInput{
		ID:            "mjtech-discount-explicit",
		Name:          "Headset Gamer",
		Price:         moneyPtr(t, "99.90"),
		OriginalPrice: moneyPtr(t, "149.90"),
		Discount:      &label,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if explicit.Discount != "OFERTA" {
		t.Fatalf("explicit discount should win, got %q", explicit.Discount)
	}

	derived, err := svc.Create(ProductInput{
		ID:            "mjtech-discount-derived",
		Name:          "Headset Gamer Pro",
		Price:         moneyPtr(t, "99.90"),
		OriginalPrice: moneyPtr(t, "149.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if derived.Discount != "33% OFF" {
		t.Fatalf("derived discount want 33%% OFF got %q", derived.Discount)
	}
}

func TestProductUpdateDiscountAndShipping(t *testing.T) {
	svc, _ := newProductTestService(t)

	created, err := svc.Create(ProductInput{
		ID:    "mjtech-ship-test",
		Name:  "Gabinete ATX",
		Price: moneyPtr(t, "299.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	free := true
	label := "10% OFF"
	updated, err := svc.Update(created.ID, ProductInput{
		Discount:     &label,
		FreeShipping: &free,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Discount != "10% OFF" {
		t.Fatalf("discount not updated: %q", updated.Discount)
	}
	if !updated.FreeShipping {
		t.Fatalf("free_shipping not updated")
	}
}

func TestProductCreateWhatsAppLink(t *testing.T) {
	svc, db := newProductTestService(t)

	settingRepo := repository.NewSettingRepository(db)
	if err := settingRepo.Set(models.SettingStoreWhatsApp, "https://wa.me/5519900000000"); err != nil {
		t.Fatalf("set whatsapp setting failed: %v", err)
	}

	product, err := svc.Create(ProductInput{
		Name:  "Teclado Mecânico",
		Price: moneyPtr(t, "189.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasPrefix(product.WhatsAppLink, "https://wa.me/5519900000000?text=") {
		t.Fatalf("whatsapp link not built from settings: %q", product.WhatsAppLink)
	}
	if !strings.Contains(product.WhatsAppLink, "Tecla") {
		t.Fatalf("whatsapp link should mention product name: %q", product.WhatsAppLink)
	}
}

func TestProductCreateValidation(t *testing.T) {
	svc, _ := newProductTestService(t)

	cases := []struct {
		name  string
		input ProductInput
	}{
		{"missing name", ProductInput{Price: moneyPtr(t, "10.00")}},
		{"missing price", ProductInput{Name: "Cabo USB"}},
		{"zero price", ProductInput{Name: "Cabo USB", Price: moneyPtr(t, "0")}},
		{"original below price", ProductInput{
			Name:          "Cabo USB",
			Price:         moneyPtr(t, "50.00"),
			OriginalPrice: moneyPtr(t, "40.00"),
		}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(tc.input); !errors.Is(err, ErrValidation) {
			t.Fatalf("%s: want ErrValidation got %v", tc.name, err)
		}
	}
}

func TestProductCreateDuplicateID(t *testing.T) {
	svc, _ := newProductTestService(t)

	input := ProductInput{ID: "mjtech-dup-test", Name: "Fonte 650W", Price: moneyPtr(t, "349.90")}
	if _, err := svc.Create(input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(input); !errors.Is(err, ErrValidation) {
		t.Fatalf("duplicate id should fail validation, got %v", err)
	}
}

func TestProductUpdateAllowedFields(t *testing.T) {
	svc, _ := newProductTestService(t)

	created, err := svc.Create(ProductInput{
		ID:    "mjtech-update-test",
		Name:  "SSD 1TB",
		Price: moneyPtr(t, "399.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	qty := 3
	updated, err := svc.Update(created.ID, ProductInput{
		Name:              "SSD NVMe 1TB",
		Price:             moneyPtr(t, "379.90"),
		AvailableQuantity: &qty,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "SSD NVMe 1TB" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Price.StringFixed(2) != "379.90" {
		t.Fatalf("price not updated: %s", updated.Price.StringFixed(2))
	}
	if updated.AvailableQuantity != 3 {
		t.Fatalf("available_quantity want 3 got %d", updated.AvailableQuantity)
	}
	if updated.ID != created.ID {
		t.Fatalf("id must be immutable, got %q", updated.ID)
	}
}

func TestProductUpdateNotFound(t *testing.T) {
	svc, _ := newProductTestService(t)

	if _, err := svc.Update("mjtech-missing", ProductInput{Name: "Nada"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestProductUpdateRejectsNegativeQuantity(t *testing.T) {
	svc, _ := newProductTestService(t)

	created, err := svc.Create(ProductInput{
		ID:    "mjtech-neg-test",
		Name:  "Hub USB",
		Price: moneyPtr(t, "59.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	qty := -1
	if _, err := svc.Update(created.ID, ProductInput{AvailableQuantity: &qty}); !errors.Is(err, ErrValidation) {
		t.Fatalf("negative quantity should fail, got %v", err)
	}
}

func TestProductToggleActive(t *testing.T) {
	svc, _ := newProductTestService(t)

	created, err := svc.Create(ProductInput{
		ID:    "mjtech-toggle-test",
		Name:  "Webcam Full HD",
		Price: moneyPtr(t, "149.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	toggled, err := svc.ToggleActive(created.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("toggle should deactivate the product")
	}

	active, err := svc.ListActive()
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	for _, p := range active {
		if p.ID == created.ID {
			t.Fatalf("deactivated product should not appear in active listing")
		}
	}
}

func TestProductDeleteIsPhysical(t *testing.T) {
	svc, db := newProductTestService(t)

	created, err := svc.Create(ProductInput{
		ID:    "mjtech-delete-test",
		Name:  "Carregador Turbo",
		Price: moneyPtr(t, "89.90"),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	var count int64
	if err := db.Model(&models.Product{}).Where("id = ?", created.ID).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("row should be removed, count=%d", count)
	}
	if err := svc.Delete(created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}
}

func TestDiscount(t *testing.T) {
	cases := []struct {
		price    string
		original string
		want     string
	}{
		{"99.90", "149.90", "33% OFF"},
		{"79.90", "119.90", "33% OFF"},
		{"189.90", "279.90", "32% OFF"},
		{"100.00", "100.00", ""},
		{"100.00", "90.00", ""},
	}
	for _, tc := range cases {
		price := *moneyPtr(t, tc.price)
		original := moneyPtr(t, tc.original)
		if got := Discount(price, original); got != tc.want {
			t.Fatalf("Discount(%s, %s) want %q got %q", tc.price, tc.original, got, tc.want)
		}
	}
	if got := Discount(*moneyPtr(t, "50.00"), nil); got != "" {
		t.Fatalf("nil original price should give empty discount, got %q", got)
	}
}
