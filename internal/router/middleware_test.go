package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestResolveAllowedOrigin(t *testing.T) {
	cases := []struct {
		name             string
		origin           string
		allowedOrigins   []string
		allowCredentials bool
		want             string
	}{
		{"wildcard without credentials", "https://mjtech.dev", []string{"*"}, false, "*"},
		{"wildcard with credentials echoes origin", "https://mjtech.dev", []string{"*"}, true, "https://mjtech.dev"},
		{"exact match", "https://mjtech.dev", []string{"https://mjtech.dev"}, false, "https://mjtech.dev"},
		{"case insensitive match", "https://MJTECH.dev", []string{"https://mjtech.dev"}, false, "https://MJTECH.dev"},
		{"no match", "https://other.dev", []string{"https://mjtech.dev"}, false, ""},
		{"empty origin with explicit list", "", []string{"https://mjtech.dev"}, false, ""},
		{"empty allowed list", "https://mjtech.dev", nil, false, ""},
	}
	for _, tc := range cases {
		if got := resolveAllowedOrigin(tc.origin, tc.allowedOrigins, tc.allowCredentials); got != tc.want {
			t.Fatalf("%s: want %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/ping", nil)
	engine.ServeHTTP(recorder, request)

	headerID := recorder.Header().Get("X-Request-ID")
	if headerID == "" {
		t.Fatalf("response should carry X-Request-ID header")
	}
	var body map[string]string
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	if body["request_id"] != headerID {
		t.Fatalf("context request id %q should match header %q", body["request_id"], headerID)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/ping", nil)
	request.Header.Set("X-Request-ID", "req-fixed-123")
	engine.ServeHTTP(recorder, request)
	if got := recorder.Header().Get("X-Request-ID"); got != "req-fixed-123" {
		t.Fatalf("incoming request id should be preserved, got %q", got)
	}
}

func TestCORSMiddlewarePreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	engine.Use(CORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://mjtech.dev"}}))
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	request.Header.Set("Origin", "https://mjtech.dev")
	engine.ServeHTTP(recorder, request)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("preflight status want 204 got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "https://mjtech.dev" {
		t.Fatalf("allow origin want https://mjtech.dev got %q", got)
	}
	if recorder.Header().Get("Access-Control-Allow-Methods") == "" {
		t.Fatalf("allow methods header missing")
	}
}

func newJWTTestEnv(t *testing.T) (*gorm.DB, *service.AuthService, repository.AdminUserRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "middleware-test-secret-0123456789abcdef"
	cfg.JWT.ExpireHours = 8
	cfg.JWT.RememberMeExpireHours = 168
	cfg.Security.Lockout.MaxAttempts = 5
	cfg.Security.Lockout.LockoutSeconds = 900

	adminRepo := repository.NewAdminUserRepository(db)
	authService := service.NewAuthService(cfg, adminRepo, repository.NewSettingRepository(db))
	return db, authService, adminRepo
}

func newJWTTestEngine(secretKey string, adminRepo repository.AdminUserRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestIDMiddleware())
	engine.GET("/protected", JWTAuthMiddleware(secretKey, adminRepo), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return engine
}

func TestJWTAuthMiddleware(t *testing.T) {
	db, authService, adminRepo := newJWTTestEnv(t)

	user := &models.AdminUser{
		Username:     "mw-admin",
		Email:        "mw-admin@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	token, _, err := authService.GenerateJWT(user, false)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}

	engine := newJWTTestEngine("middleware-test-secret-0123456789abcdef", adminRepo)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("missing token status want 401 got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Token "+token)
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("malformed header status want 401 got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token+"x")
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusUnauthorized {
		t.Fatalf("tampered token status want 401 got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	request = httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusOK {
		t.Fatalf("valid token status want 200 got %d body %s", recorder.Code, recorder.Body.String())
	}
}

func TestJWTAuthMiddlewareRejectsDeactivated(t *testing.T) {
	db, authService, adminRepo := newJWTTestEnv(t)

	user := &models.AdminUser{
		Username:     "mw-disabled",
		Email:        "mw-disabled@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleEditor,
		IsActive:     true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create admin failed: %v", err)
	}
	token, _, err := authService.GenerateJWT(user, false)
	if err != nil {
		t.Fatalf("generate jwt failed: %v", err)
	}
	if err := db.Model(&models.AdminUser{}).Where("id = ?", user.ID).
		Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}

	engine := newJWTTestEngine("middleware-test-secret-0123456789abcdef", adminRepo)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/protected", nil)
	request.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(recorder, request)
	if recorder.Code != http.StatusForbidden {
		t.Fatalf("deactivated account status want 403 got %d", recorder.Code)
	}
}
