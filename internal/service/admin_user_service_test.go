package service

import (
	"errors"
	"testing"

	"github.com/xM4T3US/server-mjtech/internal/config"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newAdminUserTestService(t *testing.T) (*AdminUserService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.AdminUser{}, &models.AccessLog{}, &models.Setting{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.JWT.SecretKey = "admin-user-test-secret-0123456789abcdef"
	cfg.JWT.ExpireHours = 8
	cfg.Security.Lockout.MaxAttempts = 5
	cfg.Security.Lockout.LockoutSeconds = 900

	adminRepo := repository.NewAdminUserRepository(db)
	accessLogRepo := repository.NewAccessLogRepository(db)
	authService := NewAuthService(cfg, adminRepo, repository.NewSettingRepository(db))
	return NewAdminUserService(adminRepo, accessLogRepo, authService), db
}

func testOperator(t *testing.T, db *gorm.DB, username string) *models.AdminUser {
	t.Helper()

	operator := &models.AdminUser{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "irrelevant",
		Role:         models.RoleAdmin,
		IsActive:     true,
	}
	if err := db.Create(operator).Error; err != nil {
		t.Fatalf("create operator failed: %v", err)
	}
	return operator
}

func TestAdminUserCreateWritesAuditLog(t *testing.T) {
	svc, db := newAdminUserTestService(t)
	operator := testOperator(t, db, "aus-operator")

	user, err := svc.Create(operator, CreateInput{
		Username: "aus-created",
		Email:    "AUS-Created@Example.com",
		FullName: "  Conta de Teste  ",
		Password: "secret1",
	}, "10.0.0.1", "test-agent")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != models.RoleEditor {
		t.Fatalf("default role want editor got %q", user.Role)
	}
	if user.Email != "aus-created@example.com" {
		t.Fatalf("email should be normalized, got %q", user.Email)
	}
	if user.FullName != "Conta de Teste" {
		t.Fatalf("full_name should be trimmed, got %q", user.FullName)
	}

	var log models.AccessLog
	if err := db.Where("action = ? AND username = ?", "user_create", "aus-operator").First(&log).Error; err != nil {
		t.Fatalf("expected audit log row: %v", err)
	}
	if log.AdminID == nil || *log.AdminID != operator.ID {
		t.Fatalf("audit log should reference operator, got %v", log.AdminID)
	}
	if !log.Success {
		t.Fatalf("successful operation should be logged with success=true")
	}
	if log.IP != "10.0.0.1" {
		t.Fatalf("audit log ip want 10.0.0.1 got %q", log.IP)
	}
}

func TestAdminUserCreateValidation(t *testing.T) {
	svc, db := newAdminUserTestService(t)
	operator := testOperator(t, db, "aus-validation")

	cases := []struct {
		name  string
		input CreateInput
		want  error
	}{
		{"missing username", CreateInput{Email: "a@b.com", Password: "secret1"}, ErrValidation},
		{"bad email", CreateInput{Username: "aus-x1", Email: "not-an-email", Password: "secret1"}, ErrValidation},
		{"short password", CreateInput{Username: "aus-x2", Email: "x2@b.com", Password: "123"}, ErrValidation},
		{"bad role", CreateInput{Username: "aus-x3", Email: "x3@b.com", Password: "secret1", Role: "root"}, ErrInvalidRole},
	}
	for _, tc := range cases {
		if _, err := svc.Create(operator, tc.input, "", ""); !errors.Is(err, tc.want) {
			t.Fatalf("%s: want %v got %v", tc.name, tc.want, err)
		}
	}
}

func TestAdminUserCreateUniqueness(t *testing.T) {
	svc, db := newAdminUserTestService(t)
	operator := testOperator(t, db, "aus-unique")

	if _, err := svc.Create(operator, CreateInput{
		Username: "aus-taken",
		Email:    "aus-taken@example.com",
		Password: "secret1",
	}, "", ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	if _, err := svc.Create(operator, CreateInput{
		Username: "aus-taken",
		Email:    "aus-other@example.com",
		Password: "secret1",
	}, "", ""); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("duplicate username want ErrUsernameTaken got %v", err)
	}

	if _, err := svc.Create(operator, CreateInput{
		Username: "aus-other",
		Email:    "aus-taken@example.com",
		Password: "secret1",
	}, "", ""); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("duplicate email want ErrEmailTaken got %v", err)
	}
}

func TestAdminUserSelfOperationRejected(t *testing.T) {
	svc, db := newAdminUserTestService(t)
	operator := testOperator(t, db, "aus-self")

	if _, err := svc.SetRole(operator, operator.ID, models.RoleEditor); !errors.Is(err, ErrSelfOperation) {
		t.Fatalf("self role change want ErrSelfOperation got %v", err)
	}
	if _, err := svc.ToggleActive(operator, operator.ID); !errors.Is(err, ErrSelfOperation) {
		t.Fatalf("self toggle want ErrSelfOperation got %v", err)
	}
	if err := svc.Delete(operator, operator.ID); !errors.Is(err, ErrSelfOperation) {
		t.Fatalf("self delete want ErrSelfOperation got %v", err)
	}
}

func TestAdminUserSetRoleAndToggle(t *testing.T) {
	svc, db := newAdminUserTestService(t)
	operator := testOperator(t, db, "aus-manager")

	target, err := svc.Create(operator, CreateInput{
		Username: "aus-target",
		Email:    "aus-target@example.com",
		Password: "secret1",
	}, "", "")
	if err != nil {
		t.Fatalf("create target failed: %v", err)
	}

	updated, err := svc.SetRole(operator, target.ID, models.RoleAdmin)
	if err != nil {
		t.Fatalf("set role failed: %v", err)
	}
	if updated.Role != models.RoleAdmin {
		t.Fatalf("role want admin got %q", updated.Role)
	}

	toggled, err := svc.ToggleActive(operator, target.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("toggle should deactivate user")
	}

	if err := svc.Delete(operator, target.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(operator, target.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}

	if _, err := svc.SetRole(operator, 999999, models.RoleAdmin); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing user want ErrNotFound got %v", err)
	}
}
