package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

// 权限资源
const (
	ObjectProducts = "/api/admin/products"
	ObjectUsers    = "/api/admin/users"
	ObjectLogs     = "/api/admin/logs"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

// defaultPolicies 内置角色策略
// editor 仅能管理商品，admin 拥有后台全部权限
var defaultPolicies = [][]string{
	{rolePrefix + "editor", ObjectProducts, "*"},
	{rolePrefix + "editor", ObjectProducts + "/*", "*"},
	{rolePrefix + "admin", "/api/admin/*", "*"},
}

// Service Casbin 授权服务
// 统一封装策略加载与授权判定逻辑
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并写入内置策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	service := &Service{enforcer: enforcer}
	if err := service.ensureDefaultPolicies(); err != nil {
		return nil, err
	}
	return service, nil
}

// ensureDefaultPolicies 确保内置策略存在
func (s *Service) ensureDefaultPolicies() error {
	for _, policy := range defaultPolicies {
		exists, err := s.enforcer.HasPolicy(policy[0], policy[1], policy[2])
		if err != nil {
			return fmt.Errorf("check authz policy failed: %w", err)
		}
		if exists {
			continue
		}
		if _, err := s.enforcer.AddPolicy(policy[0], policy[1], policy[2]); err != nil {
			return fmt.Errorf("seed authz policy failed: %w", err)
		}
	}
	return nil
}

// SubjectForRole 角色主体标识
func SubjectForRole(role string) string {
	return rolePrefix + strings.ToLower(strings.TrimSpace(role))
}

// Enforce 执行授权判断
func (s *Service) Enforce(sub, obj, act string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(strings.TrimSpace(sub), strings.TrimSpace(obj), strings.TrimSpace(act))
}

// EnforceRole 按角色判定资源访问权限
func (s *Service) EnforceRole(role, obj, act string) (bool, error) {
	return s.Enforce(SubjectForRole(role), obj, act)
}

// ReloadPolicy 重新加载策略
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}
