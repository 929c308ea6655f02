package shared

import (
	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/models"

	"github.com/gin-gonic/gin"
)

// 上下文键
const (
	ContextAdminID   = "admin_id"
	ContextAdminUser = "admin_user"
	ContextAdminRole = "admin_role"
)

// GetAdminID 从上下文读取当前管理员 ID
func GetAdminID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextAdminID)
	if !exists {
		response.Unauthorized(c, "Não autenticado")
		return 0, false
	}
	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			response.BadRequest(c, "Identificador de usuário inválido")
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			response.BadRequest(c, "Identificador de usuário inválido")
			return 0, false
		}
		return uint(v), true
	default:
		response.Internal(c, "Erro interno do servidor")
		return 0, false
	}
}

// GetAdminUser 从上下文读取当前管理员（JWT 中间件写入）
func GetAdminUser(c *gin.Context) (*models.AdminUser, bool) {
	value, exists := c.Get(ContextAdminUser)
	if !exists {
		response.Unauthorized(c, "Não autenticado")
		return nil, false
	}
	user, ok := value.(*models.AdminUser)
	if !ok || user == nil {
		response.Internal(c, "Erro interno do servidor")
		return nil, false
	}
	return user, true
}
