package admin

import (
	"fmt"
	"strconv"

	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
)

// ListUsers 获取管理员列表 (Admin)
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.AdminUserService.List()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.OK(c, users)
}

// CreateUser 创建管理员 (Admin)
func (h *Handler) CreateUser(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	var input service.CreateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	user, err := h.AdminUserService.Create(operator, input, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	requestLog(c).Infow("admin_user_created", "operator_id", operator.ID, "new_user_id", user.ID)
	response.Created(c, gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	})
}

// setRoleRequest 修改角色请求体
type setRoleRequest struct {
	Role string `json:"role"`
}

// SetUserRole 修改管理员角色 (Admin)
func (h *Handler) SetUserRole(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.BadRequest(c, "Identificador de usuário inválido")
		return
	}

	var req setRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	user, err := h.AdminUserService.SetRole(operator, id, req.Role)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "user_role_change",
		fmt.Sprintf("set role of user %d to %s", id, user.Role),
		c.ClientIP(), c.Request.UserAgent())
	response.OK(c, user)
}

// ToggleUser 启用/停用管理员 (Admin)
func (h *Handler) ToggleUser(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.BadRequest(c, "Identificador de usuário inválido")
		return
	}

	user, err := h.AdminUserService.ToggleActive(operator, id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "user_toggle",
		fmt.Sprintf("toggled user %d active=%t", id, user.IsActive),
		c.ClientIP(), c.Request.UserAgent())
	response.OK(c, user)
}

// DeleteUser 删除管理员 (Admin)
func (h *Handler) DeleteUser(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	id, err := parseUserID(c)
	if err != nil {
		response.BadRequest(c, "Identificador de usuário inválido")
		return
	}

	if err := h.AdminUserService.Delete(operator, id); err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "user_delete",
		fmt.Sprintf("deleted user %d", id),
		c.ClientIP(), c.Request.UserAgent())
	response.OKMessage(c, "Usuário removido com sucesso", nil)
}

func parseUserID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid user id")
	}
	return uint(id), nil
}
