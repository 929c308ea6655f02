package admin

import (
	"strings"

	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/models"

	"github.com/gin-gonic/gin"
)

// loginRequest 登录请求体
type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	user, token, expiresAt, err := h.AuthService.Login(req.Username, req.Password, req.RememberMe)
	if err != nil {
		h.AccessLogService.RecordFailure(
			strings.TrimSpace(req.Username),
			"login",
			err.Error(),
			c.ClientIP(),
			c.Request.UserAgent(),
		)
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(user, "login", "", c.ClientIP(), c.Request.UserAgent())
	requestLog(c).Infow("admin_login_success", "admin_id", user.ID, "username", user.Username)

	response.Raw(c, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       sanitizedUser(user),
	})
}

// Verify 校验当前 Token 并返回管理员信息
func (h *Handler) Verify(c *gin.Context) {
	token := extractBearerToken(c)
	if token == "" {
		response.Unauthorized(c, "Token não informado")
		return
	}

	user, claims, err := h.AuthService.VerifyToken(token)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.Raw(c, gin.H{
		"valid":      true,
		"expires_at": claims.ExpiresAt,
		"user":       sanitizedUser(user),
	})
}

// changePasswordRequest 修改密码请求体
type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ChangePassword 修改当前管理员密码
func (h *Handler) ChangePassword(c *gin.Context) {
	operator, ok := currentAdmin(c)
	if !ok {
		return
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Corpo da requisição inválido")
		return
	}

	if err := h.AuthService.ChangePassword(operator.ID, req.OldPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}

	h.AccessLogService.Record(operator, "password_change", "", c.ClientIP(), c.Request.UserAgent())
	response.OKMessage(c, "Senha alterada com sucesso", nil)
}

// sanitizedUser 返回可安全下发给前端的管理员字段
func sanitizedUser(user *models.AdminUser) gin.H {
	return gin.H{
		"id":        user.ID,
		"username":  user.Username,
		"email":     user.Email,
		"full_name": user.FullName,
		"role":      user.Role,
	}
}

// extractBearerToken 从 Authorization 头提取 Bearer Token
func extractBearerToken(c *gin.Context) string {
	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
