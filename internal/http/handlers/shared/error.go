package shared

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var timeNow = time.Now

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondServiceError 将服务层错误映射为 HTTP 响应。
func RespondServiceError(c *gin.Context, err error) {
	var locked *service.AccountLockedError
	var badCredentials *service.InvalidCredentialsError
	switch {
	case errors.As(err, &locked):
		response.Locked(c, "Conta bloqueada por excesso de tentativas. Tente novamente mais tarde.", gin.H{
			"locked_until":      locked.LockedUntil.UTC(),
			"remaining_minutes": locked.RemainingMinutes(timeNow()),
		})
	case errors.As(err, &badCredentials):
		response.UnauthorizedWith(c, attemptsRemainingMessage(badCredentials.AttemptsRemaining), gin.H{
			"attempts_remaining": badCredentials.AttemptsRemaining,
		})
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, "Usuário ou senha inválidos")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, "Conta desativada. Contate o administrador.")
	case errors.Is(err, service.ErrForbidden):
		response.Forbidden(c, "Você não tem permissão para esta operação")
	case errors.Is(err, service.ErrNotFound):
		response.NotFound(c, "Recurso não encontrado")
	case errors.Is(err, service.ErrUsernameTaken):
		response.Conflict(c, "Nome de usuário já está em uso")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, "E-mail já está em uso")
	case errors.Is(err, service.ErrInvalidRole):
		response.BadRequest(c, "Papel inválido. Use admin ou editor.")
	case errors.Is(err, service.ErrSelfOperation):
		response.BadRequest(c, "Operação não permitida na própria conta")
	case errors.Is(err, service.ErrInvalidPassword):
		response.BadRequest(c, "Senha atual incorreta")
	case errors.Is(err, service.ErrValidation):
		response.BadRequest(c, validationMessage(err))
	default:
		RequestLog(c).Errorw("handler_error", "error", err)
		response.Internal(c, "Erro interno do servidor")
	}
}

// attemptsRemainingMessage 组装带剩余尝试次数的登录失败提示
func attemptsRemainingMessage(remaining int) string {
	if remaining == 1 {
		return "Usuário ou senha inválidos. 1 tentativa restante"
	}
	return fmt.Sprintf("Usuário ou senha inválidos. %d tentativas restantes", remaining)
}

// validationMessage 提取校验错误的细节部分
func validationMessage(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx >= 0 {
		return msg[idx+2:]
	}
	return msg
}
