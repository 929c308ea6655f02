package admin

import (
	handlershared "github.com/xM4T3US/server-mjtech/internal/http/handlers/shared"
	"github.com/xM4T3US/server-mjtech/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func requestLog(c *gin.Context) *zap.SugaredLogger {
	return handlershared.RequestLog(c)
}

func currentAdmin(c *gin.Context) (*models.AdminUser, bool) {
	return handlershared.GetAdminUser(c)
}

func respondServiceError(c *gin.Context, err error) {
	handlershared.RespondServiceError(c, err)
}
