package admin

import (
	"strconv"
	"time"

	handlershared "github.com/xM4T3US/server-mjtech/internal/http/handlers/shared"
	"github.com/xM4T3US/server-mjtech/internal/http/response"
	"github.com/xM4T3US/server-mjtech/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListLogs 查询操作日志 (Admin)
func (h *Handler) ListLogs(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = handlershared.NormalizePagination(page, pageSize)

	filter := repository.AccessLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Username: c.Query("username"),
		Action:   c.Query("action"),
	}
	if from := c.Query("from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	logs, total, err := h.AccessLogService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	response.OK(c, gin.H{
		"items":     logs,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
