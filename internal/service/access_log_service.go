package service

import (
	"github.com/xM4T3US/server-mjtech/internal/logger"
	"github.com/xM4T3US/server-mjtech/internal/models"
	"github.com/xM4T3US/server-mjtech/internal/repository"
)

// AccessLogService 后台操作日志服务
type AccessLogService struct {
	repo repository.AccessLogRepository
}

// NewAccessLogService 创建操作日志服务实例
func NewAccessLogService(repo repository.AccessLogRepository) *AccessLogService {
	return &AccessLogService{repo: repo}
}

// Record 写入一条成功操作日志（失败只记日志，不中断主流程）
func (s *AccessLogService) Record(operator *models.AdminUser, action, detail, ip, userAgent string) {
	log := &models.AccessLog{
		Action:    action,
		Success:   true,
		Detail:    detail,
		IP:        ip,
		UserAgent: userAgent,
	}
	if operator != nil {
		log.AdminID = &operator.ID
		log.Username = operator.Username
	}
	if err := s.repo.Create(log); err != nil {
		logger.Errorw("access_log_write_failed", "action", action, "error", err)
	}
}

// RecordFailure 写入失败操作日志（登录失败等未认证场景）
func (s *AccessLogService) RecordFailure(username, action, detail, ip, userAgent string) {
	log := &models.AccessLog{
		Username:  username,
		Action:    action,
		Success:   false,
		Detail:    detail,
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.repo.Create(log); err != nil {
		logger.Errorw("access_log_write_failed", "action", action, "error", err)
	}
}

// List 查询操作日志列表
func (s *AccessLogService) List(filter repository.AccessLogListFilter) ([]models.AccessLog, int64, error) {
	return s.repo.List(filter)
}
