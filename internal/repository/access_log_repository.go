package repository

import (
	"github.com/xM4T3US/server-mjtech/internal/models"

	"gorm.io/gorm"
)

// AccessLogRepository 操作日志数据访问接口
type AccessLogRepository interface {
	Create(log *models.AccessLog) error
	List(filter AccessLogListFilter) ([]models.AccessLog, int64, error)
	WithTx(tx *gorm.DB) AccessLogRepository
}

// GormAccessLogRepository GORM 实现
type GormAccessLogRepository struct {
	db *gorm.DB
}

// NewAccessLogRepository 创建操作日志仓库
func NewAccessLogRepository(db *gorm.DB) *GormAccessLogRepository {
	return &GormAccessLogRepository{db: db}
}

// WithTx 返回绑定事务的仓库
func (r *GormAccessLogRepository) WithTx(tx *gorm.DB) AccessLogRepository {
	if tx == nil {
		return r
	}
	return &GormAccessLogRepository{db: tx}
}

// Create 写入一条操作日志
func (r *GormAccessLogRepository) Create(log *models.AccessLog) error {
	return r.db.Create(log).Error
}

// List 查询操作日志列表（按时间倒序）
func (r *GormAccessLogRepository) List(filter AccessLogListFilter) ([]models.AccessLog, int64, error) {
	query := r.db.Model(&models.AccessLog{})
	if filter.Username != "" {
		query = query.Where("username = ?", filter.Username)
	}
	if filter.Action != "" {
		query = query.Where("action = ?", filter.Action)
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]models.AccessLog, 0)
	err := applyPagination(query, filter.Page, filter.PageSize).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
