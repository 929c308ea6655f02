package repository

import "gorm.io/gorm"

// applyPagination 在查询上追加 LIMIT/OFFSET。
// pageSize <= 0 表示不分页，页码从 1 起算。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil || pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
