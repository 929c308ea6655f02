package shared

// 分页参数的边界值
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// NormalizePagination 归一化查询串里的分页参数，页码最小为 1，
// 页大小缺省 20、上限 100。
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case pageSize <= 0:
		pageSize = defaultPageSize
	case pageSize > maxPageSize:
		pageSize = maxPageSize
	}
	return page, pageSize
}
