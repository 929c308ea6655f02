package repository

import "time"

// ProductListFilter 查询商品列表的过滤条件
type ProductListFilter struct {
	Page       int
	PageSize   int
	Category   string
	Search     string
	OnlyActive bool
}

// AccessLogListFilter 查询操作日志列表的过滤条件
type AccessLogListFilter struct {
	Page        int
	PageSize    int
	Username    string
	Action      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}
