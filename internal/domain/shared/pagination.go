// Package shared 各聚合共用的值对象
package shared

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage 页码上限，保证偏移量不会溢出
	MaxPage = 10000
)

// Pagination 分页参数（页码从1开始）
type Pagination struct {
	Page     int
	PageSize int
}

// NewPagination 创建分页参数并处理默认值与上限
// page<1按1处理，page>10000按10000处理，pageSize<1按20处理，pageSize>100按100处理
func NewPagination(page, pageSize int) Pagination {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// Offset 计算SQL偏移量
func (p Pagination) Offset() int {
	page := p.Page
	if page < 1 {
		return 0
	}
	if page > MaxPage {
		page = MaxPage
	}
	return (page - 1) * p.Limit()
}

// Limit 每页数量（零值时使用默认值）
func (p Pagination) Limit() int {
	if p.PageSize < 1 {
		return DefaultPageSize
	}
	return p.PageSize
}
