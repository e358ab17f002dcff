// Package common 各用例共用的分页、权限和级联删除
package common

import (
	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// PageQuery 列表查询的分页参数（由HTTP层填充）
type PageQuery struct {
	Page     int
	PageSize int
}

// Pagination 处理默认值与上限
func (q PageQuery) Pagination() shared.Pagination {
	return shared.NewPagination(q.Page, q.PageSize)
}

// Page 分页结果
type Page[T any] struct {
	List       []T   `json:"list"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

// NewPage 把实体列表转换为分页DTO
func NewPage[E any, T any](items []E, total int64, p shared.Pagination, convert func(E) T) *Page[T] {
	list := make([]T, len(items))
	for i, item := range items {
		list[i] = convert(item)
	}

	totalPages := 0
	if p.PageSize > 0 {
		totalPages = int(total) / p.PageSize
		if int(total)%p.PageSize != 0 {
			totalPages++
		}
	}

	return &Page[T]{
		List:       list,
		Total:      total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: totalPages,
	}
}
