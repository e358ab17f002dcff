package booksale

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 售卖信息仓储接口
type Repository interface {
	Create(ctx context.Context, s *BookSale) error
	FindByID(ctx context.Context, id uint) (*BookSale, error)
	Update(ctx context.Context, s *BookSale) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*BookSale, int64, error)
}

// 排序方式
const (
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	BookID    uint
	StoreName string // 模糊匹配
	MinPrice  *int64
	MaxPrice  *int64
	InStock   *bool
	SortBy    string
}
