package quote

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 书摘仓储接口
type Repository interface {
	Create(ctx context.Context, q *Quote) error
	FindByID(ctx context.Context, id uint) (*Quote, error)
	Update(ctx context.Context, q *Quote) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Quote, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	UserID  uint
	BookID  uint
	Keyword string // 模糊匹配内容
}
