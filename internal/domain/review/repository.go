package review

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 书评仓储接口
type Repository interface {
	Create(ctx context.Context, r *Review) error
	FindByID(ctx context.Context, id uint) (*Review, error)
	Update(ctx context.Context, r *Review) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Review, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	UserID          uint
	BookID          uint
	MinRating       int
	ContainsSpoiler *bool
}
