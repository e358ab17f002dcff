package interaction

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 阅读记录仓储接口
type Repository interface {
	// Create 违反(user_id, book_id)唯一索引时返回ErrInteractionExists
	Create(ctx context.Context, i *Interaction) error
	FindByID(ctx context.Context, id uint) (*Interaction, error)
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Interaction, error)
	Update(ctx context.Context, i *Interaction) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Interaction, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	UserID uint
	BookID uint
	Status Status
}
