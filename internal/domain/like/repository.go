package like

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 点赞仓储接口
type Repository interface {
	// Create 违反(user_id, target_key)唯一索引时返回ErrAlreadyLiked
	Create(ctx context.Context, l *Like) error
	FindByID(ctx context.Context, id uint) (*Like, error)
	FindByUserAndTarget(ctx context.Context, userID uint, target shared.Target) (*Like, error)
	Delete(ctx context.Context, id uint) error
	// DeleteByTargets 删除指向这些对象的全部点赞（级联清理）
	DeleteByTargets(ctx context.Context, targets ...shared.Target) error
	DeleteByUser(ctx context.Context, userID uint) error
	Count(ctx context.Context, target shared.Target) (int64, error)
	List(ctx context.Context, params ListParams) ([]*Like, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	UserID uint
	Target *shared.Target
}
