package repostsave

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 转发/收藏仓储接口
type Repository interface {
	// Create 违反(user_id, target_key, action_type)唯一索引时返回ErrAlreadyExists
	Create(ctx context.Context, rs *RepostSave) error
	FindByID(ctx context.Context, id uint) (*RepostSave, error)
	Find(ctx context.Context, userID uint, target shared.Target, action ActionType) (*RepostSave, error)
	Delete(ctx context.Context, id uint) error
	// DeleteByTargets 删除指向这些对象的全部记录（级联清理）
	DeleteByTargets(ctx context.Context, targets ...shared.Target) error
	DeleteByUser(ctx context.Context, userID uint) error
	Count(ctx context.Context, target shared.Target, action ActionType) (int64, error)
	List(ctx context.Context, params ListParams) ([]*RepostSave, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	UserID     uint
	ActionType ActionType
	Target     *shared.Target
}
