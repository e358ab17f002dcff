package follow

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 关注关系仓储接口
type Repository interface {
	// Create 违反(follower_id, target_key)唯一索引时返回ErrAlreadyFollow
	Create(ctx context.Context, f *Follow) error
	FindByID(ctx context.Context, id uint) (*Follow, error)
	FindByFollowerAndTarget(ctx context.Context, followerID uint, target shared.Target) (*Follow, error)
	Delete(ctx context.Context, id uint) error
	// DeleteByUser 删除该用户关注别人以及被别人关注的记录
	DeleteByUser(ctx context.Context, userID uint) error
	List(ctx context.Context, params ListParams) ([]*Follow, int64, error)
	CountFollowers(ctx context.Context, target shared.Target) (int64, error)
	CountFollowing(ctx context.Context, followerID uint, kind shared.TargetKind) (int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	FollowerID     uint
	FollowedUserID uint
	FollowedBookID uint
}
