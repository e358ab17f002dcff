package profile

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 用户资料仓储接口
type Repository interface {
	Create(ctx context.Context, p *Profile) error
	FindByID(ctx context.Context, id uint) (*Profile, error)
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)
	Update(ctx context.Context, p *Profile) error
	Delete(ctx context.Context, id uint) error
	// DeleteByUserID 删除用户的资料（不存在时不报错）
	DeleteByUserID(ctx context.Context, userID uint) error
	List(ctx context.Context, params ListParams) ([]*Profile, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	Location string // 模糊匹配所在地
}
