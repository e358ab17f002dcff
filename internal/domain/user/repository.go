package user

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 用户仓储接口（依赖倒置原则）
// 由domain层定义，infrastructure层实现
type Repository interface {
	Create(ctx context.Context, user *User) error

	// FindByID 查找用户，不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	FindByEmail(ctx context.Context, email string) (*User, error)

	FindByUsername(ctx context.Context, username string) (*User, error)

	Update(ctx context.Context, user *User) error

	// Delete 软删除
	Delete(ctx context.Context, id uint) error

	// Purge 物理删除（注册流程补偿使用，释放唯一索引）
	Purge(ctx context.Context, id uint) error

	List(ctx context.Context, params ListParams) ([]*User, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	Keyword string // 模糊匹配用户名、邮箱
}
