package message

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// Repository 消息仓储接口
type Repository interface {
	Create(ctx context.Context, m *Message) error
	FindByID(ctx context.Context, id uint) (*Message, error)
	Update(ctx context.Context, m *Message) error
	Delete(ctx context.Context, id uint) error

	// DeleteByTarget 删除关联到某个对象的全部消息，返回被删除的消息ID
	// 用于书评、书摘、阅读记录删除时级联清理
	DeleteByTarget(ctx context.Context, target shared.Target) ([]uint, error)

	// DeleteByUser 删除用户发出和收到的全部消息，返回被删除的消息ID
	DeleteByUser(ctx context.Context, userID uint) ([]uint, error)

	List(ctx context.Context, params ListParams) ([]*Message, int64, error)

	// Conversation 两个用户之间的私信，按时间正序
	Conversation(ctx context.Context, userA, userB uint, page shared.Pagination) ([]*Message, int64, error)
}

// ListParams 列表查询参数
type ListParams struct {
	shared.Pagination
	SenderID   uint
	ReceiverID uint
	Type       Type
	Target     *shared.Target // 按关联对象过滤
	UnreadOnly bool
}
