package message

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Service 消息领域服务
type Service interface {
	// Send 发送消息
	// 业务规则：
	// - 类型与关联对象一一对应（见Message.Validate）
	// - 发送者和关联对象必须存在
	// - 私信不能发给自己
	Send(ctx context.Context, m *Message) error
	Get(ctx context.Context, id uint) (*Message, error)
	UpdateContent(ctx context.Context, id uint, content string) (*Message, error)
	MarkRead(ctx context.Context, id uint) (*Message, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Message, int64, error)
	Conversation(ctx context.Context, userA, userB uint, page shared.Pagination) ([]*Message, int64, error)
}

type service struct {
	repo         Repository
	users        user.Repository
	interactions interaction.Repository
	reviews      review.Repository
	quotes       quote.Repository
}

// NewService 创建消息领域服务
func NewService(
	repo Repository,
	users user.Repository,
	interactions interaction.Repository,
	reviews review.Repository,
	quotes quote.Repository,
) Service {
	return &service{
		repo:         repo,
		users:        users,
		interactions: interactions,
		reviews:      reviews,
		quotes:       quotes,
	}
}

func (s *service) Send(ctx context.Context, m *Message) error {
	// 1. 结构校验（持久化前拒绝，数据库CHECK约束兜底）
	if err := m.Validate(); err != nil {
		return err
	}

	// 2. 发送者必须存在
	if _, err := s.users.FindByID(ctx, m.SenderID); err != nil {
		return err
	}

	// 3. 关联对象必须存在
	target := m.Target()
	if target.Kind == shared.TargetUser && target.ID == m.SenderID {
		return ErrSendToSelf
	}
	if err := s.ensureTargetExists(ctx, target); err != nil {
		return err
	}

	// 4. 持久化
	now := time.Now()
	m.IsRead = false
	m.CreatedAt, m.UpdatedAt = now, now
	return s.repo.Create(ctx, m)
}

func (s *service) ensureTargetExists(ctx context.Context, t shared.Target) error {
	var err error
	switch t.Kind {
	case shared.TargetUser:
		_, err = s.users.FindByID(ctx, t.ID)
	case shared.TargetBookInteraction:
		_, err = s.interactions.FindByID(ctx, t.ID)
	case shared.TargetReview:
		_, err = s.reviews.FindByID(ctx, t.ID)
	case shared.TargetQuote:
		_, err = s.quotes.FindByID(ctx, t.ID)
	default:
		err = ErrInvalidType
	}
	return err
}

func (s *service) Get(ctx context.Context, id uint) (*Message, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) UpdateContent(ctx context.Context, id uint, content string) (*Message, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := m.Edit(content); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) MarkRead(ctx context.Context, id uint) (*Message, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.IsRead {
		return m, nil
	}
	m.MarkRead()
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Message, int64, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Conversation(ctx context.Context, userA, userB uint, page shared.Pagination) ([]*Message, int64, error) {
	return s.repo.Conversation(ctx, userA, userB, page)
}
