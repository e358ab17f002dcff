package message

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// MessageResponse 消息
// 四个关联字段中只有消息类型对应的那个非空
type MessageResponse struct {
	ID                uint         `json:"id"`
	SenderID          uint         `json:"sender_id"`
	MessageType       message.Type `json:"message_type"`
	ReceiverID        *uint        `json:"receiver_id"`
	BookInteractionID *uint        `json:"book_interaction_id"`
	ReviewID          *uint        `json:"review_id"`
	QuoteID           *uint        `json:"quote_id"`
	Content           string       `json:"content"`
	IsRead            bool         `json:"is_read"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

func toResponse(m *message.Message) MessageResponse {
	return MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		MessageType:       m.Type,
		ReceiverID:        m.ReceiverID,
		BookInteractionID: m.BookInteractionID,
		ReviewID:          m.ReviewID,
		QuoteID:           m.QuoteID,
		Content:           m.Content,
		IsRead:            m.IsRead,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// SendRequest 发送消息
type SendRequest struct {
	SenderID          uint
	Type              message.Type
	ReceiverID        *uint
	BookInteractionID *uint
	ReviewID          *uint
	QuoteID           *uint
	Content           string
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	SenderID   uint
	ReceiverID uint
	Type       message.Type
	Target     *shared.Target
	UnreadOnly bool
}

// UseCase 消息用例
type UseCase struct {
	service   message.Service
	cascade   *common.Cascade
	publisher events.Publisher
}

// NewUseCase 创建消息用例
func NewUseCase(service message.Service, cascade *common.Cascade, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, cascade: cascade, publisher: publisher}
}

func (uc *UseCase) Send(ctx context.Context, actorID uint, req SendRequest) (*MessageResponse, error) {
	senderID, err := common.ResolveOwner(actorID, req.SenderID)
	if err != nil {
		return nil, err
	}
	m := &message.Message{
		SenderID:          senderID,
		Type:              req.Type,
		ReceiverID:        req.ReceiverID,
		BookInteractionID: req.BookInteractionID,
		ReviewID:          req.ReviewID,
		QuoteID:           req.QuoteID,
		Content:           req.Content,
	}
	if err := uc.service.Send(ctx, m); err != nil {
		return nil, err
	}
	metrics.RecordAction("message", metrics.ActionCreate)

	resp := toResponse(m)
	events.BestEffort(ctx, uc.publisher, events.New(events.MessageSent, resp))
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*MessageResponse, error) {
	m, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(m)
	return &resp, nil
}

// UpdateContent 只有发送者可以修改
func (uc *UseCase) UpdateContent(ctx context.Context, actorID, id uint, content string) (*MessageResponse, error) {
	if err := uc.authorizeSender(ctx, actorID, id); err != nil {
		return nil, err
	}
	m, err := uc.service.UpdateContent(ctx, id, content)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("message", metrics.ActionUpdate)
	resp := toResponse(m)
	return &resp, nil
}

// MarkRead 私信只有接收者能标记已读
func (uc *UseCase) MarkRead(ctx context.Context, actorID, id uint) (*MessageResponse, error) {
	if actorID != common.Anonymous {
		m, err := uc.service.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if m.Type == message.TypePersonal && (m.ReceiverID == nil || *m.ReceiverID != actorID) {
			return nil, message.ErrNotParticipant
		}
	}
	m, err := uc.service.MarkRead(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(m)
	return &resp, nil
}

// Delete 只有发送者可以删除，同时删除消息上的点赞
func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := uc.authorizeSender(ctx, actorID, id); err != nil {
		return err
	}
	target := shared.Target{Kind: shared.TargetMessage, ID: id}
	err := uc.cascade.Delete(ctx, target, func(ctx context.Context) error {
		return uc.service.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordAction("message", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[MessageResponse], error) {
	p := req.Pagination()
	messages, total, err := uc.service.List(ctx, message.ListParams{
		Pagination: p,
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Type:       req.Type,
		Target:     req.Target,
		UnreadOnly: req.UnreadOnly,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(messages, total, p, toResponse), nil
}

// Conversation 两个用户之间的私信，登录用户只能查看自己参与的会话
func (uc *UseCase) Conversation(ctx context.Context, actorID, userA, userB uint, q common.PageQuery) (*common.Page[MessageResponse], error) {
	if actorID != common.Anonymous && actorID != userA && actorID != userB {
		return nil, message.ErrNotParticipant
	}
	p := q.Pagination()
	messages, total, err := uc.service.Conversation(ctx, userA, userB, p)
	if err != nil {
		return nil, err
	}
	return common.NewPage(messages, total, p, toResponse), nil
}

func (uc *UseCase) authorizeSender(ctx context.Context, actorID, id uint) error {
	if actorID == common.Anonymous {
		return nil
	}
	m, err := uc.service.Get(ctx, id)
	if err != nil {
		return err
	}
	if m.SenderID != actorID {
		return message.ErrNotParticipant
	}
	return nil
}
