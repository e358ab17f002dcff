package like

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// LikeResponse 点赞，四个关联字段恰好一个非空
type LikeResponse struct {
	ID                uint      `json:"id"`
	UserID            uint      `json:"user_id"`
	MessageID         *uint     `json:"message_id"`
	BookInteractionID *uint     `json:"book_interaction_id"`
	ReviewID          *uint     `json:"review_id"`
	QuoteID           *uint     `json:"quote_id"`
	CreatedAt         time.Time `json:"created_at"`
}

func toResponse(l *like.Like) LikeResponse {
	return LikeResponse{
		ID:                l.ID,
		UserID:            l.UserID,
		MessageID:         l.MessageID,
		BookInteractionID: l.BookInteractionID,
		ReviewID:          l.ReviewID,
		QuoteID:           l.QuoteID,
		CreatedAt:         l.CreatedAt,
	}
}

// CreateRequest 点赞
type CreateRequest struct {
	UserID uint
	Target shared.Target
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	UserID uint
	Target *shared.Target
}

// UseCase 点赞用例
type UseCase struct {
	service   like.Service
	publisher events.Publisher
}

// NewUseCase 创建点赞用例
func NewUseCase(service like.Service, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, publisher: publisher}
}

// Create 幂等：重复点赞返回已有记录，created=false
func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*LikeResponse, bool, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, false, err
	}
	l, created, err := uc.service.Like(ctx, userID, req.Target)
	if err != nil {
		return nil, false, err
	}

	resp := toResponse(l)
	if created {
		metrics.RecordAction("like", metrics.ActionCreate)
		events.BestEffort(ctx, uc.publisher, events.New(events.LikeCreated, resp))
	}
	return &resp, created, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*LikeResponse, error) {
	l, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(l)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if actorID != common.Anonymous {
		l, err := uc.service.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := common.Authorize(actorID, l.UserID); err != nil {
			return err
		}
	}
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordAction("like", metrics.ActionDelete)
	return nil
}

// Unlike 按(用户, 对象)取消点赞
func (uc *UseCase) Unlike(ctx context.Context, actorID, userID uint, target shared.Target) error {
	userID, err := common.ResolveOwner(actorID, userID)
	if err != nil {
		return err
	}
	if err := uc.service.Unlike(ctx, userID, target); err != nil {
		return err
	}
	metrics.RecordAction("like", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) HasLiked(ctx context.Context, userID uint, target shared.Target) (bool, error) {
	return uc.service.HasLiked(ctx, userID, target)
}

func (uc *UseCase) Count(ctx context.Context, target shared.Target) (int64, error) {
	return uc.service.Count(ctx, target)
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[LikeResponse], error) {
	p := req.Pagination()
	likes, total, err := uc.service.List(ctx, like.ListParams{
		Pagination: p,
		UserID:     req.UserID,
		Target:     req.Target,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(likes, total, p, toResponse), nil
}
