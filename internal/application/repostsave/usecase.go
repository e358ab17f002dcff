package repostsave

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// RepostSaveResponse 转发/收藏记录
type RepostSaveResponse struct {
	ID                uint                  `json:"id"`
	UserID            uint                  `json:"user_id"`
	ActionType        repostsave.ActionType `json:"action_type"`
	ReviewID          *uint                 `json:"review_id"`
	QuoteID           *uint                 `json:"quote_id"`
	BookInteractionID *uint                 `json:"book_interaction_id"`
	CreatedAt         time.Time             `json:"created_at"`
}

func toResponse(rs *repostsave.RepostSave) RepostSaveResponse {
	return RepostSaveResponse{
		ID:                rs.ID,
		UserID:            rs.UserID,
		ActionType:        rs.ActionType,
		ReviewID:          rs.ReviewID,
		QuoteID:           rs.QuoteID,
		BookInteractionID: rs.BookInteractionID,
		CreatedAt:         rs.CreatedAt,
	}
}

// CreateRequest 转发或收藏
type CreateRequest struct {
	UserID     uint
	ActionType repostsave.ActionType
	Target     shared.Target
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	UserID     uint
	ActionType repostsave.ActionType
	Target     *shared.Target
}

// UseCase 转发/收藏用例
type UseCase struct {
	service   repostsave.Service
	publisher events.Publisher
}

// NewUseCase 创建转发/收藏用例
func NewUseCase(service repostsave.Service, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, publisher: publisher}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*RepostSaveResponse, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	rs, err := uc.service.Create(ctx, userID, req.ActionType, req.Target)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("repost_save", metrics.ActionCreate)

	resp := toResponse(rs)
	events.BestEffort(ctx, uc.publisher, events.New(events.RepostSaveCreated, resp))
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*RepostSaveResponse, error) {
	rs, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(rs)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if actorID != common.Anonymous {
		rs, err := uc.service.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := common.Authorize(actorID, rs.UserID); err != nil {
			return err
		}
	}
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordAction("repost_save", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) Exists(ctx context.Context, userID uint, target shared.Target, action repostsave.ActionType) (bool, error) {
	return uc.service.Exists(ctx, userID, target, action)
}

func (uc *UseCase) Count(ctx context.Context, target shared.Target, action repostsave.ActionType) (int64, error) {
	return uc.service.Count(ctx, target, action)
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[RepostSaveResponse], error) {
	p := req.Pagination()
	list, total, err := uc.service.List(ctx, repostsave.ListParams{
		Pagination: p,
		UserID:     req.UserID,
		ActionType: req.ActionType,
		Target:     req.Target,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(list, total, p, toResponse), nil
}
