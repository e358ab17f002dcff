package interaction

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// InteractionResponse 阅读记录
type InteractionResponse struct {
	ID         uint               `json:"id"`
	UserID     uint               `json:"user_id"`
	BookID     uint               `json:"book_id"`
	Status     interaction.Status `json:"status"`
	Rating     int                `json:"rating"`
	Note       string             `json:"note"`
	StartedAt  *time.Time         `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`
}

func toResponse(i *interaction.Interaction) InteractionResponse {
	return InteractionResponse{
		ID:         i.ID,
		UserID:     i.UserID,
		BookID:     i.BookID,
		Status:     i.Status,
		Rating:     i.Rating,
		Note:       i.Note,
		StartedAt:  i.StartedAt,
		FinishedAt: i.FinishedAt,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

// CreateRequest 创建阅读记录
type CreateRequest struct {
	UserID     uint
	BookID     uint
	Status     interaction.Status
	Rating     int
	Note       string
	StartedAt  *time.Time
	FinishedAt *time.Time
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	UserID uint
	BookID uint
	Status interaction.Status
}

// UseCase 阅读记录用例
type UseCase struct {
	service interaction.Service
	cascade *common.Cascade
}

// NewUseCase 创建阅读记录用例
func NewUseCase(service interaction.Service, cascade *common.Cascade) *UseCase {
	return &UseCase{service: service, cascade: cascade}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*InteractionResponse, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	i := &interaction.Interaction{
		UserID:     userID,
		BookID:     req.BookID,
		Status:     req.Status,
		Rating:     req.Rating,
		Note:       req.Note,
		StartedAt:  req.StartedAt,
		FinishedAt: req.FinishedAt,
	}
	if err := uc.service.Create(ctx, i); err != nil {
		return nil, err
	}
	metrics.RecordAction("book_interaction", metrics.ActionCreate)
	resp := toResponse(i)
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*InteractionResponse, error) {
	i, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(i)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id uint, params interaction.UpdateParams) (*InteractionResponse, error) {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return nil, err
	}
	i, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("book_interaction", metrics.ActionUpdate)
	resp := toResponse(i)
	return &resp, nil
}

// Delete 同时删除关联的消息、点赞、转发和收藏
func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return err
	}
	target := shared.Target{Kind: shared.TargetBookInteraction, ID: id}
	err := uc.cascade.Delete(ctx, target, func(ctx context.Context) error {
		return uc.service.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordAction("book_interaction", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[InteractionResponse], error) {
	p := req.Pagination()
	list, total, err := uc.service.List(ctx, interaction.ListParams{
		Pagination: p,
		UserID:     req.UserID,
		BookID:     req.BookID,
		Status:     req.Status,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(list, total, p, toResponse), nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID, id uint) error {
	if actorID == common.Anonymous {
		return nil
	}
	i, err := uc.service.Get(ctx, id)
	if err != nil {
		return err
	}
	return common.Authorize(actorID, i.UserID)
}
