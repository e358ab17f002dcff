package review

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// ReviewResponse 书评
type ReviewResponse struct {
	ID              uint      `json:"id"`
	UserID          uint      `json:"user_id"`
	BookID          uint      `json:"book_id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	Rating          int       `json:"rating"`
	ContainsSpoiler bool      `json:"contains_spoiler"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func toResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:              r.ID,
		UserID:          r.UserID,
		BookID:          r.BookID,
		Title:           r.Title,
		Content:         r.Content,
		Rating:          r.Rating,
		ContainsSpoiler: r.ContainsSpoiler,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// CreateRequest 发表书评
type CreateRequest struct {
	UserID          uint
	BookID          uint
	Title           string
	Content         string
	Rating          int
	ContainsSpoiler bool
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	UserID          uint
	BookID          uint
	MinRating       int
	ContainsSpoiler *bool
}

// UseCase 书评用例
type UseCase struct {
	service   review.Service
	cascade   *common.Cascade
	publisher events.Publisher
}

// NewUseCase 创建书评用例
func NewUseCase(service review.Service, cascade *common.Cascade, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, cascade: cascade, publisher: publisher}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*ReviewResponse, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	r := &review.Review{
		UserID:          userID,
		BookID:          req.BookID,
		Title:           req.Title,
		Content:         req.Content,
		Rating:          req.Rating,
		ContainsSpoiler: req.ContainsSpoiler,
	}
	if err := uc.service.Create(ctx, r); err != nil {
		return nil, err
	}
	metrics.RecordAction("review", metrics.ActionCreate)

	resp := toResponse(r)
	events.BestEffort(ctx, uc.publisher, events.New(events.ReviewCreated, resp))
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*ReviewResponse, error) {
	r, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(r)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id uint, params review.UpdateParams) (*ReviewResponse, error) {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return nil, err
	}
	r, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("review", metrics.ActionUpdate)
	resp := toResponse(r)
	return &resp, nil
}

// Delete 同时删除关联的消息、点赞、转发和收藏
func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return err
	}
	target := shared.Target{Kind: shared.TargetReview, ID: id}
	err := uc.cascade.Delete(ctx, target, func(ctx context.Context) error {
		return uc.service.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordAction("review", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[ReviewResponse], error) {
	p := req.Pagination()
	reviews, total, err := uc.service.List(ctx, review.ListParams{
		Pagination:      p,
		UserID:          req.UserID,
		BookID:          req.BookID,
		MinRating:       req.MinRating,
		ContainsSpoiler: req.ContainsSpoiler,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(reviews, total, p, toResponse), nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID, id uint) error {
	if actorID == common.Anonymous {
		return nil
	}
	r, err := uc.service.Get(ctx, id)
	if err != nil {
		return err
	}
	return common.Authorize(actorID, r.UserID)
}
