package quote

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// QuoteResponse 书摘
type QuoteResponse struct {
	ID         uint      `json:"id"`
	UserID     uint      `json:"user_id"`
	BookID     uint      `json:"book_id"`
	Content    string    `json:"content"`
	PageNumber int       `json:"page_number"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toResponse(q *quote.Quote) QuoteResponse {
	return QuoteResponse{
		ID:         q.ID,
		UserID:     q.UserID,
		BookID:     q.BookID,
		Content:    q.Content,
		PageNumber: q.PageNumber,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

// CreateRequest 摘录书摘
type CreateRequest struct {
	UserID     uint
	BookID     uint
	Content    string
	PageNumber int
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	UserID  uint
	BookID  uint
	Keyword string
}

// UseCase 书摘用例
type UseCase struct {
	service   quote.Service
	cascade   *common.Cascade
	publisher events.Publisher
}

// NewUseCase 创建书摘用例
func NewUseCase(service quote.Service, cascade *common.Cascade, publisher events.Publisher) *UseCase {
	return &UseCase{service: service, cascade: cascade, publisher: publisher}
}

func (uc *UseCase) Create(ctx context.Context, actorID uint, req CreateRequest) (*QuoteResponse, error) {
	userID, err := common.ResolveOwner(actorID, req.UserID)
	if err != nil {
		return nil, err
	}
	q := &quote.Quote{
		UserID:     userID,
		BookID:     req.BookID,
		Content:    req.Content,
		PageNumber: req.PageNumber,
	}
	if err := uc.service.Create(ctx, q); err != nil {
		return nil, err
	}
	metrics.RecordAction("quote", metrics.ActionCreate)

	resp := toResponse(q)
	events.BestEffort(ctx, uc.publisher, events.New(events.QuoteCreated, resp))
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*QuoteResponse, error) {
	q, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(q)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, actorID, id uint, params quote.UpdateParams) (*QuoteResponse, error) {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return nil, err
	}
	q, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("quote", metrics.ActionUpdate)
	resp := toResponse(q)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, actorID, id uint) error {
	if err := uc.authorize(ctx, actorID, id); err != nil {
		return err
	}
	target := shared.Target{Kind: shared.TargetQuote, ID: id}
	err := uc.cascade.Delete(ctx, target, func(ctx context.Context) error {
		return uc.service.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	metrics.RecordAction("quote", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[QuoteResponse], error) {
	p := req.Pagination()
	quotes, total, err := uc.service.List(ctx, quote.ListParams{
		Pagination: p,
		UserID:     req.UserID,
		BookID:     req.BookID,
		Keyword:    req.Keyword,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(quotes, total, p, toResponse), nil
}

func (uc *UseCase) authorize(ctx context.Context, actorID, id uint) error {
	if actorID == common.Anonymous {
		return nil
	}
	q, err := uc.service.Get(ctx, id)
	if err != nil {
		return err
	}
	return common.Authorize(actorID, q.UserID)
}
