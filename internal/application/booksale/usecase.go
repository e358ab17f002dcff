package booksale

import (
	"context"
	"time"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/booksale"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// SaleResponse 售卖信息
type SaleResponse struct {
	ID        uint      `json:"id"`
	BookID    uint      `json:"book_id"`
	StoreName string    `json:"store_name"`
	Price     int64     `json:"price"` // 最小货币单位（分）
	Currency  string    `json:"currency"`
	URL       string    `json:"url"`
	InStock   bool      `json:"in_stock"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toResponse(s *booksale.BookSale) SaleResponse {
	return SaleResponse{
		ID:        s.ID,
		BookID:    s.BookID,
		StoreName: s.StoreName,
		Price:     s.Price,
		Currency:  s.Currency,
		URL:       s.URL,
		InStock:   s.InStock,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

// CreateRequest 新增售卖信息
type CreateRequest struct {
	BookID    uint
	StoreName string
	Price     int64
	Currency  string
	URL       string
	InStock   bool
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	BookID    uint
	StoreName string
	MinPrice  *int64
	MaxPrice  *int64
	InStock   *bool
	SortBy    string
}

// UseCase 图书售卖信息用例
type UseCase struct {
	service booksale.Service
}

// NewUseCase 创建售卖信息用例
func NewUseCase(service booksale.Service) *UseCase {
	return &UseCase{service: service}
}

func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*SaleResponse, error) {
	s := &booksale.BookSale{
		BookID:    req.BookID,
		StoreName: req.StoreName,
		Price:     req.Price,
		Currency:  req.Currency,
		URL:       req.URL,
		InStock:   req.InStock,
	}
	if err := uc.service.Create(ctx, s); err != nil {
		return nil, err
	}
	metrics.RecordAction("book_sale", metrics.ActionCreate)
	resp := toResponse(s)
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*SaleResponse, error) {
	s, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(s)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, id uint, params booksale.UpdateParams) (*SaleResponse, error) {
	s, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	metrics.RecordAction("book_sale", metrics.ActionUpdate)
	resp := toResponse(s)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	metrics.RecordAction("book_sale", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[SaleResponse], error) {
	p := req.Pagination()
	sales, total, err := uc.service.List(ctx, booksale.ListParams{
		Pagination: p,
		BookID:     req.BookID,
		StoreName:  req.StoreName,
		MinPrice:   req.MinPrice,
		MaxPrice:   req.MaxPrice,
		InStock:    req.InStock,
		SortBy:     req.SortBy,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(sales, total, p, toResponse), nil
}
