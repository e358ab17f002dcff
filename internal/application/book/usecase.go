package book

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/xiebiao/bookclub/internal/application/common"
	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/pkg/metrics"
)

// BookResponse 图书详情
type BookResponse struct {
	ID            uint       `json:"id"`
	ISBN          string     `json:"isbn"`
	Title         string     `json:"title"`
	Author        string     `json:"author"`
	Publisher     string     `json:"publisher"`
	PublishedYear int        `json:"published_year"`
	PageCount     int        `json:"page_count"`
	Language      string     `json:"language"`
	Genre         book.Genre `json:"genre"`
	Description   string     `json:"description"`
	CoverURL      string     `json:"cover_url"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toResponse(b *book.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedYear: b.PublishedYear,
		PageCount:     b.PageCount,
		Language:      b.Language,
		Genre:         b.Genre,
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// CreateRequest 录入图书
type CreateRequest struct {
	ISBN          string
	Title         string
	Author        string
	Publisher     string
	PublishedYear int
	PageCount     int
	Language      string
	Genre         book.Genre
	Description   string
	CoverURL      string
}

// ListRequest 列表查询
type ListRequest struct {
	common.PageQuery
	Keyword  string
	Author   string
	Genre    book.Genre
	Language string
	YearFrom int
	YearTo   int
	SortBy   string
}

// UseCase 图书用例
// 详情查询走Cache-Aside：先读Redis，未命中再查数据库并回填；更新、删除后失效缓存。
// 缓存故障只记录日志，降级为直接查库。
type UseCase struct {
	service  book.Service
	cache    book.Cache
	cacheTTL time.Duration
}

// NewUseCase 创建图书用例
func NewUseCase(service book.Service, cache book.Cache, cacheTTL time.Duration) *UseCase {
	return &UseCase{service: service, cache: cache, cacheTTL: cacheTTL}
}

func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*BookResponse, error) {
	b := &book.Book{
		ISBN:          req.ISBN,
		Title:         req.Title,
		Author:        req.Author,
		Publisher:     req.Publisher,
		PublishedYear: req.PublishedYear,
		PageCount:     req.PageCount,
		Language:      req.Language,
		Genre:         req.Genre,
		Description:   req.Description,
		CoverURL:      req.CoverURL,
	}
	if err := uc.service.Create(ctx, b); err != nil {
		return nil, err
	}
	metrics.RecordAction("book", metrics.ActionCreate)
	resp := toResponse(b)
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id uint) (*BookResponse, error) {
	log := zerolog.Ctx(ctx)

	cached, err := uc.cache.Get(ctx, id)
	if err == nil {
		resp := toResponse(cached)
		return &resp, nil
	}
	if !errors.Is(err, book.ErrCacheMiss) {
		log.Warn().Err(err).Uint("book_id", id).Msg("读取图书缓存失败")
	}

	b, err := uc.service.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.Set(ctx, b, uc.cacheTTL); err != nil {
		log.Warn().Err(err).Uint("book_id", id).Msg("写入图书缓存失败")
	}
	resp := toResponse(b)
	return &resp, nil
}

func (uc *UseCase) Update(ctx context.Context, id uint, params book.UpdateParams) (*BookResponse, error) {
	b, err := uc.service.Update(ctx, id, params)
	if err != nil {
		return nil, err
	}
	uc.evict(ctx, id)
	metrics.RecordAction("book", metrics.ActionUpdate)
	resp := toResponse(b)
	return &resp, nil
}

func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	if err := uc.service.Delete(ctx, id); err != nil {
		return err
	}
	uc.evict(ctx, id)
	metrics.RecordAction("book", metrics.ActionDelete)
	return nil
}

func (uc *UseCase) List(ctx context.Context, req ListRequest) (*common.Page[BookResponse], error) {
	p := req.Pagination()
	books, total, err := uc.service.List(ctx, book.ListParams{
		Pagination: p,
		Keyword:    req.Keyword,
		Author:     req.Author,
		Genre:      req.Genre,
		Language:   req.Language,
		YearFrom:   req.YearFrom,
		YearTo:     req.YearTo,
		SortBy:     req.SortBy,
	})
	if err != nil {
		return nil, err
	}
	return common.NewPage(books, total, p, toResponse), nil
}

func (uc *UseCase) evict(ctx context.Context, id uint) {
	if err := uc.cache.Delete(ctx, id); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Uint("book_id", id).Msg("删除图书缓存失败")
	}
}
