package booksale

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/xiebiao/bookclub/internal/domain/book"
)

// Service 售卖信息领域服务
type Service interface {
	// Create 业务规则：图书必须存在，价格>=0，币种为ISO 4217代码
	Create(ctx context.Context, s *BookSale) error
	Get(ctx context.Context, id uint) (*BookSale, error)
	Update(ctx context.Context, id uint, params UpdateParams) (*BookSale, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*BookSale, int64, error)
}

type service struct {
	repo  Repository
	books book.Repository
}

// NewService 创建售卖信息领域服务
func NewService(repo Repository, books book.Repository) Service {
	return &service{repo: repo, books: books}
}

func (s *service) Create(ctx context.Context, sale *BookSale) error {
	if _, err := s.books.FindByID(ctx, sale.BookID); err != nil {
		return err
	}
	if sale.Price < 0 {
		return ErrInvalidPrice
	}
	currency, err := normalizeCurrency(sale.Currency)
	if err != nil {
		return err
	}
	sale.Currency = currency

	now := time.Now()
	sale.CreatedAt, sale.UpdatedAt = now, now
	return s.repo.Create(ctx, sale)
}

func (s *service) Get(ctx context.Context, id uint) (*BookSale, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id uint, params UpdateParams) (*BookSale, error) {
	sale, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Price != nil && *params.Price < 0 {
		return nil, ErrInvalidPrice
	}
	if params.Currency != nil {
		currency, err := normalizeCurrency(*params.Currency)
		if err != nil {
			return nil, err
		}
		params.Currency = &currency
	}

	sale.Apply(params)
	if err := s.repo.Update(ctx, sale); err != nil {
		return nil, err
	}
	return sale, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*BookSale, int64, error) {
	if params.MinPrice != nil && params.MaxPrice != nil && *params.MinPrice > *params.MaxPrice {
		return nil, 0, ErrInvalidPriceSpan
	}
	return s.repo.List(ctx, params)
}

// normalizeCurrency 币种转为大写并校验格式
var currencyValidate = validator.New()

func normalizeCurrency(c string) (string, error) {
	c = strings.ToUpper(strings.TrimSpace(c))
	if currencyValidate.Var(c, "iso4217") != nil {
		return "", ErrInvalidCurrency
	}
	return c, nil
}

// IsValidCurrency ISO 4217货币代码（忽略大小写和首尾空格）
func IsValidCurrency(c string) bool {
	_, err := normalizeCurrency(c)
	return err == nil
}
