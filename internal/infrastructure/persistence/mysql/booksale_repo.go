package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/booksale"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

type bookSaleRepository struct {
	db *gorm.DB
}

// NewBookSaleRepository 创建图书售卖信息仓储
func NewBookSaleRepository(db *gorm.DB) booksale.Repository {
	return &bookSaleRepository{db: db}
}

func (r *bookSaleRepository) Create(ctx context.Context, s *booksale.BookSale) error {
	model := toBookSaleModel(s)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建售卖信息失败")
	}
	s.ID = model.ID
	s.CreatedAt = model.CreatedAt
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookSaleRepository) FindByID(ctx context.Context, id uint) (*booksale.BookSale, error) {
	var model BookSaleModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, booksale.ErrSaleNotFound
		}
		return nil, apperrors.Wrap(err, "查询售卖信息失败")
	}
	return toBookSaleEntity(&model), nil
}

func (r *bookSaleRepository) Update(ctx context.Context, s *booksale.BookSale) error {
	model := toBookSaleModel(s)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新售卖信息失败")
	}
	s.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookSaleRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookSaleModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除售卖信息失败")
	}
	if result.RowsAffected == 0 {
		return booksale.ErrSaleNotFound
	}
	return nil
}

func (r *bookSaleRepository) List(ctx context.Context, params booksale.ListParams) ([]*booksale.BookSale, int64, error) {
	query := getDB(ctx, r.db).Model(&BookSaleModel{})
	if params.BookID > 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.StoreName != "" {
		query = query.Where("store_name LIKE ?"+likeEscape, likePattern(params.StoreName))
	}
	if params.MinPrice != nil {
		query = query.Where("price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("price <= ?", *params.MaxPrice)
	}
	if params.InStock != nil {
		query = query.Where("in_stock = ?", *params.InStock)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询售卖信息总数失败")
	}

	switch params.SortBy {
	case booksale.SortPriceAsc:
		query = query.Order("price ASC")
	case booksale.SortPriceDesc:
		query = query.Order("price DESC")
	default:
		query = query.Order("updated_at DESC")
	}
	query = query.Order("id ASC")

	var models []BookSaleModel
	if err := paginate(query, params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询售卖信息列表失败")
	}

	sales := make([]*booksale.BookSale, len(models))
	for i := range models {
		sales[i] = toBookSaleEntity(&models[i])
	}
	return sales, total, nil
}

func toBookSaleModel(s *booksale.BookSale) *BookSaleModel {
	return &BookSaleModel{
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

func toBookSaleEntity(model *BookSaleModel) *booksale.BookSale {
	return &booksale.BookSale{
		ID:        model.ID,
		BookID:    model.BookID,
		StoreName: model.StoreName,
		Price:     model.Price,
		Currency:  model.Currency,
		URL:       model.URL,
		InStock:   model.InStock,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
