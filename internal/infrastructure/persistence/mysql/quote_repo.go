package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/quote"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository 创建书摘仓储
func NewQuoteRepository(db *gorm.DB) quote.Repository {
	return &quoteRepository{db: db}
}

func (r *quoteRepository) Create(ctx context.Context, q *quote.Quote) error {
	model := toQuoteModel(q)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书摘失败")
	}
	q.ID = model.ID
	q.CreatedAt = model.CreatedAt
	q.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *quoteRepository) FindByID(ctx context.Context, id uint) (*quote.Quote, error) {
	var model QuoteModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, quote.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "查询书摘失败")
	}
	return toQuoteEntity(&model), nil
}

func (r *quoteRepository) Update(ctx context.Context, q *quote.Quote) error {
	model := toQuoteModel(q)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新书摘失败")
	}
	q.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *quoteRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&QuoteModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书摘失败")
	}
	if result.RowsAffected == 0 {
		return quote.ErrQuoteNotFound
	}
	return nil
}

func (r *quoteRepository) List(ctx context.Context, params quote.ListParams) ([]*quote.Quote, int64, error) {
	query := getDB(ctx, r.db).Model(&QuoteModel{})
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.BookID > 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.Keyword != "" {
		query = query.Where("content LIKE ?"+likeEscape, likePattern(params.Keyword))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书摘总数失败")
	}

	var models []QuoteModel
	if err := paginate(query.Order("created_at DESC").Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书摘列表失败")
	}

	quotes := make([]*quote.Quote, len(models))
	for i := range models {
		quotes[i] = toQuoteEntity(&models[i])
	}
	return quotes, total, nil
}

func toQuoteModel(q *quote.Quote) *QuoteModel {
	return &QuoteModel{
		ID:         q.ID,
		UserID:     q.UserID,
		BookID:     q.BookID,
		Content:    q.Content,
		PageNumber: q.PageNumber,
		CreatedAt:  q.CreatedAt,
		UpdatedAt:  q.UpdatedAt,
	}
}

func toQuoteEntity(model *QuoteModel) *quote.Quote {
	return &quote.Quote{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		Content:    model.Content,
		PageNumber: model.PageNumber,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
