package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/book"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

// bookRepository 图书仓储实现
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书，ISBN重复时返回ErrISBNDuplicate
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

func (r *bookRepository) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	var model BookModel
	if err := getDB(ctx, r.db).Where("isbn = ?", isbn).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 使用Save更新所有字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// Delete 软删除
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&BookModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除图书失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	query := getDB(ctx, r.db).Model(&BookModel{})

	// 关键词搜索（标题、作者、出版社）
	if params.Keyword != "" {
		kw := likePattern(params.Keyword)
		query = query.Where(
			"title LIKE ?"+likeEscape+" OR author LIKE ?"+likeEscape+" OR publisher LIKE ?"+likeEscape,
			kw, kw, kw,
		)
	}
	if params.Author != "" {
		query = query.Where("author = ?", params.Author)
	}
	if params.Genre != "" {
		query = query.Where("genre = ?", string(params.Genre))
	}
	if params.Language != "" {
		query = query.Where("language = ?", params.Language)
	}
	if params.YearFrom > 0 {
		query = query.Where("published_year >= ?", params.YearFrom)
	}
	if params.YearTo > 0 {
		query = query.Where("published_year <= ?", params.YearTo)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.SortBy {
	case book.SortTitleAsc:
		query = query.Order("title ASC")
	case book.SortYearAsc:
		query = query.Order("published_year ASC")
	case book.SortYearDesc:
		query = query.Order("published_year DESC")
	default:
		query = query.Order("created_at DESC")
	}
	// 同值时按ID稳定排序
	query = query.Order("id DESC")

	var models []BookModel
	if err := paginate(query, params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		ISBN:          b.ISBN,
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedYear: b.PublishedYear,
		PageCount:     b.PageCount,
		Language:      b.Language,
		Genre:         string(b.Genre),
		Description:   b.Description,
		CoverURL:      b.CoverURL,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		ISBN:          model.ISBN,
		Title:         model.Title,
		Author:        model.Author,
		Publisher:     model.Publisher,
		PublishedYear: model.PublishedYear,
		PageCount:     model.PageCount,
		Language:      model.Language,
		Genre:         book.Genre(model.Genre),
		Description:   model.Description,
		CoverURL:      model.CoverURL,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
