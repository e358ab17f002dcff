package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/review"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书评失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询书评失败")
	}
	return toReviewEntity(&model), nil
}

func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	model := toReviewModel(rv)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新书评失败")
	}
	rv.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除书评失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, params review.ListParams) ([]*review.Review, int64, error) {
	query := getDB(ctx, r.db).Model(&ReviewModel{})
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.BookID > 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.MinRating > 0 {
		query = query.Where("rating >= ?", params.MinRating)
	}
	if params.ContainsSpoiler != nil {
		query = query.Where("contains_spoiler = ?", *params.ContainsSpoiler)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评总数失败")
	}

	var models []ReviewModel
	if err := paginate(query.Order("created_at DESC").Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询书评列表失败")
	}

	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews, total, nil
}

func toReviewModel(rv *review.Review) *ReviewModel {
	return &ReviewModel{
		ID:              rv.ID,
		UserID:          rv.UserID,
		BookID:          rv.BookID,
		Title:           rv.Title,
		Content:         rv.Content,
		Rating:          rv.Rating,
		ContainsSpoiler: rv.ContainsSpoiler,
		CreatedAt:       rv.CreatedAt,
		UpdatedAt:       rv.UpdatedAt,
	}
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:              model.ID,
		UserID:          model.UserID,
		BookID:          model.BookID,
		Title:           model.Title,
		Content:         model.Content,
		Rating:          model.Rating,
		ContainsSpoiler: model.ContainsSpoiler,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
