package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/like"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

const likeTargetCheck = "chk_likes_target"

var likeRefColumns = refColumn{
	shared.TargetMessage:         "message_id",
	shared.TargetBookInteraction: "book_interaction_id",
	shared.TargetReview:          "review_id",
	shared.TargetQuote:           "quote_id",
}

type likeRepository struct {
	db *gorm.DB
}

// NewLikeRepository 创建点赞仓储
func NewLikeRepository(db *gorm.DB) like.Repository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, l *like.Like) error {
	model, err := toLikeModel(l)
	if err != nil {
		return err
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return like.ErrAlreadyLiked
		}
		if isCheckViolation(err, likeTargetCheck) {
			return shared.ErrInvalidTarget
		}
		return apperrors.Wrap(err, "创建点赞失败")
	}
	l.ID = model.ID
	l.CreatedAt = model.CreatedAt
	return nil
}

func (r *likeRepository) FindByID(ctx context.Context, id uint) (*like.Like, error) {
	return r.findOne(getDB(ctx, r.db).Where("id = ?", id))
}

func (r *likeRepository) FindByUserAndTarget(ctx context.Context, userID uint, target shared.Target) (*like.Like, error) {
	return r.findOne(getDB(ctx, r.db).Where("user_id = ? AND target_key = ?", userID, target.Key()))
}

func (r *likeRepository) findOne(query *gorm.DB) (*like.Like, error) {
	var model LikeModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, like.ErrLikeNotFound
		}
		return nil, apperrors.Wrap(err, "查询点赞失败")
	}
	return toLikeEntity(&model), nil
}

func (r *likeRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&LikeModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除点赞失败")
	}
	if result.RowsAffected == 0 {
		return like.ErrLikeNotFound
	}
	return nil
}

func (r *likeRepository) DeleteByTargets(ctx context.Context, targets ...shared.Target) error {
	db := getDB(ctx, r.db)
	for kind, ids := range groupTargets(targets) {
		col, ok := likeRefColumns[kind]
		if !ok {
			return shared.ErrInvalidTarget
		}
		if err := db.Where(col+" IN ?", ids).Delete(&LikeModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除关联点赞失败")
		}
	}
	return nil
}

func (r *likeRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).Delete(&LikeModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除用户点赞失败")
	}
	return nil
}

func (r *likeRepository) Count(ctx context.Context, target shared.Target) (int64, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&LikeModel{}).Where("target_key = ?", target.Key()).Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计点赞数失败")
	}
	return count, nil
}

func (r *likeRepository) List(ctx context.Context, params like.ListParams) ([]*like.Like, int64, error) {
	query := getDB(ctx, r.db).Model(&LikeModel{})
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.Target != nil {
		query = query.Where("target_key = ?", params.Target.Key())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询点赞总数失败")
	}

	var models []LikeModel
	if err := paginate(query.Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询点赞列表失败")
	}

	likes := make([]*like.Like, len(models))
	for i := range models {
		likes[i] = toLikeEntity(&models[i])
	}
	return likes, total, nil
}

func toLikeModel(l *like.Like) (*LikeModel, error) {
	target, err := l.Target()
	if err != nil {
		return nil, err
	}
	return &LikeModel{
		ID:                l.ID,
		UserID:            l.UserID,
		MessageID:         uintPtr(l.MessageID),
		BookInteractionID: uintPtr(l.BookInteractionID),
		ReviewID:          uintPtr(l.ReviewID),
		QuoteID:           uintPtr(l.QuoteID),
		TargetKey:         target.Key(),
		CreatedAt:         l.CreatedAt,
	}, nil
}

func toLikeEntity(model *LikeModel) *like.Like {
	return &like.Like{
		ID:                model.ID,
		UserID:            model.UserID,
		MessageID:         uintPtr(model.MessageID),
		BookInteractionID: uintPtr(model.BookInteractionID),
		ReviewID:          uintPtr(model.ReviewID),
		QuoteID:           uintPtr(model.QuoteID),
		CreatedAt:         model.CreatedAt,
	}
}
