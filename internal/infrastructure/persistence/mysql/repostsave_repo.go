package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

const repostSaveTargetCheck = "chk_repost_saves_target"

var repostSaveRefColumns = refColumn{
	shared.TargetReview:          "review_id",
	shared.TargetQuote:           "quote_id",
	shared.TargetBookInteraction: "book_interaction_id",
}

type repostSaveRepository struct {
	db *gorm.DB
}

// NewRepostSaveRepository 创建转发/收藏仓储
func NewRepostSaveRepository(db *gorm.DB) repostsave.Repository {
	return &repostSaveRepository{db: db}
}

func (r *repostSaveRepository) Create(ctx context.Context, rs *repostsave.RepostSave) error {
	model, err := toRepostSaveModel(rs)
	if err != nil {
		return err
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return repostsave.ErrAlreadyExists
		}
		if isCheckViolation(err, repostSaveTargetCheck) {
			return shared.ErrInvalidTarget
		}
		return apperrors.Wrap(err, "创建转发/收藏失败")
	}
	rs.ID = model.ID
	rs.CreatedAt = model.CreatedAt
	return nil
}

func (r *repostSaveRepository) FindByID(ctx context.Context, id uint) (*repostsave.RepostSave, error) {
	return r.findOne(getDB(ctx, r.db).Where("id = ?", id))
}

func (r *repostSaveRepository) Find(ctx context.Context, userID uint, target shared.Target, action repostsave.ActionType) (*repostsave.RepostSave, error) {
	return r.findOne(getDB(ctx, r.db).
		Where("user_id = ? AND target_key = ? AND action_type = ?", userID, target.Key(), string(action)))
}

func (r *repostSaveRepository) findOne(query *gorm.DB) (*repostsave.RepostSave, error) {
	var model RepostSaveModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repostsave.ErrRepostSaveNotFound
		}
		return nil, apperrors.Wrap(err, "查询转发/收藏失败")
	}
	return toRepostSaveEntity(&model), nil
}

func (r *repostSaveRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&RepostSaveModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除转发/收藏失败")
	}
	if result.RowsAffected == 0 {
		return repostsave.ErrRepostSaveNotFound
	}
	return nil
}

func (r *repostSaveRepository) DeleteByTargets(ctx context.Context, targets ...shared.Target) error {
	db := getDB(ctx, r.db)
	for kind, ids := range groupTargets(targets) {
		col, ok := repostSaveRefColumns[kind]
		if !ok {
			return shared.ErrInvalidTarget
		}
		if err := db.Where(col+" IN ?", ids).Delete(&RepostSaveModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除关联转发/收藏失败")
		}
	}
	return nil
}

func (r *repostSaveRepository) DeleteByUser(ctx context.Context, userID uint) error {
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).Delete(&RepostSaveModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除用户转发/收藏失败")
	}
	return nil
}

func (r *repostSaveRepository) Count(ctx context.Context, target shared.Target, action repostsave.ActionType) (int64, error) {
	query := getDB(ctx, r.db).Model(&RepostSaveModel{}).Where("target_key = ?", target.Key())
	if action != "" {
		query = query.Where("action_type = ?", string(action))
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计转发/收藏数失败")
	}
	return count, nil
}

func (r *repostSaveRepository) List(ctx context.Context, params repostsave.ListParams) ([]*repostsave.RepostSave, int64, error) {
	query := getDB(ctx, r.db).Model(&RepostSaveModel{})
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.ActionType != "" {
		query = query.Where("action_type = ?", string(params.ActionType))
	}
	if params.Target != nil {
		query = query.Where("target_key = ?", params.Target.Key())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询转发/收藏总数失败")
	}

	var models []RepostSaveModel
	if err := paginate(query.Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询转发/收藏列表失败")
	}

	list := make([]*repostsave.RepostSave, len(models))
	for i := range models {
		list[i] = toRepostSaveEntity(&models[i])
	}
	return list, total, nil
}

func toRepostSaveModel(rs *repostsave.RepostSave) (*RepostSaveModel, error) {
	target, err := rs.Target()
	if err != nil {
		return nil, err
	}
	return &RepostSaveModel{
		ID:                rs.ID,
		UserID:            rs.UserID,
		ActionType:        string(rs.ActionType),
		ReviewID:          uintPtr(rs.ReviewID),
		QuoteID:           uintPtr(rs.QuoteID),
		BookInteractionID: uintPtr(rs.BookInteractionID),
		TargetKey:         target.Key(),
		CreatedAt:         rs.CreatedAt,
	}, nil
}

func toRepostSaveEntity(model *RepostSaveModel) *repostsave.RepostSave {
	return &repostsave.RepostSave{
		ID:                model.ID,
		UserID:            model.UserID,
		ActionType:        repostsave.ActionType(model.ActionType),
		ReviewID:          uintPtr(model.ReviewID),
		QuoteID:           uintPtr(model.QuoteID),
		BookInteractionID: uintPtr(model.BookInteractionID),
		CreatedAt:         model.CreatedAt,
	}
}
