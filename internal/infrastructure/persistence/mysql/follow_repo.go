package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/follow"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

const followTargetCheck = "chk_follows_target"

var followRefColumns = refColumn{
	shared.TargetUser: "followed_user_id",
	shared.TargetBook: "followed_book_id",
}

type followRepository struct {
	db *gorm.DB
}

// NewFollowRepository 创建关注仓储
func NewFollowRepository(db *gorm.DB) follow.Repository {
	return &followRepository{db: db}
}

// Create 违反(follower_id, target_key)唯一索引时返回ErrAlreadyFollow
func (r *followRepository) Create(ctx context.Context, f *follow.Follow) error {
	model, err := toFollowModel(f)
	if err != nil {
		return err
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return follow.ErrAlreadyFollow
		}
		if isCheckViolation(err, followTargetCheck) {
			return shared.ErrInvalidTarget
		}
		return apperrors.Wrap(err, "创建关注关系失败")
	}
	f.ID = model.ID
	f.CreatedAt = model.CreatedAt
	return nil
}

func (r *followRepository) FindByID(ctx context.Context, id uint) (*follow.Follow, error) {
	return r.findOne(getDB(ctx, r.db).Where("id = ?", id))
}

func (r *followRepository) FindByFollowerAndTarget(ctx context.Context, followerID uint, target shared.Target) (*follow.Follow, error) {
	return r.findOne(getDB(ctx, r.db).Where("follower_id = ? AND target_key = ?", followerID, target.Key()))
}

func (r *followRepository) findOne(query *gorm.DB) (*follow.Follow, error) {
	var model FollowModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, follow.ErrFollowNotFound
		}
		return nil, apperrors.Wrap(err, "查询关注关系失败")
	}
	return toFollowEntity(&model), nil
}

func (r *followRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&FollowModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除关注关系失败")
	}
	if result.RowsAffected == 0 {
		return follow.ErrFollowNotFound
	}
	return nil
}

func (r *followRepository) DeleteByUser(ctx context.Context, userID uint) error {
	err := getDB(ctx, r.db).
		Where("follower_id = ? OR followed_user_id = ?", userID, userID).
		Delete(&FollowModel{}).Error
	if err != nil {
		return apperrors.Wrap(err, "删除用户关注关系失败")
	}
	return nil
}

func (r *followRepository) List(ctx context.Context, params follow.ListParams) ([]*follow.Follow, int64, error) {
	query := getDB(ctx, r.db).Model(&FollowModel{})
	if params.FollowerID > 0 {
		query = query.Where("follower_id = ?", params.FollowerID)
	}
	if params.FollowedUserID > 0 {
		query = query.Where("followed_user_id = ?", params.FollowedUserID)
	}
	if params.FollowedBookID > 0 {
		query = query.Where("followed_book_id = ?", params.FollowedBookID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询关注总数失败")
	}

	var models []FollowModel
	if err := paginate(query.Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询关注列表失败")
	}

	follows := make([]*follow.Follow, len(models))
	for i := range models {
		follows[i] = toFollowEntity(&models[i])
	}
	return follows, total, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, target shared.Target) (int64, error) {
	query, err := followRefColumns.where(getDB(ctx, r.db).Model(&FollowModel{}), target)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(err, "统计关注者失败")
	}
	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, followerID uint, kind shared.TargetKind) (int64, error) {
	col, ok := followRefColumns[kind]
	if !ok {
		return 0, shared.ErrInvalidTarget
	}
	var count int64
	err := getDB(ctx, r.db).Model(&FollowModel{}).
		Where("follower_id = ?", followerID).
		Where(col + " IS NOT NULL").
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计关注数失败")
	}
	return count, nil
}

func toFollowModel(f *follow.Follow) (*FollowModel, error) {
	target, err := f.Target()
	if err != nil {
		return nil, err
	}
	return &FollowModel{
		ID:             f.ID,
		FollowerID:     f.FollowerID,
		FollowedUserID: uintPtr(f.FollowedUserID),
		FollowedBookID: uintPtr(f.FollowedBookID),
		TargetKey:      target.Key(),
		CreatedAt:      f.CreatedAt,
	}, nil
}

func toFollowEntity(model *FollowModel) *follow.Follow {
	return &follow.Follow{
		ID:             model.ID,
		FollowerID:     model.FollowerID,
		FollowedUserID: uintPtr(model.FollowedUserID),
		FollowedBookID: uintPtr(model.FollowedBookID),
		CreatedAt:      model.CreatedAt,
	}
}
