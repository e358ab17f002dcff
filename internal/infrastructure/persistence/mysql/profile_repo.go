package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/profile"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户资料仓储
func NewProfileRepository(db *gorm.DB) profile.Repository {
	return &profileRepository{db: db}
}

// Create 违反user_id唯一索引时返回ErrProfileExists
func (r *profileRepository) Create(ctx context.Context, p *profile.Profile) error {
	model := toProfileModel(p)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return profile.ErrProfileExists
		}
		return apperrors.Wrap(err, "创建用户资料失败")
	}
	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *profileRepository) FindByID(ctx context.Context, id uint) (*profile.Profile, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*profile.Profile, error) {
	return r.findOne(ctx, "user_id = ?", userID)
}

func (r *profileRepository) findOne(ctx context.Context, cond string, arg interface{}) (*profile.Profile, error) {
	var model ProfileModel
	if err := getDB(ctx, r.db).Where(cond, arg).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, profile.ErrProfileNotFound
		}
		return nil, apperrors.Wrap(err, "查询用户资料失败")
	}
	return toProfileEntity(&model), nil
}

func (r *profileRepository) Update(ctx context.Context, p *profile.Profile) error {
	model := toProfileModel(p)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新用户资料失败")
	}
	p.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *profileRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&ProfileModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除用户资料失败")
	}
	if result.RowsAffected == 0 {
		return profile.ErrProfileNotFound
	}
	return nil
}

// DeleteByUserID 删除用户的资料，不存在时不报错
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	if err := getDB(ctx, r.db).Where("user_id = ?", userID).Delete(&ProfileModel{}).Error; err != nil {
		return apperrors.Wrap(err, "删除用户资料失败")
	}
	return nil
}

func (r *profileRepository) List(ctx context.Context, params profile.ListParams) ([]*profile.Profile, int64, error) {
	query := getDB(ctx, r.db).Model(&ProfileModel{})
	if params.Location != "" {
		query = query.Where("location LIKE ?"+likeEscape, likePattern(params.Location))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户资料总数失败")
	}

	var models []ProfileModel
	if err := paginate(query.Order("id ASC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询用户资料列表失败")
	}

	profiles := make([]*profile.Profile, len(models))
	for i := range models {
		profiles[i] = toProfileEntity(&models[i])
	}
	return profiles, total, nil
}

func toProfileModel(p *profile.Profile) *ProfileModel {
	return &ProfileModel{
		ID:          p.ID,
		UserID:      p.UserID,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Location:    p.Location,
		Website:     p.Website,
		BirthDate:   p.BirthDate,
		Gender:      string(p.Gender),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProfileEntity(model *ProfileModel) *profile.Profile {
	return &profile.Profile{
		ID:          model.ID,
		UserID:      model.UserID,
		DisplayName: model.DisplayName,
		Bio:         model.Bio,
		AvatarURL:   model.AvatarURL,
		Location:    model.Location,
		Website:     model.Website,
		BirthDate:   model.BirthDate,
		Gender:      profile.Gender(model.Gender),
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}
