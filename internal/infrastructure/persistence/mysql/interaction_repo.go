package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/interaction"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

type interactionRepository struct {
	db *gorm.DB
}

// NewInteractionRepository 创建阅读记录仓储
func NewInteractionRepository(db *gorm.DB) interaction.Repository {
	return &interactionRepository{db: db}
}

// Create 违反(user_id, book_id)唯一索引时返回ErrInteractionExists
func (r *interactionRepository) Create(ctx context.Context, i *interaction.Interaction) error {
	model := toInteractionModel(i)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return interaction.ErrInteractionExists
		}
		return apperrors.Wrap(err, "创建阅读记录失败")
	}
	i.ID = model.ID
	i.CreatedAt = model.CreatedAt
	i.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *interactionRepository) FindByID(ctx context.Context, id uint) (*interaction.Interaction, error) {
	return r.findOne(getDB(ctx, r.db).Where("id = ?", id))
}

func (r *interactionRepository) FindByUserAndBook(ctx context.Context, userID, bookID uint) (*interaction.Interaction, error) {
	return r.findOne(getDB(ctx, r.db).Where("user_id = ? AND book_id = ?", userID, bookID))
}

func (r *interactionRepository) findOne(query *gorm.DB) (*interaction.Interaction, error) {
	var model InteractionModel
	if err := query.First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, interaction.ErrInteractionNotFound
		}
		return nil, apperrors.Wrap(err, "查询阅读记录失败")
	}
	return toInteractionEntity(&model), nil
}

func (r *interactionRepository) Update(ctx context.Context, i *interaction.Interaction) error {
	model := toInteractionModel(i)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		return apperrors.Wrap(err, "更新阅读记录失败")
	}
	i.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *interactionRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&InteractionModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除阅读记录失败")
	}
	if result.RowsAffected == 0 {
		return interaction.ErrInteractionNotFound
	}
	return nil
}

func (r *interactionRepository) List(ctx context.Context, params interaction.ListParams) ([]*interaction.Interaction, int64, error) {
	query := getDB(ctx, r.db).Model(&InteractionModel{})
	if params.UserID > 0 {
		query = query.Where("user_id = ?", params.UserID)
	}
	if params.BookID > 0 {
		query = query.Where("book_id = ?", params.BookID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询阅读记录总数失败")
	}

	var models []InteractionModel
	if err := paginate(query.Order("updated_at DESC").Order("id DESC"), params.Pagination).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询阅读记录列表失败")
	}

	list := make([]*interaction.Interaction, len(models))
	for i := range models {
		list[i] = toInteractionEntity(&models[i])
	}
	return list, total, nil
}

func toInteractionModel(i *interaction.Interaction) *InteractionModel {
	return &InteractionModel{
		ID:         i.ID,
		UserID:     i.UserID,
		BookID:     i.BookID,
		Status:     string(i.Status),
		Rating:     i.Rating,
		Note:       i.Note,
		StartedAt:  i.StartedAt,
		FinishedAt: i.FinishedAt,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}

func toInteractionEntity(model *InteractionModel) *interaction.Interaction {
	return &interaction.Interaction{
		ID:         model.ID,
		UserID:     model.UserID,
		BookID:     model.BookID,
		Status:     interaction.Status(model.Status),
		Rating:     model.Rating,
		Note:       model.Note,
		StartedAt:  model.StartedAt,
		FinishedAt: model.FinishedAt,
		CreatedAt:  model.CreatedAt,
		UpdatedAt:  model.UpdatedAt,
	}
}
