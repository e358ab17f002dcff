package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

const messageTargetCheck = "chk_messages_target"

var messageRefColumns = refColumn{
	shared.TargetUser:            "receiver_id",
	shared.TargetBookInteraction: "book_interaction_id",
	shared.TargetReview:          "review_id",
	shared.TargetQuote:           "quote_id",
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository 创建消息仓储
func NewMessageRepository(db *gorm.DB) message.Repository {
	return &messageRepository{db: db}
}

// Create 违反chk_messages_target时返回ErrTargetMismatch
func (r *messageRepository) Create(ctx context.Context, m *message.Message) error {
	model := toMessageModel(m)
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isCheckViolation(err, messageTargetCheck) {
			return message.ErrTargetMismatch
		}
		return apperrors.Wrap(err, "创建消息失败")
	}
	m.ID = model.ID
	m.CreatedAt = model.CreatedAt
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *messageRepository) FindByID(ctx context.Context, id uint) (*message.Message, error) {
	var model MessageModel
	if err := getDB(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, message.ErrMessageNotFound
		}
		return nil, apperrors.Wrap(err, "查询消息失败")
	}
	return toMessageEntity(&model), nil
}

func (r *messageRepository) Update(ctx context.Context, m *message.Message) error {
	model := toMessageModel(m)
	if err := getDB(ctx, r.db).Save(model).Error; err != nil {
		if isCheckViolation(err, messageTargetCheck) {
			return message.ErrTargetMismatch
		}
		return apperrors.Wrap(err, "更新消息失败")
	}
	m.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *messageRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&MessageModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除消息失败")
	}
	if result.RowsAffected == 0 {
		return message.ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) DeleteByTarget(ctx context.Context, target shared.Target) ([]uint, error) {
	db := getDB(ctx, r.db)
	query, err := messageRefColumns.where(db.Model(&MessageModel{}), target)
	if err != nil {
		return nil, err
	}

	var ids []uint
	if err := query.Pluck("id", &ids).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询关联消息失败")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := db.Where("id IN ?", ids).Delete(&MessageModel{}).Error; err != nil {
		return nil, apperrors.Wrap(err, "删除关联消息失败")
	}
	return ids, nil
}

func (r *messageRepository) DeleteByUser(ctx context.Context, userID uint) ([]uint, error) {
	db := getDB(ctx, r.db)
	var ids []uint
	err := db.Model(&MessageModel{}).
		Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询用户消息失败")
	}
	if len(ids) == 0 {
		return nil, nil
	}
	if err := db.Where("id IN ?", ids).Delete(&MessageModel{}).Error; err != nil {
		return nil, apperrors.Wrap(err, "删除用户消息失败")
	}
	return ids, nil
}

func (r *messageRepository) List(ctx context.Context, params message.ListParams) ([]*message.Message, int64, error) {
	query := getDB(ctx, r.db).Model(&MessageModel{})
	if params.SenderID > 0 {
		query = query.Where("sender_id = ?", params.SenderID)
	}
	if params.ReceiverID > 0 {
		query = query.Where("receiver_id = ?", params.ReceiverID)
	}
	if params.Type != "" {
		query = query.Where("message_type = ?", string(params.Type))
	}
	if params.Target != nil {
		var err error
		if query, err = messageRefColumns.where(query, *params.Target); err != nil {
			return nil, 0, err
		}
	}
	if params.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}
	return r.find(query.Order("created_at DESC").Order("id DESC"), params.Pagination)
}

func (r *messageRepository) Conversation(ctx context.Context, userA, userB uint, page shared.Pagination) ([]*message.Message, int64, error) {
	query := getDB(ctx, r.db).Model(&MessageModel{}).
		Where("message_type = ?", string(message.TypePersonal)).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", userA, userB, userB, userA)
	return r.find(query.Order("id ASC"), page)
}

// find 统计总数后按分页取数据，query须已带排序
func (r *messageRepository) find(query *gorm.DB, page shared.Pagination) ([]*message.Message, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询消息总数失败")
	}

	var models []MessageModel
	if err := paginate(query, page).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询消息列表失败")
	}

	messages := make([]*message.Message, len(models))
	for i := range models {
		messages[i] = toMessageEntity(&models[i])
	}
	return messages, total, nil
}

func toMessageModel(m *message.Message) *MessageModel {
	return &MessageModel{
		ID:                m.ID,
		SenderID:          m.SenderID,
		MessageType:       string(m.Type),
		ReceiverID:        uintPtr(m.ReceiverID),
		BookInteractionID: uintPtr(m.BookInteractionID),
		ReviewID:          uintPtr(m.ReviewID),
		QuoteID:           uintPtr(m.QuoteID),
		Content:           m.Content,
		IsRead:            m.IsRead,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

func toMessageEntity(model *MessageModel) *message.Message {
	return &message.Message{
		ID:                model.ID,
		SenderID:          model.SenderID,
		Type:              message.Type(model.MessageType),
		ReceiverID:        uintPtr(model.ReceiverID),
		BookInteractionID: uintPtr(model.BookInteractionID),
		ReviewID:          uintPtr(model.ReviewID),
		QuoteID:           uintPtr(model.QuoteID),
		Content:           model.Content,
		IsRead:            model.IsRead,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
