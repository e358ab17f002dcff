package dto

import (
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// SendMessageRequest 发送消息
// message_type决定哪个关联字段必填：
//
//	personal → receiver_id
//	book     → book_interaction_id
//	review   → review_id
//	quote    → quote_id
//
// 其余三个关联字段必须为空
type SendMessageRequest struct {
	SenderID          uint         `json:"sender_id" example:"1"`
	MessageType       message.Type `json:"message_type" binding:"required" example:"personal"`
	ReceiverID        *uint        `json:"receiver_id" example:"2"`
	BookInteractionID *uint        `json:"book_interaction_id"`
	ReviewID          *uint        `json:"review_id"`
	QuoteID           *uint        `json:"quote_id"`
	Content           string       `json:"content" binding:"required,max=5000" example:"你好"`
}

// UpdateMessageRequest 修改消息内容
type UpdateMessageRequest struct {
	Content string `json:"content" binding:"required,max=5000"`
}

// ListMessagesQuery 消息列表
type ListMessagesQuery struct {
	PageQuery
	SenderID    uint   `form:"sender_id"`
	ReceiverID  uint   `form:"receiver_id"`
	MessageType string `form:"message_type" example:"review"`
	TargetType  string `form:"target_type" example:"review"`
	TargetID    uint   `form:"target_id"`
	UnreadOnly  bool   `form:"unread_only"`
}

// ConversationQuery 两个用户之间的私信
type ConversationQuery struct {
	PageQuery
	UserA uint `form:"user_a" binding:"required,min=1" example:"1"`
	UserB uint `form:"user_b" binding:"required,min=1" example:"2"`
}

// CreateFollowRequest 关注用户或图书，二选一
type CreateFollowRequest struct {
	FollowerID     uint  `json:"follower_id" example:"1"`
	FollowedUserID *uint `json:"followed_user_id" example:"2"`
	FollowedBookID *uint `json:"followed_book_id"`
}

func (r CreateFollowRequest) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetUser: r.FollowedUserID,
		shared.TargetBook: r.FollowedBookID,
	})
}

// ListFollowsQuery 关注列表
type ListFollowsQuery struct {
	PageQuery
	FollowerID     uint `form:"follower_id"`
	FollowedUserID uint `form:"followed_user_id"`
	FollowedBookID uint `form:"followed_book_id"`
}

// FollowExistsQuery 是否已关注
type FollowExistsQuery struct {
	FollowerID uint `form:"follower_id" binding:"required,min=1"`
	TargetQuery
}

// CreateLikeRequest 点赞，四个目标字段恰好一个非空
type CreateLikeRequest struct {
	UserID            uint  `json:"user_id" example:"1"`
	MessageID         *uint `json:"message_id"`
	BookInteractionID *uint `json:"book_interaction_id"`
	ReviewID          *uint `json:"review_id" example:"3"`
	QuoteID           *uint `json:"quote_id"`
}

func (r CreateLikeRequest) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetMessage:         r.MessageID,
		shared.TargetBookInteraction: r.BookInteractionID,
		shared.TargetReview:          r.ReviewID,
		shared.TargetQuote:           r.QuoteID,
	})
}

// ListLikesQuery 点赞列表
type ListLikesQuery struct {
	PageQuery
	UserID     uint   `form:"user_id"`
	TargetType string `form:"target_type"`
	TargetID   uint   `form:"target_id"`
}

// UserTargetQuery 按(用户, 目标)查询，用于是否已点赞、取消点赞
type UserTargetQuery struct {
	UserID uint `form:"user_id"`
	TargetQuery
}

// CreateRepostSaveRequest 转发或收藏，三个目标字段恰好一个非空
type CreateRepostSaveRequest struct {
	UserID            uint                  `json:"user_id" example:"1"`
	ActionType        repostsave.ActionType `json:"action_type" binding:"required" example:"save"`
	ReviewID          *uint                 `json:"review_id" example:"3"`
	QuoteID           *uint                 `json:"quote_id"`
	BookInteractionID *uint                 `json:"book_interaction_id"`
}

func (r CreateRepostSaveRequest) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetReview:          r.ReviewID,
		shared.TargetQuote:           r.QuoteID,
		shared.TargetBookInteraction: r.BookInteractionID,
	})
}

// ListRepostSavesQuery 转发/收藏列表
type ListRepostSavesQuery struct {
	PageQuery
	UserID     uint   `form:"user_id"`
	ActionType string `form:"action_type" example:"save"`
	TargetType string `form:"target_type"`
	TargetID   uint   `form:"target_id"`
}

// RepostSaveExistsQuery 是否已转发/收藏
type RepostSaveExistsQuery struct {
	UserID     uint   `form:"user_id" binding:"required,min=1"`
	ActionType string `form:"action_type" binding:"required" example:"save"`
	TargetQuery
}
