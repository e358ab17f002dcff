package dto

import (
	"time"

	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/profile"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/review"
)

// CreateProfileRequest 创建用户资料，user_id为空时使用当前登录用户
type CreateProfileRequest struct {
	UserID      uint           `json:"user_id" example:"1"`
	DisplayName string         `json:"display_name" binding:"required,max=50" example:"Alice"`
	Bio         string         `json:"bio" binding:"max=500"`
	AvatarURL   string         `json:"avatar_url" binding:"omitempty,url,max=500"`
	Location    string         `json:"location" binding:"max=100" example:"Istanbul"`
	Website     string         `json:"website" binding:"omitempty,url,max=200"`
	BirthDate   *time.Time     `json:"birth_date"`
	Gender      profile.Gender `json:"gender" example:"female"`
}

// UpdateProfileRequest 更新用户资料
type UpdateProfileRequest struct {
	DisplayName *string         `json:"display_name" binding:"omitempty,min=1,max=50"`
	Bio         *string         `json:"bio" binding:"omitempty,max=500"`
	AvatarURL   *string         `json:"avatar_url" binding:"omitempty,url,max=500"`
	Location    *string         `json:"location" binding:"omitempty,max=100"`
	Website     *string         `json:"website" binding:"omitempty,url,max=200"`
	BirthDate   *time.Time      `json:"birth_date"`
	Gender      *profile.Gender `json:"gender"`
}

func (r UpdateProfileRequest) Params() profile.UpdateParams {
	return profile.UpdateParams{
		DisplayName: r.DisplayName,
		Bio:         r.Bio,
		AvatarURL:   r.AvatarURL,
		Location:    r.Location,
		Website:     r.Website,
		BirthDate:   r.BirthDate,
		Gender:      r.Gender,
	}
}

// ListProfilesQuery 用户资料列表
type ListProfilesQuery struct {
	PageQuery
	Location string `form:"location" binding:"omitempty,max=100"`
}

// CreateInteractionRequest 创建阅读记录
type CreateInteractionRequest struct {
	UserID     uint               `json:"user_id" example:"1"`
	BookID     uint               `json:"book_id" binding:"required,min=1" example:"1"`
	Status     interaction.Status `json:"status" binding:"required" example:"reading"`
	Rating     int                `json:"rating" binding:"omitempty,min=1,max=5" example:"4"`
	Note       string             `json:"note" binding:"max=2000"`
	StartedAt  *time.Time         `json:"started_at"`
	FinishedAt *time.Time         `json:"finished_at"`
}

// UpdateInteractionRequest 更新阅读记录
type UpdateInteractionRequest struct {
	Status     *interaction.Status `json:"status"`
	Rating     *int                `json:"rating" binding:"omitempty,min=0,max=5"`
	Note       *string             `json:"note" binding:"omitempty,max=2000"`
	StartedAt  *time.Time          `json:"started_at"`
	FinishedAt *time.Time          `json:"finished_at"`
}

func (r UpdateInteractionRequest) Params() interaction.UpdateParams {
	return interaction.UpdateParams{
		Status:     r.Status,
		Rating:     r.Rating,
		Note:       r.Note,
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}

// ListInteractionsQuery 阅读记录列表
type ListInteractionsQuery struct {
	PageQuery
	UserID uint   `form:"user_id"`
	BookID uint   `form:"book_id"`
	Status string `form:"status" example:"reading"`
}

// CreateReviewRequest 创建书评
type CreateReviewRequest struct {
	UserID          uint   `json:"user_id" example:"1"`
	BookID          uint   `json:"book_id" binding:"required,min=1" example:"1"`
	Title           string `json:"title" binding:"required,max=200" example:"硬科幻的巅峰"`
	Content         string `json:"content" binding:"required,max=10000"`
	Rating          int    `json:"rating" binding:"required,min=1,max=5" example:"5"`
	ContainsSpoiler bool   `json:"contains_spoiler"`
}

// UpdateReviewRequest 更新书评
type UpdateReviewRequest struct {
	Title           *string `json:"title" binding:"omitempty,min=1,max=200"`
	Content         *string `json:"content" binding:"omitempty,min=1,max=10000"`
	Rating          *int    `json:"rating" binding:"omitempty,min=1,max=5"`
	ContainsSpoiler *bool   `json:"contains_spoiler"`
}

func (r UpdateReviewRequest) Params() review.UpdateParams {
	return review.UpdateParams{
		Title:           r.Title,
		Content:         r.Content,
		Rating:          r.Rating,
		ContainsSpoiler: r.ContainsSpoiler,
	}
}

// ListReviewsQuery 书评列表
type ListReviewsQuery struct {
	PageQuery
	UserID          uint  `form:"user_id"`
	BookID          uint  `form:"book_id"`
	MinRating       int   `form:"min_rating" binding:"omitempty,min=1,max=5"`
	ContainsSpoiler *bool `form:"contains_spoiler"`
}

// CreateQuoteRequest 创建书摘
type CreateQuoteRequest struct {
	UserID     uint   `json:"user_id" example:"1"`
	BookID     uint   `json:"book_id" binding:"required,min=1" example:"1"`
	Content    string `json:"content" binding:"required,max=2000" example:"给岁月以文明，而不是给文明以岁月。"`
	PageNumber int    `json:"page_number" binding:"omitempty,min=1" example:"123"`
}

// UpdateQuoteRequest 更新书摘
type UpdateQuoteRequest struct {
	Content    *string `json:"content" binding:"omitempty,min=1,max=2000"`
	PageNumber *int    `json:"page_number" binding:"omitempty,min=0"`
}

func (r UpdateQuoteRequest) Params() quote.UpdateParams {
	return quote.UpdateParams{Content: r.Content, PageNumber: r.PageNumber}
}

// ListQuotesQuery 书摘列表
type ListQuotesQuery struct {
	PageQuery
	UserID  uint   `form:"user_id"`
	BookID  uint   `form:"book_id"`
	Keyword string `form:"keyword" binding:"omitempty,max=100"`
}
