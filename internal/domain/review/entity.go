package review

import (
	"strings"
	"time"
)

// Review 书评
type Review struct {
	ID              uint
	UserID          uint
	BookID          uint
	Title           string
	Content         string
	Rating          int // 1-5
	ContainsSpoiler bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	Title           *string
	Content         *string
	Rating          *int
	ContainsSpoiler *bool
}

// Apply 应用更新
func (r *Review) Apply(u UpdateParams) {
	if u.Title != nil {
		r.Title = *u.Title
	}
	if u.Content != nil {
		r.Content = *u.Content
	}
	if u.Rating != nil {
		r.Rating = *u.Rating
	}
	if u.ContainsSpoiler != nil {
		r.ContainsSpoiler = *u.ContainsSpoiler
	}
	r.UpdatedAt = time.Now()
}

// Validate 评分1-5，正文不能为空
func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return ErrInvalidRating
	}
	if strings.TrimSpace(r.Content) == "" {
		return ErrEmptyContent
	}
	return nil
}
