package quote

import (
	"strings"
	"time"
)

// Quote 书摘
type Quote struct {
	ID         uint
	UserID     uint
	BookID     uint
	Content    string
	PageNumber int // 0表示未标注页码
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UpdateParams 更新参数（nil表示不修改）
type UpdateParams struct {
	Content    *string
	PageNumber *int
}

// Apply 应用更新
func (q *Quote) Apply(u UpdateParams) {
	if u.Content != nil {
		q.Content = *u.Content
	}
	if u.PageNumber != nil {
		q.PageNumber = *u.PageNumber
	}
	q.UpdatedAt = time.Now()
}

// Validate 内容不能为空，页码不能为负
func (q *Quote) Validate() error {
	if strings.TrimSpace(q.Content) == "" {
		return ErrEmptyContent
	}
	if q.PageNumber < 0 {
		return ErrInvalidPage
	}
	return nil
}
