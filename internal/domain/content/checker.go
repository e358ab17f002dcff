// Package content 校验多态目标（用户、图书、消息、阅读记录、书评、书摘）是否存在
package content

import (
	"context"

	"github.com/xiebiao/bookclub/internal/domain/book"
	"github.com/xiebiao/bookclub/internal/domain/interaction"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/quote"
	"github.com/xiebiao/bookclub/internal/domain/review"
	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/internal/domain/user"
)

// Checker 目标存在性校验
type Checker struct {
	users        user.Repository
	books        book.Repository
	messages     message.Repository
	interactions interaction.Repository
	reviews      review.Repository
	quotes       quote.Repository
}

// NewChecker 创建目标校验器
func NewChecker(
	users user.Repository,
	books book.Repository,
	messages message.Repository,
	interactions interaction.Repository,
	reviews review.Repository,
	quotes quote.Repository,
) *Checker {
	return &Checker{
		users:        users,
		books:        books,
		messages:     messages,
		interactions: interactions,
		reviews:      reviews,
		quotes:       quotes,
	}
}

// Ensure 目标不存在时返回对应领域的NotFound错误
func (c *Checker) Ensure(ctx context.Context, t shared.Target) error {
	var err error
	switch t.Kind {
	case shared.TargetUser:
		_, err = c.users.FindByID(ctx, t.ID)
	case shared.TargetBook:
		_, err = c.books.FindByID(ctx, t.ID)
	case shared.TargetMessage:
		_, err = c.messages.FindByID(ctx, t.ID)
	case shared.TargetBookInteraction:
		_, err = c.interactions.FindByID(ctx, t.ID)
	case shared.TargetReview:
		_, err = c.reviews.FindByID(ctx, t.ID)
	case shared.TargetQuote:
		_, err = c.quotes.FindByID(ctx, t.ID)
	default:
		err = shared.ErrInvalidTarget
	}
	return err
}
