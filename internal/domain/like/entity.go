package like

import (
	"time"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

// AllowedTargets 可点赞的对象类型
var AllowedTargets = []shared.TargetKind{
	shared.TargetMessage, shared.TargetBookInteraction, shared.TargetReview, shared.TargetQuote,
}

// Like 点赞
// 四个外键恰好一个非空，(user_id, target_key)唯一
type Like struct {
	ID                uint
	UserID            uint
	MessageID         *uint
	BookInteractionID *uint
	ReviewID          *uint
	QuoteID           *uint
	CreatedAt         time.Time
}

// New 创建点赞
func New(userID uint, target shared.Target) (*Like, error) {
	if err := target.Check(AllowedTargets...); err != nil {
		return nil, err
	}

	l := &Like{UserID: userID, CreatedAt: time.Now()}
	id := target.ID
	switch target.Kind {
	case shared.TargetMessage:
		l.MessageID = &id
	case shared.TargetBookInteraction:
		l.BookInteractionID = &id
	case shared.TargetReview:
		l.ReviewID = &id
	case shared.TargetQuote:
		l.QuoteID = &id
	}
	return l, nil
}

// Target 返回点赞对象
func (l *Like) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetMessage:         l.MessageID,
		shared.TargetBookInteraction: l.BookInteractionID,
		shared.TargetReview:          l.ReviewID,
		shared.TargetQuote:           l.QuoteID,
	})
}
