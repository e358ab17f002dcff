package repostsave

import (
	"time"

	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/pkg/enumjson"
)

// ActionType 转发或收藏
type ActionType string

const (
	ActionRepost ActionType = "REPOST"
	ActionSave   ActionType = "SAVE"
)

var actionNames = []string{string(ActionRepost), string(ActionSave)}

func (a ActionType) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(a))
}

func (a *ActionType) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, actionNames...)
	if err != nil {
		return err
	}
	*a = ActionType(v)
	return nil
}

// ParseActionType 解析query参数中的动作类型
func ParseActionType(raw string) (ActionType, error) {
	v, err := enumjson.Parse(raw, actionNames...)
	if err != nil {
		return "", ErrInvalidAction.WithDetails(err.Error())
	}
	return ActionType(v), nil
}

// Valid 是否为已知动作
func (a ActionType) Valid() bool {
	return a == ActionRepost || a == ActionSave
}

// AllowedTargets 可转发、收藏的对象类型
var AllowedTargets = []shared.TargetKind{
	shared.TargetReview, shared.TargetQuote, shared.TargetBookInteraction,
}

// RepostSave 转发/收藏记录
// 三个外键恰好一个非空，(user_id, target_key, action_type)唯一
type RepostSave struct {
	ID                uint
	UserID            uint
	ActionType        ActionType
	ReviewID          *uint
	QuoteID           *uint
	BookInteractionID *uint
	CreatedAt         time.Time
}

// New 创建转发/收藏记录
func New(userID uint, action ActionType, target shared.Target) (*RepostSave, error) {
	if !action.Valid() {
		return nil, ErrInvalidAction
	}
	if err := target.Check(AllowedTargets...); err != nil {
		return nil, err
	}

	rs := &RepostSave{UserID: userID, ActionType: action, CreatedAt: time.Now()}
	id := target.ID
	switch target.Kind {
	case shared.TargetReview:
		rs.ReviewID = &id
	case shared.TargetQuote:
		rs.QuoteID = &id
	case shared.TargetBookInteraction:
		rs.BookInteractionID = &id
	}
	return rs, nil
}

// Target 返回被转发/收藏的对象
func (rs *RepostSave) Target() (shared.Target, error) {
	return shared.TargetFromRefs(map[shared.TargetKind]*uint{
		shared.TargetReview:          rs.ReviewID,
		shared.TargetQuote:           rs.QuoteID,
		shared.TargetBookInteraction: rs.BookInteractionID,
	})
}
