package message

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/xiebiao/bookclub/internal/domain/shared"
	"github.com/xiebiao/bookclub/pkg/enumjson"
)

// Type 消息类型
// 每种类型只能关联一种对象：
//
//	PERSONAL → ReceiverID
//	BOOK     → BookInteractionID
//	REVIEW   → ReviewID
//	QUOTE    → QuoteID
type Type string

const (
	TypePersonal Type = "PERSONAL"
	TypeBook     Type = "BOOK"
	TypeReview   Type = "REVIEW"
	TypeQuote    Type = "QUOTE"
)

var typeNames = []string{
	string(TypePersonal), string(TypeBook), string(TypeReview), string(TypeQuote),
}

// ParseType 解析接口传入的消息类型
func ParseType(raw string) (Type, error) {
	v, err := enumjson.Parse(raw, typeNames...)
	return Type(v), err
}

func (t Type) MarshalJSON() ([]byte, error) {
	return enumjson.Marshal(string(t))
}

func (t *Type) UnmarshalJSON(data []byte) error {
	v, err := enumjson.Unmarshal(data, typeNames...)
	if err != nil {
		return err
	}
	*t = Type(v)
	return nil
}

// TargetKind 消息类型对应的关联对象类型
func (t Type) TargetKind() shared.TargetKind {
	switch t {
	case TypePersonal:
		return shared.TargetUser
	case TypeBook:
		return shared.TargetBookInteraction
	case TypeReview:
		return shared.TargetReview
	case TypeQuote:
		return shared.TargetQuote
	default:
		return ""
	}
}

// Message 消息
type Message struct {
	ID                uint
	SenderID          uint
	Type              Type
	ReceiverID        *uint
	BookInteractionID *uint
	ReviewID          *uint
	QuoteID           *uint
	Content           string
	IsRead            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// refs 按关联对象类型列出四个可空外键
func (m *Message) refs() map[shared.TargetKind]*uint {
	return map[shared.TargetKind]*uint{
		shared.TargetUser:            m.ReceiverID,
		shared.TargetBookInteraction: m.BookInteractionID,
		shared.TargetReview:          m.ReviewID,
		shared.TargetQuote:           m.QuoteID,
	}
}

// Validate 校验消息类型与关联对象的对应关系
// 类型要求的外键必须非空，其余三个外键必须为空
func (m *Message) Validate() error {
	want := m.Type.TargetKind()
	if want == "" {
		return ErrInvalidType
	}
	if strings.TrimSpace(m.Content) == "" {
		return ErrEmptyContent
	}

	var details []string
	for kind, id := range m.refs() {
		field := refField[kind]
		switch {
		case kind == want && (id == nil || *id == 0):
			details = append(details, fmt.Sprintf("%s消息必须指定%s", enumjson.Lower(string(m.Type)), field))
		case kind != want && id != nil:
			details = append(details, fmt.Sprintf("%s消息不能指定%s", enumjson.Lower(string(m.Type)), field))
		}
	}
	if len(details) > 0 {
		sort.Strings(details)
		return ErrTargetMismatch.WithDetails(details...)
	}
	return nil
}

// Target 返回消息关联的对象（调用前应先Validate）
func (m *Message) Target() shared.Target {
	kind := m.Type.TargetKind()
	if id := m.refs()[kind]; id != nil {
		return shared.Target{Kind: kind, ID: *id}
	}
	return shared.Target{Kind: kind}
}

// Involves 判断用户是否为消息的发送者或接收者
func (m *Message) Involves(userID uint) bool {
	return m.SenderID == userID || (m.ReceiverID != nil && *m.ReceiverID == userID)
}

// MarkRead 标记为已读
func (m *Message) MarkRead() {
	m.IsRead = true
	m.UpdatedAt = time.Now()
}

// Edit 修改内容
func (m *Message) Edit(content string) error {
	if strings.TrimSpace(content) == "" {
		return ErrEmptyContent
	}
	m.Content = content
	m.UpdatedAt = time.Now()
	return nil
}

var refField = map[shared.TargetKind]string{
	shared.TargetUser:            "receiver_id",
	shared.TargetBookInteraction: "book_interaction_id",
	shared.TargetReview:          "review_id",
	shared.TargetQuote:           "quote_id",
}
