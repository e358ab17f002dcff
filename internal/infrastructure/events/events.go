// Package events 领域事件发布
//
// 事件以Type作为RabbitMQ的routing key发布到topic交换机，cmd/notifier按前缀订阅。
// 发布失败不影响主流程（注册流程除外，见application/user）。
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// 事件类型
const (
	UserRegistered    = "user.registered"
	MessageSent       = "message.sent"
	FollowCreated     = "follow.created"
	LikeCreated       = "like.created"
	RepostSaveCreated = "repostsave.created"
	ReviewCreated     = "review.created"
	QuoteCreated      = "quote.created"
)

// Event 领域事件
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// New 创建事件
func New(eventType string, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher 事件发布器
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}
