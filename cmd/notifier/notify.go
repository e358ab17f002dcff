package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	appfollow "github.com/xiebiao/bookclub/internal/application/follow"
	applike "github.com/xiebiao/bookclub/internal/application/like"
	appmessage "github.com/xiebiao/bookclub/internal/application/message"
	apprepostsave "github.com/xiebiao/bookclub/internal/application/repostsave"
	appreview "github.com/xiebiao/bookclub/internal/application/review"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
)

// Notice 一条站内通知
type Notice struct {
	// Recipient 为0表示广播给关注者（由Feed服务展开）
	Recipient uint
	Text      string
}

type envelope struct {
	ID      string          `json:"id"`
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Notify mq.Handler，解码事件并记录通知
// 无法解析的消息返回错误，由mq.HandleDelivery决定是否重新入队
func Notify(ctx context.Context, routingKey string, body []byte) error {
	notice, err := Render(body)
	if err != nil {
		return err
	}
	if notice == nil {
		return nil
	}
	zerolog.Ctx(ctx).Info().
		Uint("recipient", notice.Recipient).
		Str("event", routingKey).
		Msg(notice.Text)
	return nil
}

// Render 把事件转换为通知，不需要通知的事件返回nil
func Render(body []byte) (*Notice, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("解析事件失败: %w", err)
	}

	switch env.Type {
	case events.MessageSent:
		var m appmessage.MessageResponse
		if err := json.Unmarshal(env.Payload, &m); err != nil {
			return nil, fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		if m.MessageType == message.TypePersonal && m.ReceiverID != nil {
			return &Notice{Recipient: *m.ReceiverID, Text: fmt.Sprintf("用户%d给你发了一条私信", m.SenderID)}, nil
		}
		return &Notice{Text: fmt.Sprintf("用户%d发表了评论", m.SenderID)}, nil

	case events.FollowCreated:
		var f appfollow.FollowResponse
		if err := json.Unmarshal(env.Payload, &f); err != nil {
			return nil, fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		if f.FollowedUserID == nil {
			return nil, nil
		}
		return &Notice{Recipient: *f.FollowedUserID, Text: fmt.Sprintf("用户%d关注了你", f.FollowerID)}, nil

	case events.LikeCreated:
		var l applike.LikeResponse
		if err := json.Unmarshal(env.Payload, &l); err != nil {
			return nil, fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		return &Notice{Text: fmt.Sprintf("用户%d点了赞", l.UserID)}, nil

	case events.RepostSaveCreated:
		var r apprepostsave.RepostSaveResponse
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			return nil, fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		return &Notice{Text: fmt.Sprintf("用户%d%s了内容", r.UserID, actionVerb(r.ActionType))}, nil

	case events.ReviewCreated:
		var r appreview.ReviewResponse
		if err := json.Unmarshal(env.Payload, &r); err != nil {
			return nil, fmt.Errorf("解析%s失败: %w", env.Type, err)
		}
		return &Notice{Text: fmt.Sprintf("用户%d发表了书评《%s》", r.UserID, r.Title)}, nil

	case events.QuoteCreated:
		return &Notice{Text: "有新的书摘"}, nil
	}
	return nil, nil
}

func actionVerb(action repostsave.ActionType) string {
	if action == repostsave.ActionSave {
		return "收藏"
	}
	return "转发"
}
