package main

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appfollow "github.com/xiebiao/bookclub/internal/application/follow"
	appmessage "github.com/xiebiao/bookclub/internal/application/message"
	apprepostsave "github.com/xiebiao/bookclub/internal/application/repostsave"
	"github.com/xiebiao/bookclub/internal/domain/message"
	"github.com/xiebiao/bookclub/internal/domain/repostsave"
	"github.com/xiebiao/bookclub/internal/infrastructure/events"
)

func encode(t *testing.T, eventType string, payload interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(events.New(eventType, payload))
	require.NoError(t, err)
	return body
}

func TestRender_PersonalMessage(t *testing.T) {
	receiver := uint(2)
	body := encode(t, events.MessageSent, appmessage.MessageResponse{
		ID: 1, SenderID: 1, MessageType: message.TypePersonal, ReceiverID: &receiver, Content: "hi",
	})

	notice, err := Render(body)
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, uint(2), notice.Recipient)
	assert.Contains(t, notice.Text, "私信")
}

func TestRender_Follow(t *testing.T) {
	followed := uint(7)
	notice, err := Render(encode(t, events.FollowCreated, appfollow.FollowResponse{ID: 1, FollowerID: 3, FollowedUserID: &followed}))
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, uint(7), notice.Recipient)

	// 关注图书不通知
	book := uint(9)
	notice, err = Render(encode(t, events.FollowCreated, appfollow.FollowResponse{ID: 2, FollowerID: 3, FollowedBookID: &book}))
	require.NoError(t, err)
	assert.Nil(t, notice)
}

func TestRender_RepostSave(t *testing.T) {
	notice, err := Render(encode(t, events.RepostSaveCreated, apprepostsave.RepostSaveResponse{ID: 1, UserID: 4, ActionType: repostsave.ActionSave}))
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Contains(t, notice.Text, "收藏")
}

func TestNotify(t *testing.T) {
	assert.Error(t, Notify(context.Background(), "message.sent", []byte("not json")))
	assert.NoError(t, Notify(context.Background(), "user.registered", encode(t, events.UserRegistered, map[string]string{"username": "alice"})))
}
