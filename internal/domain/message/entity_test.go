package message

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/internal/domain/shared"
	apperrors "github.com/xiebiao/bookclub/pkg/errors"
)

func ptr(v uint) *uint { return &v }

func TestMessage_Validate(t *testing.T) {
	tests := []struct {
		name    string
		msg     Message
		wantErr error
	}{
		{"私信", Message{Type: TypePersonal, ReceiverID: ptr(2), Content: "hi"}, nil},
		{"阅读记录消息", Message{Type: TypeBook, BookInteractionID: ptr(3), Content: "hi"}, nil},
		{"书评消息", Message{Type: TypeReview, ReviewID: ptr(4), Content: "hi"}, nil},
		{"书摘消息", Message{Type: TypeQuote, QuoteID: ptr(5), Content: "hi"}, nil},
		{"私信缺少接收者", Message{Type: TypePersonal, Content: "hi"}, ErrTargetMismatch},
		{"书摘消息带接收者", Message{Type: TypeQuote, QuoteID: ptr(5), ReceiverID: ptr(2), Content: "hi"}, ErrTargetMismatch},
		{"书评消息带书摘", Message{Type: TypeReview, ReviewID: ptr(4), QuoteID: ptr(5), Content: "hi"}, ErrTargetMismatch},
		{"阅读记录消息缺少关联", Message{Type: TypeBook, Content: "hi"}, ErrTargetMismatch},
		{"未知类型", Message{Type: "POEM", Content: "hi"}, ErrInvalidType},
		{"空内容", Message{Type: TypePersonal, ReceiverID: ptr(2), Content: "  "}, ErrEmptyContent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.msg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, 400, apperrors.StatusOf(err))
		})
	}
}

func TestMessage_ValidateDetails(t *testing.T) {
	m := Message{Type: TypeQuote, ReceiverID: ptr(2), Content: "hi"}
	err := m.Validate()
	require.Error(t, err)

	appErr := apperrors.GetAppError(err)
	assert.Equal(t, []string{"quote消息不能指定receiver_id", "quote消息必须指定quote_id"}, appErr.Details)
}

func TestMessage_Target(t *testing.T) {
	m := Message{Type: TypeReview, ReviewID: ptr(9), Content: "x"}
	assert.Equal(t, shared.Target{Kind: shared.TargetReview, ID: 9}, m.Target())
}

func TestType_JSON(t *testing.T) {
	data, err := json.Marshal(TypePersonal)
	require.NoError(t, err)
	assert.Equal(t, `"personal"`, string(data))

	var typ Type
	require.NoError(t, json.Unmarshal([]byte(`"quote"`), &typ))
	assert.Equal(t, TypeQuote, typ)
	assert.Error(t, json.Unmarshal([]byte(`"letter"`), &typ))
}

func TestMessage_Involves(t *testing.T) {
	m := Message{SenderID: 1, Type: TypePersonal, ReceiverID: ptr(2)}
	assert.True(t, m.Involves(1))
	assert.True(t, m.Involves(2))
	assert.False(t, m.Involves(3))
}
