package repostsave

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

func TestNew(t *testing.T) {
	rs, err := New(3, ActionSave, shared.Target{Kind: shared.TargetQuote, ID: 9})
	require.NoError(t, err)
	assert.Nil(t, rs.ReviewID)
	assert.Nil(t, rs.BookInteractionID)
	require.NotNil(t, rs.QuoteID)
	assert.Equal(t, uint(9), *rs.QuoteID)

	target, err := rs.Target()
	require.NoError(t, err)
	assert.Equal(t, "quote:9", target.Key())
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(3, ActionType("SHARE"), shared.Target{Kind: shared.TargetQuote, ID: 9})
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = New(3, ActionRepost, shared.Target{Kind: shared.TargetMessage, ID: 9})
	assert.ErrorIs(t, err, shared.ErrInvalidTarget)
}

func TestActionType_JSON(t *testing.T) {
	data, err := json.Marshal(ActionRepost)
	require.NoError(t, err)
	assert.Equal(t, `"repost"`, string(data))

	var a ActionType
	require.NoError(t, json.Unmarshal([]byte(`"Save"`), &a))
	assert.Equal(t, ActionSave, a)

	assert.Error(t, json.Unmarshal([]byte(`"share"`), &a))

	parsed, err := ParseActionType("repost")
	require.NoError(t, err)
	assert.Equal(t, ActionRepost, parsed)
}
