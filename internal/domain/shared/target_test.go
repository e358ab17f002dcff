package shared

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTarget_Key(t *testing.T) {
	assert.Equal(t, "review:12", Target{Kind: TargetReview, ID: 12}.Key())
	assert.Equal(t, "book_interaction:3", Target{Kind: TargetBookInteraction, ID: 3}.Key())
	// 土耳其语小写规则下I会变成ı，键中不能出现
	assert.Equal(t, "quote:1", Target{Kind: TargetQuote, ID: 1}.Key())
}

func TestTarget_Check(t *testing.T) {
	assert.NoError(t, Target{Kind: TargetUser, ID: 1}.Check(TargetUser, TargetBook))
	assert.ErrorIs(t, Target{Kind: TargetReview, ID: 1}.Check(TargetUser, TargetBook), ErrInvalidTarget)
	assert.ErrorIs(t, Target{Kind: TargetUser}.Check(TargetUser), ErrInvalidTarget)
}

func TestTargetFromRefs(t *testing.T) {
	id := uint(5)
	other := uint(6)

	got, err := TargetFromRefs(map[TargetKind]*uint{TargetReview: &id, TargetQuote: nil})
	require.NoError(t, err)
	assert.Equal(t, Target{Kind: TargetReview, ID: 5}, got)

	_, err = TargetFromRefs(map[TargetKind]*uint{TargetReview: &id, TargetQuote: &other})
	assert.ErrorIs(t, err, ErrInvalidTarget)

	_, err = TargetFromRefs(map[TargetKind]*uint{TargetReview: nil})
	assert.ErrorIs(t, err, ErrInvalidTarget)
}

func TestParseTargetKind(t *testing.T) {
	k, err := ParseTargetKind("book_ınteraction", TargetBookInteraction, TargetReview)
	require.NoError(t, err)
	assert.Equal(t, TargetBookInteraction, k)

	_, err = ParseTargetKind("user", TargetReview)
	assert.ErrorIs(t, err, ErrInvalidTarget)

	var kind TargetKind
	require.NoError(t, json.Unmarshal([]byte(`"MESSAGE"`), &kind))
	assert.Equal(t, TargetMessage, kind)
}
