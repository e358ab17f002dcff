package follow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookclub/internal/domain/shared"
)

func TestNew(t *testing.T) {
	f, err := New(1, shared.Target{Kind: shared.TargetBook, ID: 9})
	require.NoError(t, err)
	assert.Nil(t, f.FollowedUserID)
	require.NotNil(t, f.FollowedBookID)
	assert.Equal(t, uint(9), *f.FollowedBookID)

	target, err := f.Target()
	require.NoError(t, err)
	assert.Equal(t, "book:9", target.Key())

	_, err = New(1, shared.Target{Kind: shared.TargetUser, ID: 1})
	assert.ErrorIs(t, err, ErrFollowSelf)

	_, err = New(1, shared.Target{Kind: shared.TargetReview, ID: 3})
	assert.ErrorIs(t, err, shared.ErrInvalidTarget)
}

func TestFollow_TargetRejectsBoth(t *testing.T) {
	u, b := uint(2), uint(3)
	f := &Follow{FollowerID: 1, FollowedUserID: &u, FollowedBookID: &b}
	_, err := f.Target()
	assert.ErrorIs(t, err, shared.ErrInvalidTarget)
}
