package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReview_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Review{Rating: 0, Content: "ok"}).Validate(), ErrInvalidRating)
	assert.ErrorIs(t, (&Review{Rating: 6, Content: "ok"}).Validate(), ErrInvalidRating)
	assert.ErrorIs(t, (&Review{Rating: 3, Content: "   "}).Validate(), ErrEmptyContent)
	assert.NoError(t, (&Review{Rating: 5, Content: "great"}).Validate())
}

func TestReview_ApplyRevalidates(t *testing.T) {
	r := &Review{Rating: 4, Content: "good"}
	bad := 9
	r.Apply(UpdateParams{Rating: &bad})
	assert.ErrorIs(t, r.Validate(), ErrInvalidRating)
}
