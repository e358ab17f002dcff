package interaction

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_JSON(t *testing.T) {
	data, err := json.Marshal(StatusWantToRead)
	require.NoError(t, err)
	assert.Equal(t, `"want_to_read"`, string(data))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"READİNG"`), &s))
	assert.Equal(t, StatusReading, s)
}

func TestInteraction_ApplyStampsProgress(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	i := &Interaction{Status: StatusWantToRead}

	read := StatusRead
	i.Apply(UpdateParams{Status: &read}, now)

	require.NotNil(t, i.StartedAt)
	require.NotNil(t, i.FinishedAt)
	assert.Equal(t, now, *i.FinishedAt)
}

func TestInteraction_Validate(t *testing.T) {
	start := time.Now()
	end := start.Add(-time.Hour)

	assert.ErrorIs(t, (&Interaction{Rating: 6}).Validate(), ErrInvalidRating)
	assert.ErrorIs(t, (&Interaction{StartedAt: &start, FinishedAt: &end}).Validate(), ErrInvalidPeriod)
	assert.NoError(t, (&Interaction{Rating: 5}).Validate())
}
