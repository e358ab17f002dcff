package profile

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGender_JSON(t *testing.T) {
	data, err := json.Marshal(GenderUnspecified)
	require.NoError(t, err)
	assert.Equal(t, `"unspecified"`, string(data))

	var g Gender
	require.NoError(t, json.Unmarshal([]byte(`"female"`), &g))
	assert.Equal(t, GenderFemale, g)

	assert.Error(t, json.Unmarshal([]byte(`"robot"`), &g))
}

func TestProfile_Apply(t *testing.T) {
	p := NewEmptyProfile(7, "reader")
	bio := "sci-fi fan"
	g := GenderOther

	p.Apply(UpdateParams{Bio: &bio, Gender: &g})

	assert.Equal(t, "reader", p.DisplayName)
	assert.Equal(t, "sci-fi fan", p.Bio)
	assert.Equal(t, GenderOther, p.Gender)
}
