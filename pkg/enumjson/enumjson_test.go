package enumjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLower_DotlessSubstitution(t *testing.T) {
	assert.Equal(t, "review", Lower("REVIEW"))
	assert.Equal(t, "personal", Lower("PERSONAL"))
	assert.Equal(t, "want_to_read", Lower("WANT_TO_READ"))
	assert.Equal(t, "fiction", Lower("FICTION"))
	assert.NotContains(t, Lower("FICTION"), "ı")
}

func TestMarshal(t *testing.T) {
	b, err := Marshal("QUOTE")
	require.NoError(t, err)
	assert.Equal(t, `"quote"`, string(b))
}

func TestUnmarshal(t *testing.T) {
	allowed := []string{"PERSONAL", "BOOK", "REVIEW", "QUOTE"}

	cases := map[string]string{
		`"review"`: "REVIEW",
		`"REVIEW"`: "REVIEW",
		`"revıew"`: "REVIEW", // 土耳其语小写
		`"REVİEW"`: "REVIEW", // 土耳其语大写
		`" book "`: "BOOK",
	}
	for input, want := range cases {
		got, err := Unmarshal([]byte(input), allowed...)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := Unmarshal([]byte(`"poem"`), allowed...)
	assert.Error(t, err)

	_, err = Unmarshal([]byte(`3`), allowed...)
	assert.Error(t, err)
}
