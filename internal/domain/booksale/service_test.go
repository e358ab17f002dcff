package booksale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCurrency(t *testing.T) {
	c, err := normalizeCurrency(" try ")
	assert.NoError(t, err)
	assert.Equal(t, "TRY", c)

	assert.True(t, IsValidCurrency("cny"))

	for _, bad := range []string{"", "US", "EURO", "U$D", "人民币", "ABC", "XYZ"} {
		_, err := normalizeCurrency(bad)
		assert.ErrorIs(t, err, ErrInvalidCurrency, bad)
	}
}

func TestBookSale_Apply(t *testing.T) {
	s := &BookSale{StoreName: "A", Price: 100, InStock: true}
	price := int64(0)
	inStock := false

	s.Apply(UpdateParams{Price: &price, InStock: &inStock})

	assert.Equal(t, "A", s.StoreName)
	assert.Equal(t, int64(0), s.Price)
	assert.False(t, s.InStock)
}
