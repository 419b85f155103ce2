package premium

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	require.Len(t, c.Features, 5)
	assert.Equal(t, "Análises Avançadas", c.Features[0].Title)

	require.Len(t, c.Plans, 2)
	assert.Equal(t, "R$ 19,90", c.Plans[0].Price)
	assert.Empty(t, c.Plans[0].Savings)
	assert.Equal(t, "R$ 159,90", c.Plans[1].Price)
	assert.True(t, c.Plans[1].Recommended)
	assert.Equal(t, "Economize 33%", c.Plans[1].Savings)
	assert.Equal(t, 7, c.Guarantee.Days)
}

func TestParseRejectsEmpty(t *testing.T) {
	_, err := Parse([]byte("title: x\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("plans: ["))
	assert.Error(t, err)
}

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 0,05", FormatBRL(5))
	assert.Equal(t, "R$ 1.234,56", FormatBRL(123456))
	assert.Equal(t, "-R$ 10,00", FormatBRL(-1000))
}
