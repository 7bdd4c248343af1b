package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCents(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "50.00", FormatCents(5000))
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "499.99", FormatCents(49999))
	assert.Equal(t, "0.05", FormatCents(5))
}

func TestDisplay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "₹25.00", Display(2500))
}

func TestParsePrice(t *testing.T) {
	t.Parallel()

	cases := map[string]int64{
		"25.00":   2500,
		"25":      2500,
		"  30.5 ": 3050,
		"₹499.99": 49999,
		"0.00":    0,
	}
	for input, want := range cases {
		got, err := ParsePrice(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}
}

func TestParsePriceRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "   ", "abc", "12..3"} {
		_, err := ParsePrice(input)
		assert.Error(t, err, input)
	}
}

func TestReformatIsIdempotent(t *testing.T) {
	t.Parallel()

	once, err := Reformat("50")
	require.NoError(t, err)
	assert.Equal(t, "50.00", once)

	twice, err := Reformat(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
