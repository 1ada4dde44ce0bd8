package billing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemAmount(t *testing.T) {
	assert.Equal(t, 10000.0, ItemAmount(10, 2, 500))
	assert.Equal(t, 0.0, ItemAmount(0, 2, 500))
	assert.Equal(t, 1.5, ItemAmount(1, 1, 1.5))
}

func TestItemAmountSubstitutesZeroForBadInput(t *testing.T) {
	assert.Equal(t, 0.0, ItemAmount(math.NaN(), 2, 500))
	assert.Equal(t, 0.0, ItemAmount(10, math.Inf(1), 500))
	assert.Equal(t, 0.0, ItemAmount(10, 2, -500))
}

func TestSectionTotal(t *testing.T) {
	assert.Equal(t, 0.0, SectionTotal(nil))
	assert.Equal(t, 0.0, SectionTotal([]float64{}))
	assert.Equal(t, 600.0, SectionTotal([]float64{100, 200, 300}))
}

func TestProjectTotals(t *testing.T) {
	subtotal, gst, final := ProjectTotals([]float64{10000}, 18)
	assert.Equal(t, 10000.0, subtotal)
	assert.Equal(t, 1800.0, gst)
	assert.Equal(t, 11800.0, final)
}

func TestProjectTotalsZeroGST(t *testing.T) {
	subtotal, gst, final := ProjectTotals([]float64{250.5, 749.5}, 0)
	assert.Equal(t, 1000.0, subtotal)
	assert.Equal(t, 0.0, gst)
	assert.Equal(t, subtotal, final)
}

func TestParseUOM(t *testing.T) {
	for _, u := range UOMs() {
		parsed, err := ParseUOM(string(u))
		require.NoError(t, err)
		assert.Equal(t, u, parsed)
	}

	_, err := ParseUOM("furlong")
	require.Error(t, err)

	_, err = ParseUOM("")
	require.Error(t, err)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "11,800.00", FormatAmount(11800))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "1,234.57", FormatAmount(1234.567))
}
