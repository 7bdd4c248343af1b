package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var deliveryPolicy = Policy{SurchargeCents: 5000, FreeAboveCents: 50000}

func TestComputeTotalsEmpty(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals(nil, deliveryPolicy)
	assert.Zero(t, totals.SubtotalCents)
	assert.Zero(t, totals.SavingsCents)
	assert.Zero(t, totals.SurchargeCents)
	assert.Zero(t, totals.GrandTotalCents)
}

func TestComputeTotalsAggregates(t *testing.T) {
	t.Parallel()

	items := []Item{
		{UnitPriceCents: 2500, OriginalUnitPriceCents: 3000, Quantity: 2, RequiresFulfillment: true},
		{UnitPriceCents: 4500, OriginalUnitPriceCents: 5500, Quantity: 1, RequiresFulfillment: true},
	}
	totals := ComputeTotals(items, deliveryPolicy)

	assert.Equal(t, int64(9500), totals.SubtotalCents)
	assert.Equal(t, int64(2000), totals.SavingsCents)
	assert.Equal(t, int64(5000), totals.SurchargeCents)
	assert.Equal(t, int64(14500), totals.GrandTotalCents)
}

func TestComputeTotalsClampsNegativeSavings(t *testing.T) {
	t.Parallel()

	items := []Item{
		// catalog "discount" that actually raised the price
		{UnitPriceCents: 3000, OriginalUnitPriceCents: 2500, Quantity: 3, RequiresFulfillment: true},
		{UnitPriceCents: 1000, OriginalUnitPriceCents: 1200, Quantity: 1, RequiresFulfillment: true},
	}
	totals := ComputeTotals(items, deliveryPolicy)

	assert.Equal(t, int64(10000), totals.SubtotalCents)
	assert.Equal(t, int64(200), totals.SavingsCents)
}

func TestSurchargeThresholdBoundary(t *testing.T) {
	t.Parallel()

	below := ComputeTotals([]Item{
		{UnitPriceCents: 49999, OriginalUnitPriceCents: 49999, Quantity: 1, RequiresFulfillment: true},
	}, deliveryPolicy)
	assert.Equal(t, int64(5000), below.SurchargeCents)

	atThreshold := ComputeTotals([]Item{
		{UnitPriceCents: 50000, OriginalUnitPriceCents: 50000, Quantity: 1, RequiresFulfillment: true},
	}, deliveryPolicy)
	assert.Zero(t, atThreshold.SurchargeCents)
}

func TestSurchargeSkippedWhenNoItemRequiresFulfillment(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals([]Item{
		{UnitPriceCents: 100, OriginalUnitPriceCents: 100, Quantity: 1},
	}, deliveryPolicy)
	assert.Zero(t, totals.SurchargeCents)
}

func TestComputeTotalsIgnoresNonPositiveQuantities(t *testing.T) {
	t.Parallel()

	totals := ComputeTotals([]Item{
		{UnitPriceCents: 100, OriginalUnitPriceCents: 100, Quantity: 0, RequiresFulfillment: true},
		{UnitPriceCents: 100, OriginalUnitPriceCents: 100, Quantity: -2, RequiresFulfillment: true},
	}, deliveryPolicy)
	assert.Zero(t, totals.SubtotalCents)
	assert.Zero(t, totals.SurchargeCents)
}

func TestComputeTotalsIsDeterministic(t *testing.T) {
	t.Parallel()

	items := []Item{
		{UnitPriceCents: 2500, OriginalUnitPriceCents: 3000, Quantity: 2, RequiresFulfillment: true},
	}
	first := ComputeTotals(items, deliveryPolicy)
	second := ComputeTotals(items, deliveryPolicy)
	assert.Equal(t, first, second)
}
