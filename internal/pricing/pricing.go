// Package pricing holds the pure monetary aggregation used by the cart
// engine and the checkout views. All arithmetic is integer cents, so
// aggregation never accumulates floating-point drift; values become
// 2-decimal strings only at the formatting boundary.
package pricing

// Item describes one cart line from the calculator's point of view.
type Item struct {
	UnitPriceCents         int64
	OriginalUnitPriceCents int64
	Quantity               int
	// RequiresFulfillment marks lines whose products need the policy's
	// service (home delivery or sample collection).
	RequiresFulfillment bool
}

// Policy describes the fulfillment surcharge rule: a flat charge waived once
// the subtotal reaches the free threshold.
type Policy struct {
	SurchargeCents int64
	FreeAboveCents int64
}

// Totals is the aggregate money view of a set of items.
type Totals struct {
	SubtotalCents   int64
	SavingsCents    int64
	SurchargeCents  int64
	GrandTotalCents int64
}

// ComputeTotals derives the cart aggregates for the given items. Per-item
// savings are clamped at zero so a negative catalog discount can never
// inflate the total. An empty item list yields all-zero totals and no
// surcharge.
func ComputeTotals(items []Item, policy Policy) Totals {
	var totals Totals
	needsFulfillment := false

	for _, item := range items {
		qty := int64(item.Quantity)
		if qty <= 0 {
			continue
		}
		lineTotal := item.UnitPriceCents * qty
		totals.SubtotalCents += lineTotal

		if savings := item.OriginalUnitPriceCents*qty - lineTotal; savings > 0 {
			totals.SavingsCents += savings
		}
		if item.RequiresFulfillment {
			needsFulfillment = true
		}
	}

	totals.SurchargeCents = surchargeFor(totals.SubtotalCents, needsFulfillment, policy)
	totals.GrandTotalCents = totals.SubtotalCents + totals.SurchargeCents
	return totals
}

func surchargeFor(subtotalCents int64, needsFulfillment bool, policy Policy) int64 {
	if !needsFulfillment || subtotalCents == 0 {
		return 0
	}
	if policy.FreeAboveCents > 0 && subtotalCents >= policy.FreeAboveCents {
		return 0
	}
	return policy.SurchargeCents
}
