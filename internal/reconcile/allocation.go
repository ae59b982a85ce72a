package reconcile

import "github.com/shopspring/decimal"

// allocationScale bounds the decimals of a share whose division does not terminate.
const allocationScale = 8

// allocation hands out a fill's total (P&L or fee) in proportion to the quantity
// consumed from it. Shares are computed from the running consumed quantity, so the
// slice that exhausts the fill receives exactly what is left and the parts always
// add up to the total.
type allocation struct {
	total     decimal.Decimal
	qty       decimal.Decimal
	consumed  decimal.Decimal
	allocated decimal.Decimal
}

func newAllocation(total, qty decimal.Decimal) allocation {
	return allocation{total: total, qty: qty, consumed: decimal.Zero, allocated: decimal.Zero}
}

// take returns the share of n more units.
func (a *allocation) take(n decimal.Decimal) decimal.Decimal {
	a.consumed = a.consumed.Add(n)
	cum := a.total
	if a.consumed.LessThan(a.qty) {
		cum = a.total.Mul(a.consumed).DivRound(a.qty, allocationScale)
	}
	share := cum.Sub(a.allocated)
	a.allocated = cum
	return share
}
