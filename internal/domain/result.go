package domain

import "github.com/shopspring/decimal"

// Dialect identifies one of the supported CSV shapes.
type Dialect string

const (
	DialectUnknown    Dialect = ""
	DialectPaired     Dialect = "paired"      // one row per round trip
	DialectFillStream Dialect = "fill-stream" // one row per execution
)

// ImportResult is what a single file import hands back to the caller.
// Trades and Diagnostics are in deterministic order.
type ImportResult struct {
	Source      string
	Dialect     Dialect
	Trades      []Trade
	Diagnostics []string
}

// OK reports whether at least one trade was reconstructed.
func (r ImportResult) OK() bool {
	return len(r.Trades) > 0
}

// NetProfit sums the profit of every trade in the result.
func (r ImportResult) NetProfit() decimal.Decimal {
	total := decimal.Zero
	for _, t := range r.Trades {
		total = total.Add(t.Profit)
	}
	return total
}

// Wins counts trades with a positive profit.
func (r ImportResult) Wins() int {
	n := 0
	for _, t := range r.Trades {
		if t.IsWin() {
			n++
		}
	}
	return n
}
