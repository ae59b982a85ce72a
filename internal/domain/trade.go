package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a reconstructed round trip: one entry and one exit over a matched size.
type Trade struct {
	ID         string          `json:"id"`
	Source     string          `json:"source,omitempty"` // file the trade was imported from
	Date       time.Time       `json:"date"`             // calendar date of the entry
	Symbol     string          `json:"symbol"`
	Direction  Direction       `json:"direction"`
	Contracts  decimal.Decimal `json:"contracts"`
	EntryPrice decimal.Decimal `json:"entry_price"`
	ExitPrice  decimal.Decimal `json:"exit_price"`
	TimeIn     time.Time       `json:"time_in"`
	TimeOut    time.Time       `json:"time_out"`
	Profit     decimal.Decimal `json:"profit"`
	Fees       decimal.Decimal `json:"fees"`
	Tags       []string        `json:"tags,omitempty"`
}

// IsWin reports whether the trade closed with a positive profit.
func (t Trade) IsWin() bool {
	return t.Profit.IsPositive()
}

// Duration is the time the position was held.
func (t Trade) Duration() time.Duration {
	return t.TimeOut.Sub(t.TimeIn)
}

// DateOf truncates a naive timestamp to its calendar date.
func DateOf(ts time.Time) time.Time {
	y, m, d := ts.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, ts.Location())
}
