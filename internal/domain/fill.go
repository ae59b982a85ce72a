package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Fill is one executed order leg as exported by the broker.
// It is immutable once parsed.
type Fill struct {
	Row       int       // 1-based row in the source file (header = 1)
	Timestamp time.Time // naive local time
	Symbol    string
	Side      Side
	Quantity  decimal.Decimal // always a positive magnitude
	Price     decimal.Decimal
	Fee       decimal.Decimal
	NetPnL    decimal.Decimal // P&L attributed to this fill alone
}

// PairedRow is a single row of the already-paired dialect: one complete round trip.
type PairedRow struct {
	Row       int
	Symbol    string
	Quantity  decimal.Decimal
	BuyPrice  decimal.Decimal
	SellPrice decimal.Decimal
	PnL       decimal.Decimal
	Bought    time.Time
	Sold      time.Time
}

// Trade converts the row into a Trade. The leg executed first is the entry.
// Callers must have rejected rows with identical timestamps.
func (p PairedRow) Trade() Trade {
	t := Trade{
		Symbol:    p.Symbol,
		Contracts: p.Quantity,
		Profit:    p.PnL,
		Fees:      decimal.Zero,
	}
	if p.Bought.Before(p.Sold) {
		t.Direction = DirectionLong
		t.EntryPrice, t.ExitPrice = p.BuyPrice, p.SellPrice
		t.TimeIn, t.TimeOut = p.Bought, p.Sold
	} else {
		t.Direction = DirectionShort
		t.EntryPrice, t.ExitPrice = p.SellPrice, p.BuyPrice
		t.TimeIn, t.TimeOut = p.Sold, p.Bought
	}
	t.Date = DateOf(t.TimeIn)
	return t
}
