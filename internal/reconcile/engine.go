// Package reconcile rebuilds round-trip trades from a chronological stream of fills.
//
// Matching is FIFO per symbol: a fill first closes the oldest open lots of the
// opposite side, splitting them on partial size, and whatever quantity is left
// opens a new lot. Profit of each trade is the opening fill's net P&L plus the
// closing fill's net P&L, each in proportion to the quantity matched from it.
package reconcile

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// Lot is a slice of an open position waiting for an opposing fill.
type Lot struct {
	Symbol     string
	Side       domain.Side
	Remaining  decimal.Decimal // > 0 while queued
	EntryPrice decimal.Decimal
	EntryTime  time.Time
	Row        int // source row of the originating fill

	// unallocated P&L and fee of the originating fill
	pnl allocation
	fee allocation
}

// Warning describes the lot as an end-of-stream diagnostic.
func (l Lot) Warning() string {
	return fmt.Sprintf("row %d: open position left at end of file: %s %s %s @ %s since %s",
		l.Row, l.Symbol, l.Side, l.Remaining, l.EntryPrice, l.EntryTime.Format("1/2/2006 15:04:05"))
}

// Engine holds the per-symbol queues of one reconciliation run. It must not be
// shared between files; create one per input.
type Engine struct {
	queues  map[string]*lotQueue
	symbols []string // first-seen order, keeps Open deterministic
}

// New returns an engine with no open lots.
func New() *Engine {
	return &Engine{queues: make(map[string]*lotQueue)}
}

// Feed matches one fill against the open lots of its symbol and returns the trades
// it closed, oldest lot first. Fills must be fed in chronological order.
func (e *Engine) Feed(f domain.Fill) []domain.Trade {
	if !f.Quantity.IsPositive() {
		panic(fmt.Sprintf("reconcile: fill at row %d has non-positive quantity %s", f.Row, f.Quantity))
	}

	q, ok := e.queues[f.Symbol]
	if !ok {
		q = &lotQueue{}
		e.queues[f.Symbol] = q
		e.symbols = append(e.symbols, f.Symbol)
	}

	var (
		trades    []domain.Trade
		remaining = f.Quantity
		pnl       = newAllocation(f.NetPnL, f.Quantity)
		fee       = newAllocation(f.Fee, f.Quantity)
	)

	for remaining.IsPositive() {
		lot := q.front()
		if lot == nil || lot.Side == f.Side {
			break
		}

		matched := decimal.Min(remaining, lot.Remaining)
		trades = append(trades, domain.Trade{
			Date:       domain.DateOf(lot.EntryTime),
			Symbol:     f.Symbol,
			Direction:  domain.DirectionFor(lot.Side),
			Contracts:  matched,
			EntryPrice: lot.EntryPrice,
			ExitPrice:  f.Price,
			TimeIn:     lot.EntryTime,
			TimeOut:    f.Timestamp,
			Profit:     lot.pnl.take(matched).Add(pnl.take(matched)),
			Fees:       lot.fee.take(matched).Add(fee.take(matched)),
		})

		lot.Remaining = lot.Remaining.Sub(matched)
		remaining = remaining.Sub(matched)
		if lot.Remaining.IsNegative() || remaining.IsNegative() {
			panic(fmt.Sprintf("reconcile: negative remaining quantity matching row %d against row %d", f.Row, lot.Row))
		}
		if lot.Remaining.IsZero() {
			q.popFront()
		}
	}

	if remaining.IsPositive() {
		q.push(&Lot{
			Symbol:     f.Symbol,
			Side:       f.Side,
			Remaining:  remaining,
			EntryPrice: f.Price,
			EntryTime:  f.Timestamp,
			Row:        f.Row,
			pnl:        pnl,
			fee:        fee,
		})
	}
	return trades
}

// Open returns the lots still open, grouped by symbol in first-seen order and
// oldest first within a symbol.
func (e *Engine) Open() []Lot {
	var out []Lot
	for _, sym := range e.symbols {
		out = append(out, e.queues[sym].snapshot()...)
	}
	return out
}

// Run reconciles a chronologically sorted fill sequence with a fresh engine.
// Trades come back in the order of their closing fills.
func Run(fills []domain.Fill) ([]domain.Trade, []Lot) {
	e := New()
	var trades []domain.Trade
	for _, f := range fills {
		trades = append(trades, e.Feed(f)...)
	}
	return trades, e.Open()
}
