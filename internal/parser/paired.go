package parser

import (
	"github.com/alejandrodnm/tradejournal/internal/csvio"
	"github.com/alejandrodnm/tradejournal/internal/dialect"
	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/fields"
)

// Paired parses the already-paired dialect. Each valid row becomes one trade, in
// input order.
func Paired(rows []csvio.Row, cols dialect.Columns) ([]domain.Trade, []string) {
	var (
		trades []domain.Trade
		diags  []string
	)
	for _, row := range rows {
		if msg, ok := checkShape(row, cols); !ok {
			diags = append(diags, msg)
			continue
		}
		pr, err := pairedRow(row, cols)
		if err != nil {
			diags = append(diags, Diagnostic(row.Num, "%v", err))
			continue
		}
		trades = append(trades, pr.Trade())
	}
	return trades, diags
}

// pairedRow validates the cells of one row in a fixed order and stops at the first
// failure.
func pairedRow(row csvio.Row, cols dialect.Columns) (domain.PairedRow, error) {
	get := func(c dialect.Column) (string, string) {
		return cols.Get(row.Fields, c), cols.Name(c)
	}

	pr := domain.PairedRow{Row: row.Num}
	var err error

	if pr.Symbol, err = fields.Text(get(dialect.ColSymbol)); err != nil {
		return pr, err
	}
	if pr.Quantity, err = fields.PositiveQuantity(get(dialect.ColQty)); err != nil {
		return pr, err
	}
	if pr.PnL, err = fields.Accounting(get(dialect.ColPnL)); err != nil {
		return pr, err
	}
	if pr.Bought, err = fields.Timestamp(get(dialect.ColBoughtTimestamp)); err != nil {
		return pr, err
	}
	if pr.Sold, err = fields.Timestamp(get(dialect.ColSoldTimestamp)); err != nil {
		return pr, err
	}
	if pr.BuyPrice, err = fields.Decimal(get(dialect.ColBuyPrice)); err != nil {
		return pr, err
	}
	if pr.SellPrice, err = fields.Decimal(get(dialect.ColSellPrice)); err != nil {
		return pr, err
	}
	if pr.Bought.Equal(pr.Sold) {
		raw, _ := get(dialect.ColBoughtTimestamp)
		return pr, &fields.Error{
			Field:  cols.Name(dialect.ColBoughtTimestamp) + "/" + cols.Name(dialect.ColSoldTimestamp),
			Value:  raw,
			Reason: "bought and sold timestamps are identical, direction cannot be inferred",
		}
	}
	return pr, nil
}
