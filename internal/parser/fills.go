package parser

import (
	"sort"

	"github.com/alejandrodnm/tradejournal/internal/csvio"
	"github.com/alejandrodnm/tradejournal/internal/dialect"
	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/fields"
)

// Fills parses the fill-stream dialect. Rows that fail validation are dropped; the
// surviving fills come back sorted by timestamp, ties kept in input order.
func Fills(rows []csvio.Row, cols dialect.Columns) ([]domain.Fill, []string) {
	var (
		fills []domain.Fill
		diags []string
	)
	for _, row := range rows {
		if msg, ok := checkShape(row, cols); !ok {
			diags = append(diags, msg)
			continue
		}
		f, err := fillRow(row, cols)
		if err != nil {
			diags = append(diags, Diagnostic(row.Num, "%v", err))
			continue
		}
		fills = append(fills, f)
	}

	sort.SliceStable(fills, func(i, j int) bool {
		return fills[i].Timestamp.Before(fills[j].Timestamp)
	})
	return fills, diags
}

func fillRow(row csvio.Row, cols dialect.Columns) (domain.Fill, error) {
	get := func(c dialect.Column) (string, string) {
		return cols.Get(row.Fields, c), cols.Name(c)
	}

	f := domain.Fill{Row: row.Num}
	var err error

	if f.Timestamp, err = fields.Timestamp(get(dialect.ColDateTime)); err != nil {
		return f, err
	}
	if f.Symbol, err = fields.Text(get(dialect.ColSymbol)); err != nil {
		return f, err
	}
	if f.Side, err = fields.Side(get(dialect.ColSide)); err != nil {
		return f, err
	}
	if f.Quantity, err = fields.NonZeroQuantity(get(dialect.ColQuantity)); err != nil {
		return f, err
	}
	if f.Price, err = fields.Accounting(get(dialect.ColPrice)); err != nil {
		return f, err
	}
	if f.Fee, err = fields.Accounting(get(dialect.ColFee)); err != nil {
		return f, err
	}
	if f.NetPnL, err = fields.Accounting(get(dialect.ColNetPL)); err != nil {
		return f, err
	}
	return f, nil
}
