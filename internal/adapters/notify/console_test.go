package notify_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/tradejournal/internal/adapters/notify"
	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/ports"
)

var _ ports.Reporter = (*notify.Console)(nil)

func makeTrade(symbol string, profit int64) domain.Trade {
	in := time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)
	return domain.Trade{
		Date:       domain.DateOf(in),
		Symbol:     symbol,
		Direction:  domain.DirectionLong,
		Contracts:  decimal.NewFromInt(1),
		EntryPrice: decimal.RequireFromString("5000.25"),
		ExitPrice:  decimal.RequireFromString("5004.75"),
		TimeIn:     in,
		TimeOut:    in.Add(time.Minute),
		Profit:     decimal.NewFromInt(profit),
		Fees:       decimal.Zero,
	}
}

func TestConsole_Report_Success(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 0)

	err := c.Report(context.Background(), []domain.ImportResult{{
		Source:      "fills.csv",
		Dialect:     domain.DialectFillStream,
		Trades:      []domain.Trade{makeTrade("MESZ4", 1000), makeTrade("MESZ4", -525)},
		Diagnostics: []string{"row 9: open position left at end of file"},
	}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OK   fills.csv [fill-stream] 2 trades imported")
	assert.Contains(t, out, "net $475.00")
	assert.Contains(t, out, "1/2 wins")
	assert.Contains(t, out, "(1 diagnostic)")
	assert.NotContains(t, out, "row 9", "success only shows the count unless the table is on")
}

func TestConsole_Report_FailureTruncates(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 3)

	var diags []string
	for i := 2; i < 7; i++ {
		diags = append(diags, fmt.Sprintf("row %d: qty \"0\": quantity must be greater than 0", i))
	}
	diags = append(diags, strings.Repeat("x", 300))

	err := c.Report(context.Background(), []domain.ImportResult{{Source: "bad.csv", Diagnostics: diags}})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "FAIL bad.csv: no trades imported")
	assert.Contains(t, out, "row 2:")
	assert.Contains(t, out, "row 4:")
	assert.NotContains(t, out, "row 5:")
	assert.Contains(t, out, "... and 3 more")
}

func TestConsole_Report_LongDiagnosticTruncated(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 0)

	err := c.Report(context.Background(), []domain.ImportResult{{
		Source:      "bad.csv",
		Diagnostics: []string{strings.Repeat("A", 300)},
	}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), strings.Repeat("A", 200))
}

func TestConsole_Report_TableAndTotals(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, true, 0)

	err := c.Report(context.Background(), []domain.ImportResult{
		{Source: "a.csv", Dialect: domain.DialectPaired, Trades: []domain.Trade{makeTrade("MNQZ4", 40)}},
		{Source: "b.csv", Diagnostics: []string{"file has no data rows"}},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "MNQZ4")
	assert.Contains(t, out, "5000.25")
	assert.Contains(t, out, "$40.00")
	assert.Contains(t, out, "2 files, 1 failed")
}

func TestConsole_Report_Empty(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 0)
	require.NoError(t, c.Report(context.Background(), nil))
	assert.Contains(t, buf.String(), "no files imported")
}

func TestConsole_PrintHistory(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 0)

	c.PrintHistory(nil)
	assert.Contains(t, buf.String(), "no imports recorded")

	buf.Reset()
	c.PrintHistory([]domain.ImportRecord{{
		Source:     "fills.csv",
		Dialect:    domain.DialectFillStream,
		Trades:     12,
		NetProfit:  "310.5",
		ImportedAt: time.Date(2024, 3, 5, 18, 0, 0, 0, time.UTC),
	}})
	out := buf.String()
	assert.Contains(t, out, "fills.csv")
	assert.Contains(t, out, "310.5")
}

func TestConsole_Report_TruncationKeepsValidUTF8(t *testing.T) {
	var buf bytes.Buffer
	c := notify.NewConsoleWriter(&buf, false, 0)

	// the cut point falls inside a two-byte rune
	diag := "row 2: symbol " + strings.Repeat("é", 100)
	err := c.Report(context.Background(), []domain.ImportResult{{Source: "bad.csv", Diagnostics: []string{diag}}})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), "é...")
}
