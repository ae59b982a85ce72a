package fields_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/fields"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAccounting_Parentheses(t *testing.T) {
	d, err := fields.Accounting("(525.00)", "pnl")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-525.00")), "got %s", d)
}

func TestAccounting_DollarAndThousands(t *testing.T) {
	d, err := fields.Accounting("$1,000.00", "pnl")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("1000")), "got %s", d)
}

func TestAccounting_PlainAndNegative(t *testing.T) {
	d, err := fields.Accounting(" -12.5 ", "pnl")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-12.5")))

	d, err = fields.Accounting("$(1,234.56)", "pnl")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("-1234.56")))
}

func TestAccounting_Invalid(t *testing.T) {
	for _, raw := range []string{"", "$", "()", "abc", "12..5"} {
		_, err := fields.Accounting(raw, "pnl")
		require.Error(t, err, "raw=%q", raw)

		var fe *fields.Error
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, "pnl", fe.Field)
		assert.Equal(t, raw, fe.Value)
	}
}

func TestFormatAccounting_RoundTrip(t *testing.T) {
	for _, raw := range []string{"(525.00)", "$1,000.00", "0", "-0.5", "1234567.89"} {
		d, err := fields.Accounting(raw, "pnl")
		require.NoError(t, err)

		back, err := fields.Accounting(fields.FormatAccounting(d), "pnl")
		require.NoError(t, err)
		assert.True(t, d.Equal(back), "raw=%q formatted=%q", raw, fields.FormatAccounting(d))
	}
	assert.Equal(t, "($525.00)", fields.FormatAccounting(dec("-525")))
	assert.Equal(t, "$1,000.00", fields.FormatAccounting(dec("1000")))
}

func TestDecimal_RejectsAccountingNotation(t *testing.T) {
	_, err := fields.Decimal("$1,000", "buyPrice")
	assert.Error(t, err)
	_, err = fields.Decimal("  ", "buyPrice")
	assert.Error(t, err)

	d, err := fields.Decimal("4512.25", "buyPrice")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("4512.25")))
}

func TestPositiveQuantity(t *testing.T) {
	d, err := fields.PositiveQuantity("3", "qty")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("3")))

	for _, raw := range []string{"0", "-1", "x", ""} {
		_, err := fields.PositiveQuantity(raw, "qty")
		assert.Error(t, err, "raw=%q", raw)
	}
}

func TestNonZeroQuantity_ReturnsMagnitude(t *testing.T) {
	d, err := fields.NonZeroQuantity("-4", "Quantity")
	require.NoError(t, err)
	assert.True(t, d.Equal(dec("4")))

	_, err = fields.NonZeroQuantity("0", "Quantity")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Quantity")
}

func TestSide(t *testing.T) {
	s, err := fields.Side("BUY", "Side")
	require.NoError(t, err)
	assert.Equal(t, domain.SideBuy, s)

	s, err = fields.Side(" sell ", "Side")
	require.NoError(t, err)
	assert.Equal(t, domain.SideSell, s)

	_, err = fields.Side("Short", "Side")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Short"`)
}

func TestText(t *testing.T) {
	s, err := fields.Text("  MESZ4 ", "symbol")
	require.NoError(t, err)
	assert.Equal(t, "MESZ4", s)

	_, err = fields.Text("   ", "symbol")
	assert.Error(t, err)
}

func TestTimestamp_Shapes(t *testing.T) {
	cases := []struct {
		raw  string
		want time.Time
	}{
		{"3/5/2024 9:30:15 AM", time.Date(2024, 3, 5, 9, 30, 15, 0, time.UTC)},
		{"3/5/2024 9:30 AM", time.Date(2024, 3, 5, 9, 30, 0, 0, time.UTC)},
		{"12/31/2024 12:00:00 AM", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"12/31/2024 12:05 PM", time.Date(2024, 12, 31, 12, 5, 0, 0, time.UTC)},
		{"1/2/2024 1:00:00 pm", time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC)},
		{"01/02/2024 13:45:01", time.Date(2024, 1, 2, 13, 45, 1, 0, time.UTC)},
		{"2/29/2024 0:00", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		got, err := fields.Timestamp(c.raw, "Date/Time")
		require.NoError(t, err, c.raw)
		assert.True(t, c.want.Equal(got), "%s: got %s", c.raw, got)
	}
}

func TestTimestamp_OutOfRange(t *testing.T) {
	bad := []string{
		"13/1/2024 9:30 AM",
		"0/1/2024 9:30 AM",
		"2/30/2024 9:30 AM",
		"2/29/2023 9:30 AM",
		"1/1/2024 13:30 PM",
		"1/1/2024 0:30 AM",
		"1/1/2024 24:00",
		"1/1/2024 9:60",
		"1/1/2024 9:30:60",
		"2024-01-01 09:30:00",
		"",
	}
	for _, raw := range bad {
		_, err := fields.Timestamp(raw, "boughtTimestamp")
		require.Error(t, err, raw)
		assert.Contains(t, err.Error(), "boughtTimestamp")
	}
}
