// Package fields parses the individual cells of a broker export.
//
// Every validator takes the raw cell and the name of the column it came from, and
// returns either the parsed value or an *Error naming the field, the raw value and
// the expected shape. Both CSV dialects share these rules.
package fields

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// Error describes a cell that failed validation.
type Error struct {
	Field  string
	Value  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Reason)
}

func fail(field, value, reason string) *Error {
	return &Error{Field: field, Value: value, Reason: reason}
}

// Decimal parses a plain decimal number such as "4512.25" or "-3".
func Decimal(raw, field string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, fail(field, raw, "expected a number, got an empty value")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fail(field, raw, "expected a plain decimal number")
	}
	return d, nil
}

// Accounting parses money in accounting notation: "$" and "," are ignored and a
// value wrapped in parentheses is negative, so "(525.00)" is -525.
func Accounting(raw, field string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	negate := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negate = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return decimal.Zero, fail(field, raw, "expected an amount, got an empty value")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fail(field, raw, "expected an amount like 1,250.00, $-3.5 or (525.00)")
	}
	if negate {
		d = d.Neg()
	}
	return d, nil
}

// FormatAccounting renders an amount back into accounting notation with two decimals.
// Accounting(FormatAccounting(d)) == d for any amount with at most two decimals.
func FormatAccounting(d decimal.Decimal) string {
	abs := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(abs, ".")

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := "$" + sb.String() + "." + frac
	if d.IsNegative() {
		return "(" + out + ")"
	}
	return out
}

// PositiveQuantity parses a quantity that must be strictly greater than zero.
func PositiveQuantity(raw, field string) (decimal.Decimal, error) {
	d, err := Decimal(raw, field)
	if err != nil {
		return decimal.Zero, err
	}
	if !d.IsPositive() {
		return decimal.Zero, fail(field, raw, "quantity must be greater than 0")
	}
	return d, nil
}

// NonZeroQuantity parses a signed quantity and returns its magnitude. The sign is
// tolerated but carries no meaning; the side column decides the direction.
func NonZeroQuantity(raw, field string) (decimal.Decimal, error) {
	d, err := Decimal(raw, field)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsZero() {
		return decimal.Zero, fail(field, raw, "quantity must not be 0")
	}
	return d.Abs(), nil
}

// Side parses Buy / Sell, case-insensitively.
func Side(raw, field string) (domain.Side, error) {
	s, ok := domain.ParseSide(raw)
	if !ok {
		return "", fail(field, raw, "expected Buy or Sell")
	}
	return s, nil
}

// Text returns the trimmed cell and fails when it is empty.
func Text(raw, field string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fail(field, raw, "must not be empty")
	}
	return s, nil
}
