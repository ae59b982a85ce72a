// Package dialect recognises which of the two export shapes a file uses and resolves
// its header into column indices once per file.
package dialect

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// Column is a logical column. Its name is the normalized header token.
type Column string

// Fill-stream columns.
const (
	ColDateTime Column = "datetime"
	ColSymbol   Column = "symbol"
	ColSide     Column = "side"
	ColQuantity Column = "quantity"
	ColPrice    Column = "price"
	ColGrossPL  Column = "grosspl"
	ColFee      Column = "fee"
	ColNetPL    Column = "netpl"
)

// Paired-row columns. ColSymbol is shared.
const (
	ColQty             Column = "qty"
	ColBuyPrice        Column = "buyprice"
	ColSellPrice       Column = "sellprice"
	ColPnL             Column = "pnl"
	ColBoughtTimestamp Column = "boughttimestamp"
	ColSoldTimestamp   Column = "soldtimestamp"
)

// detection only looks at these; symbol is required later but not used to route.
var fillStreamSignature = []Column{ColDateTime, ColSide, ColQuantity, ColPrice, ColGrossPL, ColFee, ColNetPL}

// Required returns the columns a dialect cannot be parsed without.
func Required(d domain.Dialect) []Column {
	switch d {
	case domain.DialectFillStream:
		return []Column{ColDateTime, ColSymbol, ColSide, ColQuantity, ColPrice, ColGrossPL, ColFee, ColNetPL}
	case domain.DialectPaired:
		return []Column{ColSymbol, ColQty, ColBuyPrice, ColSellPrice, ColPnL, ColBoughtTimestamp, ColSoldTimestamp}
	}
	return nil
}

// Normalize lower-cases a header token and drops whitespace and slashes,
// so "Net P/L" becomes "netpl".
func Normalize(token string) string {
	var sb strings.Builder
	for _, r := range token {
		if unicode.IsSpace(r) || r == '/' || r == '\uFEFF' {
			continue
		}
		sb.WriteRune(unicode.ToLower(r))
	}
	return sb.String()
}

// Detect routes a header to the fill-stream dialect when it carries the whole
// fill-stream signature, and to the paired dialect otherwise.
func Detect(header []string) domain.Dialect {
	seen := make(map[string]bool, len(header))
	for _, h := range header {
		seen[Normalize(h)] = true
	}
	for _, c := range fillStreamSignature {
		if !seen[string(c)] {
			return domain.DialectPaired
		}
	}
	return domain.DialectFillStream
}

// MissingHeaderError lists the required columns absent from a header.
type MissingHeaderError struct {
	Dialect domain.Dialect
	Missing []Column
}

func (e *MissingHeaderError) Error() string {
	names := make([]string, len(e.Missing))
	for i, c := range e.Missing {
		names[i] = string(c)
	}
	return fmt.Sprintf("missing header(s) for %s format: %s", e.Dialect, strings.Join(names, ", "))
}

// Columns maps each logical column to its index in a row.
type Columns struct {
	index map[Column]int
	names map[Column]string
	width int
}

// Resolve finds every required column of the dialect in the header. Extra
// columns are ignored; when a token repeats, the first occurrence wins.
func Resolve(d domain.Dialect, header []string) (Columns, error) {
	idx := make(map[Column]int, len(header))
	names := make(map[Column]string, len(header))
	for i, h := range header {
		c := Column(Normalize(h))
		if _, dup := idx[c]; !dup {
			idx[c] = i
			names[c] = strings.TrimSpace(h)
		}
	}

	var missing []Column
	for _, c := range Required(d) {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return Columns{}, &MissingHeaderError{Dialect: d, Missing: missing}
	}
	return Columns{index: idx, names: names, width: len(header)}, nil
}

// Width is the number of columns in the header.
func (c Columns) Width() int {
	return c.width
}

// Get returns the cell for col. Resolve guarantees required columns exist; callers
// must check the row width against Width first.
func (c Columns) Get(row []string, col Column) string {
	i, ok := c.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// Name is the header text the file used for col, for diagnostics.
func (c Columns) Name(col Column) string {
	if n, ok := c.names[col]; ok && n != "" {
		return n
	}
	return string(col)
}
