// Package parser turns tokenized rows of either export dialect into typed records.
//
// A row that fails validation contributes exactly one diagnostic and nothing else;
// parsing always continues with the next row.
package parser

import (
	"fmt"

	"github.com/alejandrodnm/tradejournal/internal/csvio"
	"github.com/alejandrodnm/tradejournal/internal/dialect"
)

// Diagnostic formats a row-level problem so it can be traced back to the file.
func Diagnostic(row int, format string, args ...any) string {
	return fmt.Sprintf("row %d: ", row) + fmt.Sprintf(format, args...)
}

// checkShape rejects rows the tokenizer could not read and rows whose column count
// differs from the header's.
func checkShape(row csvio.Row, cols dialect.Columns) (string, bool) {
	if row.Err != nil {
		return Diagnostic(row.Num, "malformed CSV record: %v", row.Err), false
	}
	if len(row.Fields) != cols.Width() {
		return Diagnostic(row.Num, "expected %d columns (as in the header), found %d", cols.Width(), len(row.Fields)), false
	}
	return "", true
}
