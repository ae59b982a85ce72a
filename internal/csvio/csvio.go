// Package csvio splits a broker export into numbered records.
//
// Row numbers follow spreadsheet conventions: the header is row 1 and the first data
// row is row 2. Blank lines are skipped and not counted.
package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoData is returned when the input has no header or no data row after it.
var ErrNoData = errors.New("file has no data rows (need a header and at least one row)")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Row is one record of the file. Err is set when the record could not be tokenized;
// Fields is then nil.
type Row struct {
	Num    int
	Fields []string
	Err    error
}

// Table is a tokenized file: the header and every data row in input order.
type Table struct {
	Header Row
	Rows   []Row
}

// Read tokenizes the whole input. Malformed records become rows with Err set; only
// an input without a header and at least one data row is an error.
func Read(r io.Reader) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csvio.Read: %w", err)
	}
	return Parse(data)
}

// Parse is Read over an in-memory buffer. Each line is tokenized on its own, so a
// record never spans lines and an unbalanced quote only affects its own row.
func Parse(data []byte) (*Table, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	var (
		table  Table
		num    int
		header bool
	)
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields, err := tokenize(line)
		if err == nil && blank(fields) {
			continue
		}
		num++
		if !header {
			if err != nil {
				return nil, fmt.Errorf("csvio.Parse: header row: %w", err)
			}
			table.Header = Row{Num: num, Fields: fields}
			header = true
			continue
		}
		if err != nil {
			table.Rows = append(table.Rows, Row{Num: num, Err: err})
			continue
		}
		table.Rows = append(table.Rows, Row{Num: num, Fields: fields})
	}

	if !header || len(table.Rows) == 0 {
		return nil, ErrNoData
	}
	return &table, nil
}

// tokenize splits one line into fields. A quoted field left open at the end of the
// line is reported instead of being read as running to the end of the input.
func tokenize(line string) ([]string, error) {
	cr := csv.NewReader(strings.NewReader(line))
	cr.FieldsPerRecord = -1 // column count is checked against the header by the parsers
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	fields, err := cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return nil, pe.Err
		}
		return nil, err
	}
	if unclosedQuote(line) {
		return nil, csv.ErrQuote
	}
	return fields, nil
}

// unclosedQuote reports whether line ends inside a quoted field.
func unclosedQuote(line string) bool {
	inQuotes, fieldStart := false, true
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case inQuotes && c == '"':
			switch {
			case i+1 < len(line) && line[i+1] == '"':
				i++
			case i+1 == len(line) || line[i+1] == ',':
				inQuotes = false
			}
			// any other quote inside a quoted field is literal
		case !inQuotes && c == '"' && fieldStart:
			inQuotes = true
		case !inQuotes && c == ',':
			fieldStart = true
			continue
		case !inQuotes && (c == ' ' || c == '\t') && fieldStart:
			continue
		}
		fieldStart = false
	}
	return inQuotes
}

func blank(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
