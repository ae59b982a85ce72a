// Package importer runs a broker export through detection, parsing and
// reconciliation and collects the trades and diagnostics for the caller.
package importer

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/time/rate"

	"github.com/alejandrodnm/tradejournal/internal/csvio"
	"github.com/alejandrodnm/tradejournal/internal/dialect"
	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/parser"
	"github.com/alejandrodnm/tradejournal/internal/reconcile"
)

// loggedDiagnostics caps how many diagnostics of one file are logged at warn level;
// the rest still reach the result.
const loggedDiagnostics = 5

// Import reconciles one file held in memory. It never fails: problems with the input
// are reported as diagnostics, and a file that cannot be used at all yields zero
// trades and a single diagnostic.
func Import(source string, data []byte) domain.ImportResult {
	res := run(source, data)
	logResult(res)
	return res
}

func run(source string, data []byte) domain.ImportResult {
	agg := newAggregator(source)

	table, err := csvio.Parse(data)
	if err != nil {
		if errors.Is(err, csvio.ErrNoData) {
			return agg.fatal(err.Error())
		}
		return agg.fatal(fmt.Sprintf("row 1: cannot read file: %v", err))
	}

	d := dialect.Detect(table.Header.Fields)
	agg.dialect(d)

	cols, err := dialect.Resolve(d, table.Header.Fields)
	if err != nil {
		return agg.fatal(fmt.Sprintf("row 1: %v", err))
	}

	switch d {
	case domain.DialectFillStream:
		fills, diags := parser.Fills(table.Rows, cols)
		agg.diagnostics(diags...)

		trades, open := reconcile.Run(fills)
		agg.trades(trades)
		for _, lot := range open {
			agg.diagnostics(lot.Warning())
		}
	default:
		trades, diags := parser.Paired(table.Rows, cols)
		agg.diagnostics(diags...)
		agg.trades(trades)
	}

	return agg.result()
}

// ImportReader is Import over a reader.
func ImportReader(source string, r io.Reader) domain.ImportResult {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return newAggregator(source).fatal(fmt.Sprintf("cannot read %s: %v", source, err))
	}
	return Import(source, buf.Bytes())
}

// ImportFile reads and imports a file from disk. The result's Source is the base
// name of the file.
func ImportFile(path string) domain.ImportResult {
	source := filepath.Base(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return newAggregator(source).fatal(fmt.Sprintf("cannot read %s: %v", path, err))
	}
	return Import(source, data)
}

func logResult(res domain.ImportResult) {
	slog.Info("import complete",
		"source", res.Source,
		"dialect", res.Dialect,
		"trades", len(res.Trades),
		"diagnostics", len(res.Diagnostics),
	)

	sometimes := rate.Sometimes{First: loggedDiagnostics}
	for _, msg := range res.Diagnostics {
		warned := false
		sometimes.Do(func() {
			warned = true
			slog.Warn("import diagnostic", "source", res.Source, "msg", msg)
		})
		if !warned {
			slog.Debug("import diagnostic", "source", res.Source, "msg", msg)
		}
	}
}
