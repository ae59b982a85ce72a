package importer

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/alejandrodnm/tradejournal/internal/domain"
)

// tradeNamespace scopes the deterministic trade IDs, so importing the same file
// twice yields the same IDs.
var tradeNamespace = uuid.MustParse("6f1c7c1e-4f3a-4d8b-9a52-3f0c1b7e2d10")

// aggregator accumulates the outcome of one file in the order it is produced.
type aggregator struct {
	res domain.ImportResult
}

func newAggregator(source string) *aggregator {
	return &aggregator{res: domain.ImportResult{
		Source:      source,
		Trades:      []domain.Trade{},
		Diagnostics: []string{},
	}}
}

func (a *aggregator) dialect(d domain.Dialect) {
	a.res.Dialect = d
}

func (a *aggregator) trades(ts []domain.Trade) {
	for _, t := range ts {
		t.Source = a.res.Source
		t.ID = tradeID(a.res.Source, len(a.res.Trades), t)
		a.res.Trades = append(a.res.Trades, t)
	}
}

func (a *aggregator) diagnostics(msgs ...string) {
	a.res.Diagnostics = append(a.res.Diagnostics, msgs...)
}

// fatal discards anything collected so far: a fatal file yields no trades and
// exactly one diagnostic.
func (a *aggregator) fatal(msg string) domain.ImportResult {
	a.res.Trades = []domain.Trade{}
	a.res.Diagnostics = []string{msg}
	return a.res
}

func (a *aggregator) result() domain.ImportResult {
	return a.res
}

func tradeID(source string, seq int, t domain.Trade) string {
	key := fmt.Sprintf("%s|%d|%s|%s|%s|%s|%s",
		source, seq, t.Symbol, t.Direction,
		t.TimeIn.Format("20060102T150405"), t.TimeOut.Format("20060102T150405"), t.Contracts)
	return uuid.NewSHA1(tradeNamespace, []byte(key)).String()
}
