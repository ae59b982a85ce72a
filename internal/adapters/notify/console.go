package notify

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"

	"github.com/alejandrodnm/tradejournal/internal/domain"
	"github.com/alejandrodnm/tradejournal/internal/fields"
)

const (
	defaultMaxDiagnostics = 10
	maxDiagnosticLen      = 120
)

// Console implementa ports.Reporter.
type Console struct {
	out            io.Writer
	table          bool // imprime la tabla de trades de cada fichero
	maxDiagnostics int  // cuántos diagnósticos se listan antes de truncar
}

// NewConsole crea un reporter que escribe a stdout.
func NewConsole(table bool, maxDiagnostics int) *Console {
	return NewConsoleWriter(os.Stdout, table, maxDiagnostics)
}

// NewConsoleWriter crea un reporter sobre cualquier writer (tests).
func NewConsoleWriter(w io.Writer, table bool, maxDiagnostics int) *Console {
	if maxDiagnostics <= 0 {
		maxDiagnostics = defaultMaxDiagnostics
	}
	return &Console{out: w, table: table, maxDiagnostics: maxDiagnostics}
}

// Report imprime un bloque por fichero: resumen de éxito (con el número de
// diagnósticos) si hubo trades, o el fallo con los diagnósticos truncados si no.
func (c *Console) Report(_ context.Context, results []domain.ImportResult) error {
	if len(results) == 0 {
		fmt.Fprintln(c.out, "no files imported")
		return nil
	}

	for _, res := range results {
		if res.OK() {
			c.printSuccess(res)
		} else {
			c.printFailure(res)
		}
	}

	if len(results) > 1 {
		c.printTotals(results)
	}
	return nil
}

// printSuccess imprime lo esencial en 1 línea + tabla opcional.
func (c *Console) printSuccess(res domain.ImportResult) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "OK   %s [%s] %d trades imported, net %s, %d/%d wins",
		res.Source, res.Dialect, len(res.Trades),
		fields.FormatAccounting(res.NetProfit()), res.Wins(), len(res.Trades))
	if n := len(res.Diagnostics); n > 0 {
		fmt.Fprintf(&sb, " (%d %s)", n, plural(n, "diagnostic", "diagnostics"))
	}
	fmt.Fprintln(c.out, sb.String())

	if c.table {
		c.printTrades(res.Trades)
		c.printDiagnostics(res.Diagnostics)
	}
}

// printFailure lista los diagnósticos: sin trades no hay nada más que mostrar.
func (c *Console) printFailure(res domain.ImportResult) {
	fmt.Fprintf(c.out, "FAIL %s: no trades imported\n", res.Source)
	c.printDiagnostics(res.Diagnostics)
}

func (c *Console) printDiagnostics(diags []string) {
	shown := diags
	if len(shown) > c.maxDiagnostics {
		shown = shown[:c.maxDiagnostics]
	}
	for _, d := range shown {
		fmt.Fprintf(c.out, "  - %s\n", truncate(d, maxDiagnosticLen))
	}
	if rest := len(diags) - len(shown); rest > 0 {
		fmt.Fprintf(c.out, "  ... and %d more\n", rest)
	}
}

// printTrades imprime la tabla de trades reconstruidos.
func (c *Console) printTrades(trades []domain.Trade) {
	table := tablewriter.NewWriter(c.out)
	table.Header("#", "Date", "Symbol", "Dir", "Qty", "Entry", "Exit", "In", "Out", "Profit", "Fees")

	for i, t := range trades {
		table.Append(
			fmt.Sprintf("%d", i+1),
			t.Date.Format("2006-01-02"),
			t.Symbol,
			string(t.Direction),
			t.Contracts.String(),
			t.EntryPrice.String(),
			t.ExitPrice.String(),
			t.TimeIn.Format("15:04:05"),
			t.TimeOut.Format("15:04:05"),
			fields.FormatAccounting(t.Profit),
			fields.FormatAccounting(t.Fees),
		)
	}
	table.Render()
}

// printTotals resume un import de varios ficheros.
func (c *Console) printTotals(results []domain.ImportResult) {
	var trades, diags, failed int
	var combined domain.ImportResult
	for _, res := range results {
		trades += len(res.Trades)
		diags += len(res.Diagnostics)
		if !res.OK() {
			failed++
		}
		combined.Trades = append(combined.Trades, res.Trades...)
	}
	fmt.Fprintf(c.out, "\n%d files, %d failed, %d trades, net %s, %d diagnostics\n",
		len(results), failed, trades, fields.FormatAccounting(combined.NetProfit()), diags)
}

// PrintHistory imprime el historial de imports guardado.
func (c *Console) PrintHistory(records []domain.ImportRecord) {
	if len(records) == 0 {
		fmt.Fprintln(c.out, "no imports recorded")
		return
	}

	table := tablewriter.NewWriter(c.out)
	table.Header("When", "Source", "Dialect", "Trades", "Diagnostics", "Net")
	for _, r := range records {
		table.Append(
			r.ImportedAt.Format("2006-01-02 15:04"),
			truncate(r.Source, 40),
			string(r.Dialect),
			fmt.Sprintf("%d", r.Trades),
			fmt.Sprintf("%d", r.Diagnostics),
			r.NetProfit,
		)
	}
	table.Render()
}

// truncate corta s a maxLen bytes como máximo sin partir una runa.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
