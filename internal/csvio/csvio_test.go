package csvio_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/tradejournal/internal/csvio"
)

func TestParse_BOMQuotesAndCRLF(t *testing.T) {
	input := "\xEF\xBB\xBFsymbol,qty,pnl\r\n" +
		"MESZ4,1,\"$1,250.00\"\r\n" +
		"\r\n" +
		"MNQZ4,2,(30.00)\r\n"

	table, err := csvio.Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"symbol", "qty", "pnl"}, table.Header.Fields)
	assert.Equal(t, 1, table.Header.Num)
	require.Len(t, table.Rows, 2)

	assert.Equal(t, 2, table.Rows[0].Num)
	assert.Equal(t, []string{"MESZ4", "1", "$1,250.00"}, table.Rows[0].Fields)

	// the blank line is not counted
	assert.Equal(t, 3, table.Rows[1].Num)
	assert.Equal(t, "(30.00)", table.Rows[1].Fields[2])
}

func TestParse_KeepsRaggedRows(t *testing.T) {
	table, err := csvio.Read(strings.NewReader("a,b,c\n1,2\n1,2,3,4\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Len(t, table.Rows[0].Fields, 2)
	assert.Len(t, table.Rows[1].Fields, 4)
}

func TestParse_WhitespaceOnlyLinesAreBlank(t *testing.T) {
	table, err := csvio.Parse([]byte("a,b\n   \n , \n1,2\n"))
	require.NoError(t, err)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, 2, table.Rows[0].Num)
}

func TestParse_NoData(t *testing.T) {
	for _, input := range []string{"", "\n\n", "\xEF\xBB\xBF", "a,b,c\n", "a,b,c\n\n  \n"} {
		_, err := csvio.Parse([]byte(input))
		assert.True(t, errors.Is(err, csvio.ErrNoData), "input=%q err=%v", input, err)
	}
}

func TestParse_UnclosedQuoteStaysOnItsRow(t *testing.T) {
	input := "symbol,qty,pnl\n" +
		"MESZ4,1,\"$5.00\n" +
		"MESZ4,2,\"$1,250.00\"\n" +
		"MNQZ4,3,\"a \"\"quoted\"\" note\"\n"

	table, err := csvio.Parse([]byte(input))
	require.NoError(t, err)
	require.Len(t, table.Rows, 3)

	assert.Equal(t, 2, table.Rows[0].Num)
	require.Error(t, table.Rows[0].Err)
	assert.Nil(t, table.Rows[0].Fields)

	assert.NoError(t, table.Rows[1].Err)
	assert.Equal(t, 3, table.Rows[1].Num)
	assert.Equal(t, []string{"MESZ4", "2", "$1,250.00"}, table.Rows[1].Fields)

	assert.NoError(t, table.Rows[2].Err)
	assert.Equal(t, `a "quoted" note`, table.Rows[2].Fields[2])
}

func TestParse_UnclosedQuoteInHeader(t *testing.T) {
	_, err := csvio.Parse([]byte("symbol,\"qty,pnl\nMESZ4,1,2\n"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, csvio.ErrNoData))
}
