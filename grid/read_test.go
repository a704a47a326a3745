package grid

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/spangrid/htmldoc"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/span"
)

const scoresHTML = `<html><body>
<table id="scores">
	<thead>
		<tr><th rowspan="2">Name</th><th colspan="2">Score</th></tr>
		<tr><th>Math</th><th>Art <span hidden>(beta)</span></th></tr>
	</thead>
	<tbody>
		<tr><td rowspan="2">Ann</td><td>90</td><td>80</td></tr>
		<tr><td>70</td><td>60</td></tr>
		<tr><td>Bob</td><td colspan="2">absent</td></tr>
	</tbody>
</table>
</body></html>`

func rowsOf(t *testing.T, html, selector string) []markup.Element {
	t.Helper()

	doc, err := htmldoc.OpenString(html)
	require.NoError(t, err)

	rows, err := markup.All(doc.Root(), selector)
	require.NoError(t, err)
	return rows
}

func TestReadHeader(t *testing.T) {
	rows := rowsOf(t, scoresHTML, "#scores thead tr")

	got, err := ReadHeader(context.Background(), rows, "th, td", DefaultHeaderOptions())
	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"Name", "Score", "Score__C1"},
		{"Name", "Math", "Art"},
	}, got)
}

func TestReadHeader_RawMode(t *testing.T) {
	rows := rowsOf(t, scoresHTML, "#scores thead tr")

	opts := DefaultHeaderOptions()
	opts.ContentMode = markup.Raw
	got, err := ReadHeader(context.Background(), rows, "th, td", opts)
	require.NoError(t, err)
	assert.Equal(t, Row{"Name", "Math", "Art (beta)"}, got[1])
}

func TestReadBody(t *testing.T) {
	rows := rowsOf(t, scoresHTML, "#scores tbody tr")

	got, err := ReadBody(context.Background(), rows, "td, th", DefaultBodyOptions())
	require.NoError(t, err)
	assert.Equal(t, Grid{
		{"Ann", "90", "80"},
		{"Ann", "70", "60"},
		{"Bob", "absent", "absent"},
	}, got)
}

func TestReadBody_ConcurrentReadsKeepOrder(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("<table><tbody><tr>")
	for i := 0; i < 50; i++ {
		fmt.Fprintf(&sb, "<td>%d</td>", i)
	}
	sb.WriteString("</tr></tbody></table>")

	rows := rowsOf(t, sb.String(), "tbody tr")

	for _, limit := range []int{1, 4, 64} {
		opts := DefaultBodyOptions()
		opts.Concurrency = limit

		got, err := ReadBody(context.Background(), rows, "td", opts)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Len(t, got[0], 50)
		for i, v := range got[0] {
			assert.Equal(t, fmt.Sprint(i), v)
		}
	}
}

func TestReadBody_InvalidSpan(t *testing.T) {
	html := `<table><tbody>
		<tr><td>ok</td></tr>
		<tr><td rowspan="0">bad</td></tr>
	</tbody></table>`
	rows := rowsOf(t, html, "tbody tr")

	_, err := ReadBody(context.Background(), rows, "td", DefaultBodyOptions())
	require.Error(t, err)
	assert.ErrorIs(t, err, span.ErrInvalidAttribute)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, SectionBody, rowErr.Section)
	assert.Equal(t, 1, rowErr.Row)
	assert.Equal(t, "td", rowErr.Selector)
	assert.Contains(t, err.Error(), `"0"`)

	opts := DefaultBodyOptions()
	opts.SpanMode = span.Lenient
	got, err := ReadBody(context.Background(), rows, "td", opts)
	require.NoError(t, err)
	assert.Equal(t, Grid{{"ok"}, {"bad"}}, got)
}

func TestReadHeader_InvalidSelector(t *testing.T) {
	rows := rowsOf(t, scoresHTML, "#scores thead tr")

	_, err := ReadHeader(context.Background(), rows, "th[", DefaultHeaderOptions())
	require.Error(t, err)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 0, rowErr.Row)
}

func TestReadBody_CancelledContext(t *testing.T) {
	rows := rowsOf(t, scoresHTML, "#scores tbody tr")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadBody(ctx, rows, "td", DefaultBodyOptions())
	assert.ErrorIs(t, err, context.Canceled)
}
