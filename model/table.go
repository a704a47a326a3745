package model

import (
	"fmt"
	"strings"

	"github.com/tsawler/spangrid/cell"
)

// Record is one body row keyed by column name.
type Record map[string]any

// Table represents a materialized table.
type Table struct {
	// Source describes where the table was read from.
	Source  string
	Headers [][]string
	Columns []string
	Rows    [][]string
}

// NewTable creates a table whose columns are the last header row.
func NewTable(headers, rows [][]string) *Table {
	t := &Table{
		Headers: headers,
		Rows:    rows,
	}
	if len(headers) > 0 {
		t.Columns = headers[len(headers)-1]
	}
	return t
}

// RowCount returns the number of body rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the width of the widest header or body row.
func (t *Table) ColCount() int {
	count := len(t.Columns)
	for _, row := range t.Rows {
		count = max(count, len(row))
	}
	return count
}

// ColumnName returns the record key for column col. Columns past the header
// width are named column_<n>, 1-based.
func (t *Table) ColumnName(col int) string {
	if col >= 0 && col < len(t.Columns) {
		return t.Columns[col]
	}
	return fmt.Sprintf("column_%d", col+1)
}

// Records projects body rows into records of cast values. When two columns
// share a name the rightmost value wins.
func (t *Table) Records() []Record {
	records := make([]Record, 0, len(t.Rows))
	for _, row := range t.Rows {
		rec := make(Record, len(row))
		for j, v := range row {
			rec[t.ColumnName(j)] = cell.Cast(v)
		}
		records = append(records, rec)
	}
	return records
}

// ToMarkdown converts the table to markdown format. The column row is used as
// the markdown header and every row is padded to ColCount.
func (t *Table) ToMarkdown() string {
	width := t.ColCount()
	if width == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for j := 0; j < width; j++ {
			text := ""
			if j < len(row) {
				text = row[j]
			}
			sb.WriteString("| ")
			sb.WriteString(escapeMarkdown(text))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	header := make([]string, width)
	for j := range header {
		if j < len(t.Columns) {
			header[j] = t.Columns[j]
		}
	}
	writeRow(header)

	for j := 0; j < width; j++ {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	for _, row := range t.Rows {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format: every header row, then the body.
func (t *Table) ToCSV() string {
	var sb strings.Builder
	writeRow := func(row []string) {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(text, ",\"\n\r") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}

	for _, row := range t.Headers {
		writeRow(row)
	}
	for _, row := range t.Rows {
		writeRow(row)
	}
	return sb.String()
}

// escapeMarkdown escapes characters that break markdown table cells.
func escapeMarkdown(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	text = strings.ReplaceAll(text, "\r", "")
	return strings.ReplaceAll(text, "\n", " ")
}
