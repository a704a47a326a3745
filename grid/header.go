package grid

import (
	"context"
	"fmt"
	"slices"

	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/span"
)

// DefaultEmptyPlaceholder replaces empty header cells when ReplaceEmpty is set.
const DefaultEmptyPlaceholder = "{{Empty}}"

// RowSpanPolicy decides what happens to header cells with rowspan > 1.
type RowSpanPolicy int

const (
	// ResolveRowSpan repeats the cell in the rows it spans.
	ResolveRowSpan RowSpanPolicy = iota
	// RejectRowSpan fails with ErrHeaderRowSpan.
	RejectRowSpan
)

// ColspanOptions controls the synthetic columns produced by a colspan.
// The zero value keeps them and marks them with a __C<n> suffix.
type ColspanOptions struct {
	// Disabled drops the synthetic columns, keeping only the first.
	Disabled bool
	// NoSuffix keeps the synthetic columns with the plain cell text.
	NoSuffix bool
}

// HeaderOptions configures header materialization.
type HeaderOptions struct {
	ContentMode markup.ContentMode
	SpanMode    span.Mode

	// ReplaceEmpty substitutes EmptyPlaceholder for empty cells before
	// duplicate suffixing runs.
	ReplaceEmpty     bool
	EmptyPlaceholder string

	// SuffixDuplicates appends __D<n> to the n-th repeat of a name within
	// one row. Names carried down by a rowspan count as occurrences but
	// keep their text. Empty names are never suffixed.
	SuffixDuplicates bool

	Colspan ColspanOptions
	RowSpan RowSpanPolicy
}

// DefaultHeaderOptions returns the default header options.
func DefaultHeaderOptions() HeaderOptions {
	return HeaderOptions{
		ContentMode:      markup.Rendered,
		SpanMode:         span.Strict,
		EmptyPlaceholder: DefaultEmptyPlaceholder,
		RowSpan:          ResolveRowSpan,
	}
}

// headerCell is a logical header position before colspan options are applied.
type headerCell struct {
	text string
	// copy is 0 for the cell itself and n for its n-th colspan copy.
	copy int
}

// carry is a header value still owed to the rows below its origin.
type carry struct {
	cell      headerCell
	remaining int
}

// carryMap maps a logical column to the value a rowspan still occupies it with.
type carryMap map[int]*carry

// take consumes one row's worth of the carry at col.
func (m carryMap) take(col int) (headerCell, bool) {
	c, ok := m[col]
	if !ok {
		return headerCell{}, false
	}
	c.remaining--
	if c.remaining <= 0 {
		delete(m, col)
	}
	return c.cell, true
}

// Header materializes header rows. Rows are processed top to bottom and a
// carry map is threaded through them to resolve rowspans.
func Header(rows [][]RawCell, opts HeaderOptions) (Grid, error) {
	if opts.EmptyPlaceholder == "" {
		opts.EmptyPlaceholder = DefaultEmptyPlaceholder
	}

	carries := make(carryMap)
	out := make(Grid, 0, len(rows))

	for i, row := range rows {
		cells, err := headerRow(row, carries, opts)
		if err != nil {
			return nil, &RowError{Section: SectionHeader, Row: i, Err: err}
		}
		out = append(out, applyColspan(cells, opts.Colspan))
	}

	return out, nil
}

// headerRow builds one logical header row and updates carries in place.
func headerRow(row []RawCell, carries carryMap, opts HeaderOptions) ([]headerCell, error) {
	cells := make([]headerCell, 0, len(row))
	seen := make(map[string]int)
	col := 0

	flush := func() {
		for {
			c, ok := carries.take(col)
			if !ok {
				return
			}
			cells = append(cells, c)
			if opts.SuffixDuplicates && c.copy == 0 && c.text != "" {
				seen[c.text]++
			}
			col++
		}
	}

	for _, raw := range row {
		raw = normalizeSpans(raw)
		flush()

		if raw.RowSpan > 1 && opts.RowSpan == RejectRowSpan {
			return nil, fmt.Errorf("column %d %q spans %d rows: %w", col, raw.Text, raw.RowSpan, ErrHeaderRowSpan)
		}

		text := raw.Text
		if text == "" && opts.ReplaceEmpty {
			text = opts.EmptyPlaceholder
		}
		if opts.SuffixDuplicates && text != "" {
			text = disambiguate(text, seen)
		}

		for k := 0; k < raw.ColSpan; k++ {
			if k > 0 {
				// A colspan running into a column still owed to a rowspan
				// from above wins; the carry is spent for this row.
				carries.take(col)
			}
			hc := headerCell{text: text, copy: k}
			cells = append(cells, hc)
			if raw.RowSpan > 1 {
				carries[col] = &carry{cell: hc, remaining: raw.RowSpan - 1}
			}
			col++
		}
	}

	// Trailing carries cover a short row whose last cells come from above.
	flush()
	keys := make([]int, 0, len(carries))
	for k := range carries {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if key < col {
			continue
		}
		for col < key {
			cells = append(cells, headerCell{})
			col++
		}
		flush()
	}

	return cells, nil
}

// applyColspan turns logical header cells into a Row according to opts.
func applyColspan(cells []headerCell, opts ColspanOptions) Row {
	row := make(Row, 0, len(cells))
	for _, c := range cells {
		if c.copy == 0 {
			row = append(row, c.text)
			continue
		}
		switch {
		case opts.Disabled:
		case opts.NoSuffix:
			row = append(row, c.text)
		default:
			row = append(row, colspanName(c.text, c.copy))
		}
	}
	return row
}

// ReadHeader reads header rows from markup and materializes them.
func ReadHeader(ctx context.Context, rows []markup.Element, cellSelector string, opts HeaderOptions) (Grid, error) {
	raws, err := readRows(ctx, SectionHeader, rows, cellSelector, opts.ContentMode, opts.SpanMode, 1)
	if err != nil {
		return nil, err
	}
	return Header(raws, opts)
}
