package grid

import (
	"context"

	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/span"
)

// DefaultConcurrency bounds concurrent cell reads within one body row.
const DefaultConcurrency = 8

// BodyOptions configures body materialization.
type BodyOptions struct {
	ContentMode markup.ContentMode
	SpanMode    span.Mode

	// Concurrency bounds the cell reads issued at once for one row.
	// Values below 1 use DefaultConcurrency.
	Concurrency int
}

// DefaultBodyOptions returns the default body options.
func DefaultBodyOptions() BodyOptions {
	return BodyOptions{
		ContentMode: markup.Rendered,
		SpanMode:    span.Strict,
		Concurrency: DefaultConcurrency,
	}
}

// spannedStore holds values projected by rowspans into rows below their
// origin, keyed by row then column.
type spannedStore map[int]map[int]string

func (s spannedStore) put(row, col int, value string) {
	cols, ok := s[row]
	if !ok {
		cols = make(map[int]string)
		s[row] = cols
	}
	cols[col] = value
}

// drain removes and returns the projections for row.
func (s spannedStore) drain(row int) map[int]string {
	cols := s[row]
	delete(s, row)
	return cols
}

// Body materializes body rows. A row-spanned value is projected straight
// into each row it covers; physical cells are placed in the columns the
// projections leave free. Projections past the last row are dropped.
func Body(rows [][]RawCell) Grid {
	store := make(spannedStore)
	out := make(Grid, 0, len(rows))

	for r, row := range rows {
		projected := store.drain(r)
		physical := make(map[int]string, len(row))
		width := 0

		col := 0
		for _, raw := range row {
			raw = normalizeSpans(raw)
			for isOccupied(col, projected, physical) {
				col++
			}
			for k := 0; k < raw.ColSpan; k++ {
				physical[col+k] = raw.Text
				for s := 1; s < min(raw.RowSpan, len(rows)-r); s++ {
					store.put(r+s, col+k, raw.Text)
				}
			}
			col += raw.ColSpan
			width = max(width, col)
		}

		for c := range projected {
			width = max(width, c+1)
		}

		values := make(Row, width)
		for c := range values {
			if v, ok := physical[c]; ok {
				values[c] = v
			} else {
				values[c] = projected[c]
			}
		}
		out = append(out, values)
	}

	return out
}

func isOccupied(col int, projected, physical map[int]string) bool {
	if _, ok := physical[col]; ok {
		return true
	}
	_, ok := projected[col]
	return ok
}

// ReadBody reads body rows from markup and materializes them.
func ReadBody(ctx context.Context, rows []markup.Element, cellSelector string, opts BodyOptions) (Grid, error) {
	limit := opts.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}
	raws, err := readRows(ctx, SectionBody, rows, cellSelector, opts.ContentMode, opts.SpanMode, limit)
	if err != nil {
		return nil, err
	}
	return Body(raws), nil
}
