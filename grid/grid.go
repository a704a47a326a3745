package grid

import (
	"slices"

	"github.com/tsawler/spangrid/cell"
	"github.com/tsawler/spangrid/span"
)

// RawCell is one physical cell as read from the markup.
type RawCell struct {
	Text    string
	RowSpan int
	ColSpan int
}

// Row is one logical row of resolved values.
type Row []string

// Grid is an ordered sequence of logical rows.
type Grid []Row

// Equal reports whether g and other have the same rows with the same values.
func (g Grid) Equal(other Grid) bool {
	return slices.EqualFunc(g, other, func(a, b Row) bool {
		return slices.Equal(a, b)
	})
}

// Width returns the length of the widest row.
func (g Grid) Width() int {
	width := 0
	for _, row := range g {
		width = max(width, len(row))
	}
	return width
}

// Pad returns a copy of g where every row is extended to Width with fill.
func (g Grid) Pad(fill string) Grid {
	width := g.Width()
	out := make(Grid, len(g))
	for i, row := range g {
		padded := make(Row, width)
		copy(padded, row)
		for j := len(row); j < width; j++ {
			padded[j] = fill
		}
		out[i] = padded
	}
	return out
}

// Clone returns a deep copy of g.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for i, row := range g {
		out[i] = slices.Clone(row)
	}
	return out
}

// Strings returns g as plain string slices, sharing row storage.
func (g Grid) Strings() [][]string {
	if g == nil {
		return nil
	}
	out := make([][]string, len(g))
	for i, row := range g {
		out[i] = row
	}
	return out
}

// Last returns the last row, or nil for an empty grid.
func (g Grid) Last() Row {
	if len(g) == 0 {
		return nil
	}
	return g[len(g)-1]
}

// Cast converts every value with cell.Cast.
func (g Grid) Cast() [][]any {
	out := make([][]any, len(g))
	for i, row := range g {
		out[i] = cell.CastRow(row)
	}
	return out
}

// normalizeSpans clamps spans into [1, span.MaxRowSpan] and
// [1, span.MaxColSpan]. Out of range values can only come from callers
// building RawCells by hand.
func normalizeSpans(c RawCell) RawCell {
	c.RowSpan = min(max(c.RowSpan, 1), span.MaxRowSpan)
	c.ColSpan = min(max(c.ColSpan, 1), span.MaxColSpan)
	return c
}
