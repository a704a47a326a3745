package spangrid

import (
	"github.com/tsawler/spangrid/grid"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/span"
)

// Default selectors.
const (
	DefaultTableSelector      = "table"
	DefaultHeaderRowSelector  = "thead tr"
	DefaultBodyRowSelector    = "tbody tr"
	DefaultHeaderCellSelector = "th, td"
	DefaultBodyCellSelector   = "td, th"
)

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Selectors
	table       string
	headerRows  string
	bodyRows    string
	headerCells string
	bodyCells   string

	// Reading
	contentMode markup.ContentMode
	spanMode    span.Mode
	concurrency int

	// Header shaping
	replaceEmpty     bool
	emptyPlaceholder string
	suffixDuplicates bool
	colspan          grid.ColspanOptions
	rowSpan          grid.RowSpanPolicy
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		table:            DefaultTableSelector,
		headerRows:       DefaultHeaderRowSelector,
		bodyRows:         DefaultBodyRowSelector,
		headerCells:      DefaultHeaderCellSelector,
		bodyCells:        DefaultBodyCellSelector,
		contentMode:      markup.Rendered,
		spanMode:         span.Strict,
		concurrency:      grid.DefaultConcurrency,
		emptyPlaceholder: grid.DefaultEmptyPlaceholder,
		rowSpan:          grid.ResolveRowSpan,
	}
}

// clone creates a copy of ExtractOptions. Every field is a value, so a plain
// copy is already deep.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}

// header returns the options passed to grid.ReadHeader.
func (o ExtractOptions) header() grid.HeaderOptions {
	return grid.HeaderOptions{
		ContentMode:      o.contentMode,
		SpanMode:         o.spanMode,
		ReplaceEmpty:     o.replaceEmpty,
		EmptyPlaceholder: o.emptyPlaceholder,
		SuffixDuplicates: o.suffixDuplicates,
		Colspan:          o.colspan,
		RowSpan:          o.rowSpan,
	}
}

// body returns the options passed to grid.ReadBody.
func (o ExtractOptions) body() grid.BodyOptions {
	return grid.BodyOptions{
		ContentMode: o.contentMode,
		SpanMode:    o.spanMode,
		Concurrency: o.concurrency,
	}
}
