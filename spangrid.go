// Package spangrid provides a fluent API for reading HTML tables whose cells
// span several rows or columns into rectangular grids.
//
// Basic usage:
//
//	records, err := spangrid.Open("report.html").Records(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	header, err := spangrid.Open("report.html").
//	    Table("table#scores").
//	    SuffixDuplicates().
//	    ReplaceEmptyCells("").
//	    Headers(ctx)
//
// Waiting for a table that is still being rewritten:
//
//	snap, err := spangrid.Open("live.html").WaitForStable(ctx, poll.StableOptions{
//	    StabilityDuration: 2 * time.Second,
//	    CheckInterval:     200 * time.Millisecond,
//	    Timeout:           time.Minute,
//	})
//
// For finer control, the grid, poll and htmldoc packages are available
// directly.
package spangrid

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tsawler/spangrid/htmldoc"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/model"
)

// Record is one body row keyed by column name.
type Record = model.Record

// Open returns an Extractor reading an HTML file. The file is parsed again
// on every terminal operation, so a file rewritten between calls is seen.
//
// Example:
//
//	rows, err := spangrid.Open("report.html").Body(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader returns an Extractor over HTML read from r. The markup is
// parsed once, immediately; a parse error is reported by the first terminal
// operation.
//
// Example:
//
//	resp, err := http.Get(url)
//	...
//	cols, err := spangrid.FromReader(resp.Body).Columns(ctx)
func FromReader(r io.Reader) *Extractor {
	e := &Extractor{options: defaultOptions(), source: "reader"}
	doc, err := htmldoc.OpenReader(r)
	if err != nil {
		e.err = err
		return e
	}
	e.root = doc.Root()
	return e
}

// FromString returns an Extractor over HTML held in a string.
func FromString(s string) *Extractor {
	e := FromReader(strings.NewReader(s))
	e.source = "string"
	return e
}

// FromElement returns an Extractor rooted at an existing markup element.
// Live backends are re-read on every terminal operation.
func FromElement(el markup.Element) *Extractor {
	return &Extractor{
		root:    el,
		source:  el.Path(),
		options: defaultOptions(),
	}
}

// FromSelection returns an Extractor rooted at a goquery selection.
func FromSelection(sel *goquery.Selection) *Extractor {
	return FromElement(htmldoc.FromSelection(sel, "selection"))
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	cols := spangrid.Must(spangrid.Open("report.html").Columns(ctx))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
