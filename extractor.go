package spangrid

import (
	"context"
	"fmt"
	"sync"

	jsoniter "github.com/json-iterator/go"

	"github.com/tsawler/spangrid/grid"
	"github.com/tsawler/spangrid/htmldoc"
	"github.com/tsawler/spangrid/logger"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/model"
	"github.com/tsawler/spangrid/poll"
	"github.com/tsawler/spangrid/span"
)

// Extractor provides a fluent interface for materializing one HTML table.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source: a file re-parsed per evaluation, or a fixed root element
	filename string
	root     markup.Element
	source   string

	// Configuration
	options ExtractOptions
	logger  logger.Logger

	// Accumulated error (fail-fast)
	err error
}

// Snapshot is one evaluation of the table.
type Snapshot struct {
	Headers grid.Grid
	Body    grid.Grid
}

// Columns returns the last header row, which names the body columns.
func (s *Snapshot) Columns() []string {
	return s.Headers.Last()
}

// Grid returns the header rows followed by the body rows.
func (s *Snapshot) Grid() grid.Grid {
	out := make(grid.Grid, 0, len(s.Headers)+len(s.Body))
	out = append(out, s.Headers...)
	return append(out, s.Body...)
}

// Table returns the snapshot as a model table.
func (s *Snapshot) Table() *model.Table {
	return model.NewTable(s.Headers.Strings(), s.Body.Strings())
}

// Condition is evaluated against each snapshot taken by WaitUntil. A nil
// error means the condition holds.
type Condition func(ctx context.Context, s *Snapshot) error

// clone creates a shallow copy of the Extractor with a copy of options.
// This ensures immutability - each chain method returns a new instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename: e.filename,
		root:     e.root,
		source:   e.source,
		options:  e.options.clone(),
		logger:   e.logger,
		err:      e.err,
	}
}

// describe names the source in errors and logs.
func (e *Extractor) describe() string {
	if e.filename != "" {
		return e.filename
	}
	if e.source != "" {
		return e.source
	}
	return "document"
}

// log returns the configured logger, or a no-op logger.
func (e *Extractor) log() logger.Logger {
	return logger.OrNop(e.logger)
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Table sets the selector locating the table. The first match is used.
//
// Example:
//
//	rows, err := spangrid.Open("page.html").Table("#prices").Body(ctx)
func (e *Extractor) Table(selector string) *Extractor {
	newExt := e.clone()
	newExt.options.table = selector
	return newExt
}

// HeaderRows sets the selector for header rows, relative to the table.
func (e *Extractor) HeaderRows(selector string) *Extractor {
	newExt := e.clone()
	newExt.options.headerRows = selector
	return newExt
}

// BodyRows sets the selector for body rows, relative to the table.
func (e *Extractor) BodyRows(selector string) *Extractor {
	newExt := e.clone()
	newExt.options.bodyRows = selector
	return newExt
}

// HeaderCells sets the selector for cells within a header row.
func (e *Extractor) HeaderCells(selector string) *Extractor {
	newExt := e.clone()
	newExt.options.headerCells = selector
	return newExt
}

// BodyCells sets the selector for cells within a body row.
func (e *Extractor) BodyCells(selector string) *Extractor {
	newExt := e.clone()
	newExt.options.bodyCells = selector
	return newExt
}

// Content selects how cell text is read. The default is markup.Rendered.
//
// Example:
//
//	rows, err := spangrid.Open("page.html").Content(markup.Raw).Body(ctx)
func (e *Extractor) Content(mode markup.ContentMode) *Extractor {
	newExt := e.clone()
	newExt.options.contentMode = mode
	return newExt
}

// ReplaceEmptyCells substitutes placeholder for empty header cells. An empty
// placeholder selects grid.DefaultEmptyPlaceholder.
func (e *Extractor) ReplaceEmptyCells(placeholder string) *Extractor {
	newExt := e.clone()
	newExt.options.replaceEmpty = true
	if placeholder == "" {
		placeholder = grid.DefaultEmptyPlaceholder
	}
	newExt.options.emptyPlaceholder = placeholder
	return newExt
}

// SuffixDuplicates makes repeated header names unique within a row by
// appending __D1, __D2 and so on.
func (e *Extractor) SuffixDuplicates() *Extractor {
	newExt := e.clone()
	newExt.options.suffixDuplicates = true
	return newExt
}

// DisableColspan keeps only the first column of a header cell with colspan.
func (e *Extractor) DisableColspan() *Extractor {
	newExt := e.clone()
	newExt.options.colspan.Disabled = true
	return newExt
}

// DisableColspanSuffix repeats the plain header text in columns covered by
// a colspan instead of appending __C<n>.
func (e *Extractor) DisableColspanSuffix() *Extractor {
	newExt := e.clone()
	newExt.options.colspan.NoSuffix = true
	return newExt
}

// LenientSpans treats invalid rowspan and colspan values as 1 instead of
// failing.
func (e *Extractor) LenientSpans() *Extractor {
	newExt := e.clone()
	newExt.options.spanMode = span.Lenient
	return newExt
}

// RejectHeaderRowSpan fails header materialization with
// grid.ErrHeaderRowSpan when a header cell spans rows.
func (e *Extractor) RejectHeaderRowSpan() *Extractor {
	newExt := e.clone()
	newExt.options.rowSpan = grid.RejectRowSpan
	return newExt
}

// Concurrency bounds the cell reads issued at once for one body row.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// WithLogger sets the logger used for debug output and polling.
func (e *Extractor) WithLogger(l logger.Logger) *Extractor {
	newExt := e.clone()
	newExt.logger = l
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// Headers materializes the header rows.
func (e *Extractor) Headers(ctx context.Context) (grid.Grid, error) {
	table, err := e.table()
	if err != nil {
		return nil, err
	}
	return e.headers(ctx, table)
}

// Body materializes the body rows.
func (e *Extractor) Body(ctx context.Context) (grid.Grid, error) {
	table, err := e.table()
	if err != nil {
		return nil, err
	}
	return e.body(ctx, table)
}

// Columns returns the last header row, which names the body columns.
func (e *Extractor) Columns(ctx context.Context) ([]string, error) {
	headers, err := e.Headers(ctx)
	if err != nil {
		return nil, err
	}
	return headers.Last(), nil
}

// Snapshot materializes headers and body from one parse of the source.
func (e *Extractor) Snapshot(ctx context.Context) (*Snapshot, error) {
	table, err := e.table()
	if err != nil {
		return nil, err
	}

	headers, err := e.headers(ctx, table)
	if err != nil {
		return nil, err
	}
	body, err := e.body(ctx, table)
	if err != nil {
		return nil, err
	}

	e.log().Debug("Materialized table",
		logger.String("source", e.describe()),
		logger.Int("header_rows", len(headers)),
		logger.Int("body_rows", len(body)),
	)
	return &Snapshot{Headers: headers, Body: body}, nil
}

// Records projects body rows into records keyed by the last header row,
// with scalar values cast. It returns ErrEmptyResult when there are no
// header columns or no body rows.
//
// Example:
//
//	records, err := spangrid.Open("scores.html").Records(ctx)
//	// records[0]["Math"] == 90.0
func (e *Extractor) Records(ctx context.Context) ([]Record, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	if len(snap.Columns()) == 0 || len(snap.Body) == 0 {
		return nil, fmt.Errorf("%s: %w", e.describe(), ErrEmptyResult)
	}
	return snap.Table().Records(), nil
}

// Model returns the table as a model.Table for export.
func (e *Extractor) Model(ctx context.Context) (*model.Table, error) {
	snap, err := e.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	t := snap.Table()
	t.Source = e.describe()
	return t, nil
}

// JSON returns Records encoded as a JSON array.
func (e *Extractor) JSON(ctx context.Context) ([]byte, error) {
	records, err := e.Records(ctx)
	if err != nil {
		return nil, err
	}
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(records)
}

// WaitUntil re-evaluates the table until cond accepts a snapshot, and
// returns that snapshot. Evaluation errors count as failed attempts.
//
// Example:
//
//	snap, err := spangrid.Open("live.html").WaitUntil(ctx, poll.DefaultOptions(),
//	    func(ctx context.Context, s *spangrid.Snapshot) error {
//	        if len(s.Body) < 10 {
//	            return fmt.Errorf("only %d rows", len(s.Body))
//	        }
//	        return nil
//	    })
func (e *Extractor) WaitUntil(ctx context.Context, opts poll.Options, cond Condition) (*Snapshot, error) {
	if opts.Logger == nil {
		opts.Logger = e.logger
	}

	var accepted *Snapshot
	err := poll.Until(ctx, func(ctx context.Context) error {
		snap, err := e.Snapshot(ctx)
		if err != nil {
			return err
		}
		if err := cond(ctx, snap); err != nil {
			return err
		}
		accepted = snap
		return nil
	}, opts)
	if err != nil {
		return nil, err
	}
	return accepted, nil
}

// WaitForStable re-evaluates the table until its headers and body stay
// unchanged for opts.StabilityDuration, and returns the stable snapshot.
func (e *Extractor) WaitForStable(ctx context.Context, opts poll.StableOptions) (*Snapshot, error) {
	if opts.Source == "" {
		opts.Source = e.describe()
	}
	if opts.Logger == nil {
		opts.Logger = e.logger
	}

	var (
		mu   sync.Mutex
		last *Snapshot
	)
	err := poll.WaitForStable(ctx, func(ctx context.Context) (grid.Grid, error) {
		snap, err := e.Snapshot(ctx)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		last = snap
		mu.Unlock()
		return snap.Grid(), nil
	}, opts)
	if err != nil {
		return nil, err
	}

	mu.Lock()
	defer mu.Unlock()
	return last, nil
}

// ============================================================================
// Internal
// ============================================================================

// resolveRoot returns the element the table selector is applied to.
func (e *Extractor) resolveRoot() (markup.Element, error) {
	if e.err != nil {
		return nil, e.err
	}
	if e.root != nil {
		return e.root, nil
	}
	if e.filename == "" {
		return nil, ErrNoSource
	}

	doc, err := htmldoc.Open(e.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open HTML: %w", err)
	}
	return doc.Root(), nil
}

// table locates the first element matching the table selector.
func (e *Extractor) table() (markup.Element, error) {
	root, err := e.resolveRoot()
	if err != nil {
		return nil, err
	}

	n, err := root.Count(e.options.table)
	if err != nil {
		return nil, fmt.Errorf("locating table %q: %w", e.options.table, err)
	}
	if n == 0 {
		return nil, fmt.Errorf("%w: %q in %s", ErrTableNotFound, e.options.table, e.describe())
	}
	return root.Nth(e.options.table, 0)
}

func (e *Extractor) headers(ctx context.Context, table markup.Element) (grid.Grid, error) {
	rows, err := markup.All(table, e.options.headerRows)
	if err != nil {
		return nil, err
	}
	return grid.ReadHeader(ctx, rows, e.options.headerCells, e.options.header())
}

func (e *Extractor) body(ctx context.Context, table markup.Element) (grid.Grid, error) {
	rows, err := markup.All(table, e.options.bodyRows)
	if err != nil {
		return nil, err
	}
	return grid.ReadBody(ctx, rows, e.options.bodyCells, e.options.body())
}
