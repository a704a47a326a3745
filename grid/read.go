package grid

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/spangrid/cell"
	"github.com/tsawler/spangrid/markup"
	"github.com/tsawler/spangrid/span"
)

// readRows reads every physical cell of rows. Failures abort the row they
// occur in and carry its index and the cell selector.
func readRows(ctx context.Context, section string, rows []markup.Element, cellSelector string,
	mode markup.ContentMode, spanMode span.Mode, limit int) ([][]RawCell, error) {
	out := make([][]RawCell, 0, len(rows))

	for i, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cells, err := markup.All(row, cellSelector)
		if err != nil {
			return nil, &RowError{Section: section, Row: i, Selector: cellSelector, Err: err}
		}

		raws, err := readCells(ctx, cells, mode, spanMode, limit)
		if err != nil {
			return nil, &RowError{Section: section, Row: i, Selector: cellSelector, Err: err}
		}
		out = append(out, raws)
	}

	return out, nil
}

// readCells reads the cells of one row, up to limit at a time. Each result
// lands in its own slot so the row keeps physical column order.
func readCells(ctx context.Context, cells []markup.Element, mode markup.ContentMode, spanMode span.Mode, limit int) ([]RawCell, error) {
	raws := make([]RawCell, len(cells))

	if limit <= 1 {
		for i, el := range cells {
			raw, err := readCell(el, mode, spanMode)
			if err != nil {
				return nil, err
			}
			raws[i] = raw
		}
		return raws, nil
	}

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, el := range cells {
		i, el := i, el
		g.Go(func() error {
			raw, err := readCell(el, mode, spanMode)
			if err != nil {
				return err
			}
			raws[i] = raw
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return raws, nil
}

func readCell(el markup.Element, mode markup.ContentMode, spanMode span.Mode) (RawCell, error) {
	text, err := cell.Read(el, mode)
	if err != nil {
		return RawCell{}, err
	}
	spans, err := span.FromElement(el, spanMode)
	if err != nil {
		return RawCell{}, err
	}
	return RawCell{Text: text, RowSpan: spans.RowSpan, ColSpan: spans.ColSpan}, nil
}
