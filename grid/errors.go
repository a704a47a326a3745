package grid

import (
	"errors"
	"fmt"
)

// ErrHeaderRowSpan is returned under RejectRowSpan when a header cell spans rows.
var ErrHeaderRowSpan = errors.New("rowspan in header is unsupported")

// Section names used in RowError.
const (
	SectionHeader = "header"
	SectionBody   = "body"
)

// RowError attaches the row index and cell selector to a failure that
// aborted one row's materialization.
type RowError struct {
	Section  string
	Row      int
	Selector string
	Err      error
}

func (e *RowError) Error() string {
	if e.Selector == "" {
		return fmt.Sprintf("%s row %d: %v", e.Section, e.Row, e.Err)
	}
	return fmt.Sprintf("%s row %d (cells %q): %v", e.Section, e.Row, e.Selector, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
