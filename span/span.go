// Package span parses rowspan and colspan attributes.
//
// Two modes are available. [Strict] rejects anything that is not a positive
// integer with an [*InvalidAttributeError]. [Lenient] silently falls back to
// 1, matching how browsers treat garbage span values. In both modes values
// above [MaxRowSpan] or [MaxColSpan] are clamped to the limit.
package span

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tsawler/spangrid/markup"
)

// Attribute names read from a cell.
const (
	RowSpanAttr = "rowspan"
	ColSpanAttr = "colspan"
)

// Upper limits browsers apply to span values.
const (
	MaxRowSpan = 65534
	MaxColSpan = 1000
)

// ErrInvalidAttribute matches every *InvalidAttributeError via errors.Is.
var ErrInvalidAttribute = errors.New("invalid span attribute")

// Mode selects strict or lenient parsing.
type Mode int

const (
	// Strict fails on a present but malformed or non-positive value.
	Strict Mode = iota
	// Lenient coerces malformed or non-positive values to 1.
	Lenient
)

// String returns the string representation of the mode.
func (m Mode) String() string {
	if m == Lenient {
		return "lenient"
	}
	return "strict"
}

// Spans holds the validated span values of one cell.
type Spans struct {
	RowSpan int
	ColSpan int
}

// InvalidAttributeError reports a malformed span attribute.
type InvalidAttributeError struct {
	Attribute string
	Value     string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid %s attribute %q: must be a positive integer", e.Attribute, e.Value)
}

// Is reports whether target is ErrInvalidAttribute.
func (e *InvalidAttributeError) Is(target error) bool {
	return target == ErrInvalidAttribute
}

// Parse validates raw rowspan and colspan values. rowOK and colOK report
// whether each attribute was present at all; an absent attribute is 1.
func Parse(rowspan string, rowOK bool, colspan string, colOK bool, mode Mode) (Spans, error) {
	row, err := parseOne(RowSpanAttr, rowspan, rowOK, mode)
	if err != nil {
		return Spans{}, err
	}
	col, err := parseOne(ColSpanAttr, colspan, colOK, mode)
	if err != nil {
		return Spans{}, err
	}
	return Spans{RowSpan: row, ColSpan: col}, nil
}

// FromElement reads and validates both span attributes of el.
func FromElement(el markup.Element, mode Mode) (Spans, error) {
	rowspan, rowOK, err := el.Attr(RowSpanAttr)
	if err != nil {
		return Spans{}, err
	}
	colspan, colOK, err := el.Attr(ColSpanAttr)
	if err != nil {
		return Spans{}, err
	}
	return Parse(rowspan, rowOK, colspan, colOK, mode)
}

func parseOne(attr, raw string, present bool, mode Mode) (int, error) {
	if !present {
		return 1, nil
	}

	limit := MaxColSpan
	if attr == RowSpanAttr {
		limit = MaxRowSpan
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	var numErr *strconv.NumError
	if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange && n > 0 {
		return limit, nil
	}
	if err == nil && n >= 1 {
		return min(n, limit), nil
	}

	if mode == Lenient {
		return 1, nil
	}
	return 0, &InvalidAttributeError{Attribute: attr, Value: raw}
}
