// Package markup defines the contract between the grid engine and whatever
// holds the rendered table markup.
//
// The engine never walks a DOM itself. It asks an [Element] how many
// descendants match a selector, fetches the Nth one, and reads its text and
// attributes. Any backend that can answer those four questions can be
// materialized: the goquery-backed [github.com/tsawler/spangrid/htmldoc]
// package is the one shipped with this module.
package markup

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDetached is returned when a reference no longer resolves to an element.
var ErrDetached = errors.New("element reference no longer resolves")

// ContentMode selects how cell text is extracted.
type ContentMode int

const (
	// Rendered returns the text a reader would see: hidden elements and
	// script/style content are skipped and whitespace is collapsed.
	Rendered ContentMode = iota
	// Raw returns the concatenated text of every descendant text node.
	Raw
)

// String returns the string representation of the mode.
func (m ContentMode) String() string {
	switch m {
	case Rendered:
		return "rendered"
	case Raw:
		return "raw"
	default:
		return "unknown"
	}
}

// ParseContentMode parses "rendered" or "raw" (case-insensitive).
// An empty string selects Rendered.
func ParseContentMode(s string) (ContentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rendered", "innertext":
		return Rendered, nil
	case "raw", "textcontent":
		return Raw, nil
	default:
		return Rendered, fmt.Errorf("unknown content mode %q", s)
	}
}

// Element is a reference to one node of the markup.
type Element interface {
	// Text returns the element's text in the given mode. Implementations
	// may return untrimmed text; callers trim.
	Text(mode ContentMode) (string, error)

	// Attr returns the named attribute and whether it was present.
	Attr(name string) (string, bool, error)

	// Count returns the number of descendants matching selector.
	Count(selector string) (int, error)

	// Nth returns the index-th (0-based) descendant matching selector.
	Nth(selector string, index int) (Element, error)

	// Path describes how the element was reached, for diagnostics.
	Path() string
}

// All returns every descendant of scope matching selector, in document order.
func All(scope Element, selector string) ([]Element, error) {
	n, err := scope.Count(selector)
	if err != nil {
		return nil, fmt.Errorf("counting %q under %s: %w", selector, scope.Path(), err)
	}

	elems := make([]Element, 0, n)
	for i := 0; i < n; i++ {
		el, err := scope.Nth(selector, i)
		if err != nil {
			return nil, err
		}
		elems = append(elems, el)
	}
	return elems, nil
}
