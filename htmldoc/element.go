package htmldoc

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"

	"github.com/tsawler/spangrid/markup"
)

// element implements markup.Element over a single-node goquery selection.
type element struct {
	sel  *goquery.Selection
	path string
}

func (e *element) Path() string {
	return e.path
}

func (e *element) Text(mode markup.ContentMode) (string, error) {
	if e.sel.Length() == 0 {
		return "", fmt.Errorf("%s: %w", e.path, markup.ErrDetached)
	}

	switch mode {
	case markup.Raw:
		return e.sel.Text(), nil
	case markup.Rendered:
		return renderedText(e.sel.Get(0)), nil
	default:
		return "", fmt.Errorf("%s: unsupported content mode %d", e.path, mode)
	}
}

func (e *element) Attr(name string) (string, bool, error) {
	if e.sel.Length() == 0 {
		return "", false, fmt.Errorf("%s: %w", e.path, markup.ErrDetached)
	}
	val, ok := e.sel.Attr(name)
	return val, ok, nil
}

func (e *element) Count(selector string) (int, error) {
	found, err := e.find(selector)
	if err != nil {
		return 0, err
	}
	return found.Length(), nil
}

func (e *element) Nth(selector string, index int) (markup.Element, error) {
	found, err := e.find(selector)
	if err != nil {
		return nil, err
	}

	path := fmt.Sprintf("%s > %s[%d]", e.path, selector, index)
	if index < 0 || index >= found.Length() {
		return nil, fmt.Errorf("%s (%d matches): %w", path, found.Length(), markup.ErrDetached)
	}

	return &element{sel: found.Eq(index), path: path}, nil
}

// find runs selector against the element's descendants. goquery silently
// matches nothing on a bad selector, so the selector is compiled first.
func (e *element) find(selector string) (*goquery.Selection, error) {
	if e.sel.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", e.path, markup.ErrDetached)
	}

	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("invalid selector %q: %w", selector, err)
	}
	return e.sel.FindMatcher(m), nil
}
