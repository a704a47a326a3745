// Package htmldoc provides a goquery-backed markup source for HTML documents.
package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tsawler/spangrid/markup"
)

// Document is a parsed HTML document.
type Document struct {
	doc *goquery.Document
}

// Open opens an HTML file for reading.
func Open(filename string) (*Document, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return &Document{doc: doc}, nil
}

// OpenString parses HTML held in a string.
func OpenString(s string) (*Document, error) {
	return OpenReader(strings.NewReader(s))
}

// Root returns the element for the whole document.
func (d *Document) Root() markup.Element {
	return &element{sel: d.doc.Selection, path: "document"}
}

// FromSelection wraps an existing goquery selection. Only the first node of
// the selection is used.
func FromSelection(sel *goquery.Selection, path string) markup.Element {
	if path == "" {
		path = "selection"
	}
	return &element{sel: sel.First(), path: path}
}
