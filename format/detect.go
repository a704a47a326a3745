// Package format provides output format detection and table writers for
// spangrid.
package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported table output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// JSON writes body rows as an array of records.
	JSON
	// CSV writes header rows followed by body rows.
	CSV
	// Markdown writes a pipe table keyed by the column row.
	Markdown
	// XLSX writes a single-sheet Excel workbook.
	XLSX
	// HTML indicates an HTML source document. It is an input format only.
	HTML
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case JSON:
		return "JSON"
	case CSV:
		return "CSV"
	case Markdown:
		return "Markdown"
	case XLSX:
		return "XLSX"
	case HTML:
		return "HTML"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case JSON:
		return ".json"
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	case XLSX:
		return ".xlsx"
	case HTML:
		return ".html"
	default:
		return ""
	}
}

// Writable reports whether tables can be written in the format.
func (f Format) Writable() bool {
	switch f {
	case JSON, CSV, Markdown, XLSX:
		return true
	default:
		return false
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return JSON
	case ".csv":
		return CSV
	case ".md", ".markdown":
		return Markdown
	case ".xlsx":
		return XLSX
	case ".html", ".htm", ".xhtml":
		return HTML
	default:
		return Unknown
	}
}

// Parse resolves a format name as given on a command line, such as "json" or
// "md". Names are case-insensitive.
func Parse(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return JSON, nil
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	case "xlsx", "excel":
		return XLSX, nil
	case "html", "htm":
		return HTML, nil
	default:
		return Unknown, fmt.Errorf("unknown format %q", name)
	}
}

// DetectFromMagic checks leading bytes to determine whether data is HTML.
// Documents and the usual fragments (a table, a div, a comment) count.
// Returns Unknown if the format cannot be determined.
func DetectFromMagic(data []byte) Format {
	if detectHTMLMagic(data) {
		return HTML
	}
	return Unknown
}

// detectHTMLMagic checks if the data looks like HTML content.
func detectHTMLMagic(data []byte) bool {
	// Trim leading whitespace and a UTF-8 byte order mark
	data = []byte(strings.TrimLeft(string(data), " \t\r\n\ufeff"))
	if len(data) == 0 {
		return false
	}

	upper := strings.ToUpper(string(data[:min(512, len(data))]))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"),
		strings.HasPrefix(upper, "<HTML"),
		strings.HasPrefix(upper, "<HEAD"),
		strings.HasPrefix(upper, "<BODY"),
		strings.HasPrefix(upper, "<DIV"),
		strings.HasPrefix(upper, "<TABLE"),
		strings.HasPrefix(upper, "<!--"):
		return true
	case strings.HasPrefix(upper, "<?XML"):
		// XML declaration followed by html-like content could be XHTML
		return strings.Contains(upper, "<HTML")
	}
	return false
}
