// Package cell reads and classifies the content of a single table cell.
package cell

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/spangrid/markup"
)

// datePattern guards against casting ISO-like dates to numbers.
var datePattern = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)

// AccessError reports a cell whose reference could not be read.
type AccessError struct {
	Path string
	Mode markup.ContentMode
	Err  error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("reading %s text of %s: %v", e.Mode, e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// Read returns the trimmed, NFC-normalised text of el. A cell without text
// yields the empty string.
func Read(el markup.Element, mode markup.ContentMode) (string, error) {
	text, err := el.Text(mode)
	if err != nil {
		return "", &AccessError{Path: el.Path(), Mode: mode, Err: err}
	}
	return Normalize(text), nil
}

// Normalize trims surrounding whitespace and applies Unicode NFC so that
// visually identical header names compare equal.
func Normalize(s string) string {
	return strings.TrimSpace(norm.NFC.String(s))
}

// Cast converts cell text into a typed scalar.
//
// "true" and "false" (any case) become bool. Text that parses as a finite
// number becomes float64 unless it contains a yyyy-mm-dd date. Everything
// else, including the empty string, is returned trimmed and unchanged.
func Cast(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}

	if datePattern.MatchString(s) {
		return s
	}

	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	return f
}

// CastRow applies Cast to every value of row.
func CastRow(row []string) []any {
	out := make([]any, len(row))
	for i, v := range row {
		out[i] = Cast(v)
	}
	return out
}
