package spangrid

import "errors"

var (
	// ErrTableNotFound is returned when the table selector matches nothing.
	ErrTableNotFound = errors.New("table not found")

	// ErrEmptyResult is returned by Records when the table has no header
	// columns or no body rows.
	ErrEmptyResult = errors.New("table has no header columns or no body rows")

	// ErrNoSource is returned when an Extractor has nothing to read.
	ErrNoSource = errors.New("no source specified")
)
