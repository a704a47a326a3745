// Package model provides the materialized table representation returned by
// spangrid.
//
// A [Table] keeps both sides of a materialized HTML table:
//
//   - Headers, every logical header row after span resolution
//   - Columns, the header row used to name body values (the last one)
//   - Rows, the logical body rows
//
// # Export
//
// Tables can be rendered with ToMarkdown() and ToCSV(), or projected into
// typed records with Records(). Values in records are cast: "true"/"false"
// become booleans and numeric text becomes float64, while dates and other
// text stay strings.
package model
