// Package grid materializes span-annotated table rows into a logical grid of
// strings.
//
// HTML tables describe merged cells with rowspan and colspan attributes. A
// cell that spans three columns appears once in the markup but occupies three
// logical positions; a cell that spans two rows occupies a column in a row
// where it is not written at all. This package resolves those declarations so
// that every logical position holds a value.
//
// # Header path
//
// [Header] walks physical rows top to bottom and cells left to right,
// threading a carry map through the loop. Before a cell is placed at logical
// column c, every carry pending at c is flushed into the row. A cell with
// rowspan > 1 leaves a carry at its columns for the next rowspan-1 rows. The
// header path also applies the naming policies that make header text usable
// as keys:
//
//   - empty cells can be replaced by a placeholder ({{Empty}} by default)
//   - repeated names in one physical row get a __D<n> suffix
//   - colspan copies get a __C<n> suffix, can be left unsuffixed, or dropped
//
// A rowspan in the header is resolved by default. [RejectRowSpan] restores
// the stricter behavior of refusing such headers with [ErrHeaderRowSpan].
//
// # Body path
//
// [Body] projects each row-spanned value directly into the rows below it
// (row r+1 … r+rowspan-1) instead of carrying it one row at a time. Colspan
// fills sideways with the same text and is never suffixed.
//
// # Reading from markup
//
// [ReadHeader] and [ReadBody] read cells through a [markup.Element] and then
// run the pure algorithms. Cell reads of one body row are issued
// concurrently; the results are merged in physical column order so placement
// stays deterministic.
//
// Rows are not padded: a logical row is as wide as its physical, carried and
// colspan cells make it. Use [Grid.Pad] when a rectangular grid is needed.
package grid
