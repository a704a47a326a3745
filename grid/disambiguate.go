package grid

import "strconv"

// Suffix markers appended to generated header names.
const (
	DuplicateSuffix = "__D"
	ColspanSuffix   = "__C"
)

// disambiguate returns text unchanged on its first occurrence in seen and
// text__D<n> on the n-th repeat.
func disambiguate(text string, seen map[string]int) string {
	n := seen[text]
	seen[text] = n + 1
	if n == 0 {
		return text
	}
	return text + DuplicateSuffix + strconv.Itoa(n)
}

// colspanName names the n-th synthetic column of a colspan.
func colspanName(text string, n int) string {
	return text + ColspanSuffix + strconv.Itoa(n)
}
