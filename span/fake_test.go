package span

import "github.com/tsawler/spangrid/markup"

// fakeElement only answers attribute reads.
type fakeElement struct {
	attrs attrElement
}

func (f fakeElement) Text(markup.ContentMode) (string, error) { return "", nil }
func (f fakeElement) Attr(name string) (string, bool, error)  { return f.attrs.Attr(name) }
func (f fakeElement) Count(string) (int, error)               { return 0, nil }
func (f fakeElement) Nth(string, int) (markup.Element, error) { return nil, markup.ErrDetached }
func (f fakeElement) Path() string                            { return "fake" }
