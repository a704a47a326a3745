package markup

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listElement answers Count/Nth from a fixed list of children.
type listElement struct {
	path     string
	children []string
	countErr error
}

func (e *listElement) Text(ContentMode) (string, error) { return "", nil }

func (e *listElement) Attr(string) (string, bool, error) { return "", false, nil }

func (e *listElement) Count(string) (int, error) {
	return len(e.children), e.countErr
}

func (e *listElement) Nth(selector string, i int) (Element, error) {
	if i < 0 || i >= len(e.children) {
		return nil, ErrDetached
	}
	return &listElement{path: fmt.Sprintf("%s > %s[%d]", e.path, selector, i)}, nil
}

func (e *listElement) Path() string { return e.path }

func TestContentMode_String(t *testing.T) {
	assert.Equal(t, "rendered", Rendered.String())
	assert.Equal(t, "raw", Raw.String())
	assert.Equal(t, "unknown", ContentMode(7).String())
}

func TestParseContentMode(t *testing.T) {
	tests := []struct {
		in      string
		want    ContentMode
		wantErr bool
	}{
		{"", Rendered, false},
		{"rendered", Rendered, false},
		{" InnerText ", Rendered, false},
		{"RAW", Raw, false},
		{"textContent", Raw, false},
		{"visible", Rendered, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseContentMode(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAll(t *testing.T) {
	root := &listElement{path: "table", children: []string{"a", "b", "c"}}

	got, err := All(root, "tr")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "table > tr[2]", got[2].Path())
}

func TestAll_Empty(t *testing.T) {
	got, err := All(&listElement{path: "table"}, "tr")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAll_CountError(t *testing.T) {
	boom := errors.New("boom")

	_, err := All(&listElement{path: "table", countErr: boom}, "tr")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), `"tr"`)
}
