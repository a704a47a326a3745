package span

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	spans, err := Parse("", false, "", false, Strict)
	require.NoError(t, err)
	assert.Equal(t, Spans{RowSpan: 1, ColSpan: 1}, spans)
}

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		name    string
		rowspan string
		colspan string
		want    Spans
	}{
		{"both", "2", "3", Spans{RowSpan: 2, ColSpan: 3}},
		{"ones", "1", "1", Spans{RowSpan: 1, ColSpan: 1}},
		{"padded", " 4 ", "\t2", Spans{RowSpan: 4, ColSpan: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.rowspan, true, tt.colspan, true, Strict)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_StrictRejects(t *testing.T) {
	tests := []struct {
		name    string
		rowspan string
		colspan string
		attr    string
		value   string
	}{
		{"zero rowspan", "0", "1", RowSpanAttr, "0"},
		{"negative colspan", "1", "-5", ColSpanAttr, "-5"},
		{"non numeric", "two", "1", RowSpanAttr, "two"},
		{"empty but present", "1", "", ColSpanAttr, ""},
		{"fractional", "1.5", "1", RowSpanAttr, "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.rowspan, true, tt.colspan, true, Strict)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAttribute))

			var invalid *InvalidAttributeError
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.attr, invalid.Attribute)
			assert.Equal(t, tt.value, invalid.Value)
			assert.Contains(t, err.Error(), tt.attr)
		})
	}
}

func TestParse_LenientCoerces(t *testing.T) {
	for _, raw := range []string{"0", "-5", "abc", ""} {
		got, err := Parse(raw, true, raw, true, Lenient)
		require.NoError(t, err, raw)
		assert.Equal(t, Spans{RowSpan: 1, ColSpan: 1}, got, raw)
	}
}

func TestParse_ClampsToLimits(t *testing.T) {
	tests := []struct {
		name    string
		rowspan string
		colspan string
		want    Spans
	}{
		{"at limit", "65534", "1000", Spans{RowSpan: MaxRowSpan, ColSpan: MaxColSpan}},
		{"above limit", "1000000", "5000", Spans{RowSpan: MaxRowSpan, ColSpan: MaxColSpan}},
		{"overflows int", "99999999999999999999", "99999999999999999999", Spans{RowSpan: MaxRowSpan, ColSpan: MaxColSpan}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, mode := range []Mode{Strict, Lenient} {
				got, err := Parse(tt.rowspan, true, tt.colspan, true, mode)
				require.NoError(t, err, mode.String())
				assert.Equal(t, tt.want, got, mode.String())
			}
		})
	}

	_, err := Parse("-99999999999999999999", true, "1", true, Strict)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}

type attrElement map[string]string

func (a attrElement) Attr(name string) (string, bool, error) {
	v, ok := a[name]
	return v, ok, nil
}

func TestFromElement(t *testing.T) {
	el := fakeElement{attrs: attrElement{"colspan": "3"}}

	got, err := FromElement(el, Strict)
	require.NoError(t, err)
	assert.Equal(t, Spans{RowSpan: 1, ColSpan: 3}, got)

	bad := fakeElement{attrs: attrElement{"rowspan": "0"}}
	_, err = FromElement(bad, Strict)
	assert.ErrorIs(t, err, ErrInvalidAttribute)
}
