package htmldoc

import (
	"testing"

	"github.com/tsawler/spangrid/markup"
)

func TestElement_TextModes(t *testing.T) {
	tests := []struct {
		name     string
		html     string
		rendered string
		raw      string
	}{
		{
			name:     "plain",
			html:     `<td>  Revenue  </td>`,
			rendered: "Revenue",
			raw:      "  Revenue  ",
		},
		{
			name:     "whitespace collapse",
			html:     "<td>Net\n\t  income</td>",
			rendered: "Net income",
			raw:      "Net\n\t  income",
		},
		{
			name:     "line break",
			html:     `<td>Total<br>2024</td>`,
			rendered: "Total\n2024",
			raw:      "Total2024",
		},
		{
			name:     "block children",
			html:     `<td><div>First</div><div>Second</div></td>`,
			rendered: "First\nSecond",
			raw:      "FirstSecond",
		},
		{
			name:     "hidden attribute",
			html:     `<td>Art <span hidden>(beta)</span></td>`,
			rendered: "Art",
			raw:      "Art (beta)",
		},
		{
			name:     "aria hidden",
			html:     `<td>Price<span aria-hidden="true">*</span></td>`,
			rendered: "Price",
			raw:      "Price*",
		},
		{
			name:     "inline style",
			html:     `<td>A<span style="Display: None">B</span><span style="visibility:hidden">C</span></td>`,
			rendered: "A",
			raw:      "ABC",
		},
		{
			name:     "script and style",
			html:     `<td>Value<script>var x = 1;</script><style>td{}</style></td>`,
			rendered: "Value",
			raw:      "Valuevar x = 1;td{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := OpenString("<table><tr>" + tt.html + "</tr></table>")
			if err != nil {
				t.Fatalf("OpenString() failed: %v", err)
			}
			cell, err := doc.Root().Nth("td", 0)
			if err != nil {
				t.Fatalf("Nth() failed: %v", err)
			}

			rendered, err := cell.Text(markup.Rendered)
			if err != nil {
				t.Fatalf("Text(Rendered) failed: %v", err)
			}
			if rendered != tt.rendered {
				t.Errorf("Text(Rendered) = %q, want %q", rendered, tt.rendered)
			}

			raw, err := cell.Text(markup.Raw)
			if err != nil {
				t.Fatalf("Text(Raw) failed: %v", err)
			}
			if raw != tt.raw {
				t.Errorf("Text(Raw) = %q, want %q", raw, tt.raw)
			}
		})
	}
}

func TestElement_TextUnsupportedMode(t *testing.T) {
	doc, _ := OpenString(`<table><tr><td>x</td></tr></table>`)
	cell, _ := doc.Root().Nth("td", 0)

	if _, err := cell.Text(markup.ContentMode(9)); err == nil {
		t.Error("Text() expected error for unknown mode")
	}
}
