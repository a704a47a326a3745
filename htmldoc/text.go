package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
)

var sourceBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// renderedText extracts the text of n as a reader would see it. Hidden
// subtrees are skipped, <br> and block boundaries become line breaks, and
// runs of whitespace inside a line collapse to a single space.
func renderedText(n *html.Node) string {
	var sb strings.Builder
	renderedTextRecursive(n, &sb)

	lines := strings.Split(sb.String(), "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func renderedTextRecursive(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		// Source line breaks are ordinary whitespace; only <br> and block
		// boundaries break lines.
		sb.WriteString(sourceBreaks.Replace(n.Data))
		return
	case html.ElementNode:
		if shouldSkipElement(n.Data) || isHidden(n) {
			return
		}
		if n.Data == "br" {
			sb.WriteString("\n")
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		renderedTextRecursive(c, sb)
	}

	if n.Type == html.ElementNode && isBlockElement(n.Data) {
		sb.WriteString("\n")
	}
}

// shouldSkipElement returns true for elements that never contribute visible text.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// isBlockElement reports whether the element starts a new line when rendered.
func isBlockElement(tagName string) bool {
	switch tagName {
	case "p", "div", "li", "ul", "ol", "h1", "h2", "h3", "h4", "h5", "h6",
		"blockquote", "pre", "section", "article", "header", "footer", "tr", "table":
		return true
	}
	return false
}

// isHidden reports whether the element is hidden by attribute or inline style.
func isHidden(n *html.Node) bool {
	for _, attr := range n.Attr {
		switch attr.Key {
		case "hidden":
			return true
		case "aria-hidden":
			if strings.EqualFold(strings.TrimSpace(attr.Val), "true") {
				return true
			}
		case "style":
			style := strings.ToLower(strings.ReplaceAll(attr.Val, " ", ""))
			if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
				return true
			}
		}
	}
	return false
}
