// Package webtext extracts visible text from HTML documents so saved pages
// can be fed into the vocabulary tools.
package webtext

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Extract parses HTML from r and returns its visible text, with script and
// style contents skipped and text nodes joined by single spaces.
func Extract(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", err
	}

	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return strings.Join(parts, " "), nil
}

// ExtractString is Extract over a string, falling back to the input when
// parsing fails.
func ExtractString(s string) string {
	text, err := Extract(strings.NewReader(s))
	if err != nil {
		return s
	}
	return text
}
