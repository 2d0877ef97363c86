// Package scrape holds the raw-text HTML helpers used on storefront pages.
//
// Matching is a literal, case-sensitive substring search: "<TITLE>" or
// "<title lang=en>" are not found. This is a known limitation.
package scrape

import "strings"

// FirstTagContent returns the text between the first "<tag>" and the next
// "</tag>" after it. ok is false when the opening tag is absent. A missing
// closing tag yields everything after the opening tag.
func FirstTagContent(html, tag string) (content string, ok bool) {
	open := "<" + tag + ">"
	start := strings.Index(html, open)
	if start < 0 {
		return "", false
	}
	rest := html[start+len(open):]
	if end := strings.Index(rest, "</"+tag+">"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}
