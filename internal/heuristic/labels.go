package heuristic

import (
	"regexp"
	"strings"
)

// Label regexes anchor a field to its caption ("Age Group: 3-5"). A label
// only counts when a ':' or '-' separator follows, so prose like "ages 3-5"
// stays with the pattern scan instead.
var (
	ageLabelRe      = regexp.MustCompile(`(?i)\bage\s*(?:group|range)?s?\s*[:\-]\s*(.{0,120})`)
	daysLabelRe     = regexp.MustCompile(`(?i)\b(?:days?(?:\s+of\s+(?:the\s+)?week)?|weekdays?|when|schedule)\s*[:\-]\s*(.{0,120})`)
	timesLabelRe    = regexp.MustCompile(`(?i)\b(?:times?|when|schedule)\s*[:\-]\s*(.{0,120})`)
	durationLabelRe = regexp.MustCompile(`(?i)\b(?:class\s+length|length|duration)\s*[:\-]\s*(.{0,120})`)
	sizeLabelRe     = regexp.MustCompile(`(?i)\b(?:class\s+size|max(?:imum)?\s+(?:class\s+)?size|size|capacity)\s*[:\-]\s*(.{0,120})`)
	locationLabelRe = regexp.MustCompile(`(?i)\b(?:location|address|venue|where)\s*[:\-]\s*(.{0,120})`)

	anyLabelRe = regexp.MustCompile(`(?i)\b(?:age\s*(?:group|range)?s?|days?(?:\s+of\s+(?:the\s+)?week)?|weekdays?|times?|when|schedule|class\s+length|length|duration|class\s+size|max(?:imum)?\s+(?:class\s+)?size|size|capacity|location|address|venue|where)\s*[:\-]`)
)

// labeledValue returns the span following the field's caption, cut before
// the next caption so values from adjacent labels never bleed together.
func labeledValue(text string, re *regexp.Regexp) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	window := m[1]
	if cut := anyLabelRe.FindStringIndex(window); cut != nil {
		window = window[:cut[0]]
	}
	return strings.TrimSpace(window)
}
