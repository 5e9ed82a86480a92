// Package pattern provides the compiled matchers shared by all field
// heuristics: age ranges, weekdays, clock times, durations, class sizes,
// and address-like text. Every matcher is a pure function from text to a
// normalized match, returning "" when nothing matches. The package holds
// no mutable state, so matchers are safe for unlimited concurrent use.
package pattern

import (
	"regexp"
	"strings"
)

var (
	dashReplacer = strings.NewReplacer("–", "-", "—", "-")
	meridiemRe   = regexp.MustCompile(`(?i)^\s*(?:am|pm)\b`)
)

// Collapse squeezes whitespace runs to single spaces and normalizes
// en/em dashes to plain hyphens.
func Collapse(s string) string {
	return dashReplacer.Replace(strings.Join(strings.Fields(s), " "))
}

func isWordChar(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// cleanBoundary reports whether text[start:end] stands alone as a number
// or range: not glued to a word, a decimal point, a clock colon, a price
// sign, or a trailing meridiem.
func cleanBoundary(text string, start, end int) bool {
	if start > 0 {
		prev := text[start-1]
		switch {
		case isWordChar(prev), prev == ':', prev == '$', prev == '-':
			return false
		case prev == '.' && start > 1 && isDigit(text[start-2]):
			return false
		}
	}
	if end < len(text) {
		next := text[end]
		switch {
		case isWordChar(next), next == ':', next == '-':
			return false
		case next == '.' && end+1 < len(text) && isDigit(text[end+1]):
			return false
		}
		if meridiemRe.MatchString(text[end:]) {
			return false
		}
	}
	return true
}
