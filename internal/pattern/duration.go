package pattern

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var durationRe = regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)[\s-]*(minutes?|mins?|hours?|hrs?)\b`)

const maxClassSpan = 6 * 60

// Duration returns an explicit session length normalized to compact form:
// "45 minutes" becomes "45m", "1.5 hours" becomes "1h30m".
func Duration(text string) string {
	m := durationRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return ""
	}
	minutes := n
	if strings.HasPrefix(strings.ToLower(m[2]), "h") {
		minutes = n * 60
	}
	return Label(int(math.Round(minutes)))
}

// Derived computes a session length from the first clock range in text
// when nothing states one outright. Endpoints without a meridiem are read
// on the 24 hour clock first; when that span is implausible the unmarked
// endpoint borrows the other's meridiem, so "4:00 - 4:45 PM" means 45
// minutes, not twelve hours. A range that ends at or before its start is
// assumed to cross midnight once. Spans over six hours are discarded as
// whole-day schedule blocks rather than single sessions.
func Derived(text string) string {
	s, e, ok := RangeMinutes(text)
	if !ok {
		return ""
	}
	span := e - s
	if span <= 0 {
		span += 24 * 60
	}
	return Label(span)
}

// RangeMinutes resolves the first clock range in text to start and end
// minutes since midnight, under the same meridiem and plausibility
// rules as Derived. The end is normalized to a clock value, so a range
// crossing midnight ends before it starts.
func RangeMinutes(text string) (int, int, bool) {
	start, end, ok := FirstRange(text)
	if !ok {
		return 0, 0, false
	}
	for _, s := range clockReadings(start, end) {
		for _, e := range clockReadings(end, start) {
			span := e - s
			if span <= 0 {
				span += 24 * 60
			}
			if span <= maxClassSpan {
				return s, (s + span) % (24 * 60), true
			}
		}
	}
	return 0, 0, false
}

// clockReadings lists the plausible minute values of one endpoint: its
// own reading, plus one borrowing the other endpoint's meridiem when
// this one has none.
func clockReadings(s, other string) []int {
	var out []int
	if v, ok := parseClock(s); ok {
		out = append(out, v)
	}
	if mer := meridiemOf(other); mer != "" && meridiemOf(s) == "" {
		if v, ok := parseClock(s + " " + mer); ok && (len(out) == 0 || v != out[0]) {
			out = append(out, v)
		}
	}
	return out
}

func meridiemOf(s string) string {
	low := strings.ToLower(s)
	for _, mer := range []string{"am", "pm"} {
		if strings.HasSuffix(low, mer) {
			return mer
		}
	}
	return ""
}

// Label renders a minute count in compact form: "45m", "2h", "1h30m".
func Label(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
