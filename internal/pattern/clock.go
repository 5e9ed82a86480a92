package pattern

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	timeRangeRe  = regexp.MustCompile(`(?i)\b(\d{1,2}(?:[:.][0-5]\d)?\s*(?:[ap]\.?m\.?)?)\s*(?:[-\x{2013}]|to|until)\s*(\d{1,2}(?:[:.][0-5]\d)?\s*(?:[ap]\.?m\.?)?)`)
	timeSingleRe = regexp.MustCompile(`(?i)\b\d{1,2}[:.][0-5]\d\s*(?:[ap]\.?m\.?)?|\b\d{1,2}\s*[ap]\.?m\.?`)
	clockShapeRe = regexp.MustCompile(`(?i)[:.][0-5]\d|[ap]\.?m`)
	meridiemEnd  = regexp.MustCompile(`(?i)\s*([ap])\.?m\.?$`)
)

// Times returns the first clock range in text, endpoints joined with "-"
// and meridiems upper cased ("10:00 - 10:45 am" becomes "10:00-10:45 AM").
// When no range is present it falls back to the first single clock time.
// Bare numeric ranges with no minutes or meridiem ("3-5") never qualify.
func Times(text string) string {
	if start, end, ok := FirstRange(text); ok {
		return start + "-" + end
	}
	if m := timeSingleRe.FindString(text); m != "" {
		return cleanClock(m)
	}
	return ""
}

// FirstRange returns the normalized endpoints of the first clock range in
// text. At least one endpoint must carry minutes or a meridiem, so age
// spans like "3-5" are not mistaken for times.
func FirstRange(text string) (start, end string, ok bool) {
	for _, m := range timeRangeRe.FindAllStringSubmatch(text, -1) {
		if clockShapeRe.MatchString(m[0]) {
			return cleanClock(m[1]), cleanClock(m[2]), true
		}
	}
	return "", "", false
}

// cleanClock normalizes one clock endpoint: "9.30am" becomes "9:30 AM".
func cleanClock(s string) string {
	s = Collapse(s)
	tail := ""
	if m := meridiemEnd.FindStringSubmatch(s); m != nil {
		tail = " " + strings.ToUpper(m[1]) + "M"
		s = strings.TrimSpace(s[:len(s)-len(m[0])])
	}
	return strings.Replace(s, ".", ":", 1) + tail
}

// parseClock converts a normalized endpoint to minutes past midnight.
// Endpoints without a meridiem are read on the 24 hour clock.
func parseClock(s string) (int, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	mer := ""
	for _, suffix := range []string{"am", "pm"} {
		if strings.HasSuffix(s, suffix) {
			mer = suffix
			s = strings.TrimSpace(strings.TrimSuffix(s, suffix))
			break
		}
	}
	hh, mm := s, "0"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		hh, mm = s[:i], s[i+1:]
	}
	h, err := strconv.Atoi(hh)
	if err != nil {
		return 0, false
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m > 59 {
		return 0, false
	}
	switch mer {
	case "am", "pm":
		if h < 1 || h > 12 {
			return 0, false
		}
		if h == 12 {
			h = 0
		}
		if mer == "pm" {
			h += 12
		}
	default:
		if h > 23 {
			return 0, false
		}
	}
	return h*60 + m, true
}
