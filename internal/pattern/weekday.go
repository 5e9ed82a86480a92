package pattern

import (
	"regexp"
	"strings"
)

var dayRe = regexp.MustCompile(`(?i)\b(?:weekends?|mon|tue(?:s)?|wed(?:nes)?|thu(?:rs?)?|fri|sat(?:ur)?|sun)(?:day)?s?\b`)

var dayNames = []struct {
	prefix string
	full   string
}{
	{"mon", "Monday"},
	{"tue", "Tuesday"},
	{"wed", "Wednesday"},
	{"thu", "Thursday"},
	{"fri", "Friday"},
	{"sat", "Saturday"},
	{"sun", "Sunday"},
}

// Days returns the weekdays mentioned in text as a comma separated list
// of full names, in order of first mention: "Tues & Thurs" becomes
// "Tuesday, Thursday". "Weekend" expands to Saturday and Sunday.
func Days(text string) string {
	seen := make(map[string]bool)
	var out []string
	add := func(day string) {
		if day != "" && !seen[day] {
			seen[day] = true
			out = append(out, day)
		}
	}
	for _, m := range dayRe.FindAllString(text, -1) {
		w := strings.ToLower(m)
		if strings.HasPrefix(w, "weekend") {
			add("Saturday")
			add("Sunday")
			continue
		}
		add(canonicalDay(w))
	}
	return strings.Join(out, ", ")
}

func canonicalDay(w string) string {
	for _, d := range dayNames {
		if strings.HasPrefix(w, d.prefix) {
			return d.full
		}
	}
	return ""
}
