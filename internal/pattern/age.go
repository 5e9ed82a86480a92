package pattern

import (
	"regexp"
	"strings"
)

var (
	gradeRe     = regexp.MustCompile(`(?i)\b(?:grades?|levels?)\s*:?\s*\d{1,2}(?:\s*(?:[-\x{2013}]|to)\s*\d{1,2})?`)
	preKRe      = regexp.MustCompile(`(?i)\bpre[-\s]?k\s*\d{1,2}\b`)
	ageRangeRe  = regexp.MustCompile(`(?i)\bages?\s*[:\-]?\s*(\d{1,2})\s*(?:[-\x{2013}]|to)\s*(\d{1,2})`)
	agePlusRe   = regexp.MustCompile(`(?i)\bages?\s*[:\-]?\s*(\d{1,2})\s*\+`)
	unitRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:[-\x{2013}]|to)\s*(\d{1,2})\s*(?:months?|mos?\.?|yrs?\.?|years?|yo)\b`)
	ageUnitRe   = regexp.MustCompile(`(?i)\b\d{1,2}(?:\.\d)?\s*(?:months?|mos?\.?|yrs?\.?|years?|yo)\b`)
	ageWordRe   = regexp.MustCompile(`(?i)\b(?:infants?|toddlers?|pre[-\s]?schoolers?|pre[-\s]?school|prek|babies|baby|kids?|children|teens?|tweens?|adults?)\b`)
	bareRangeRe = regexp.MustCompile(`(\d{1,2})\s*[-\x{2013}]\s*(\d{1,2})`)
)

// Age returns the most specific age mention in text, or "". Structured
// notations outrank keywords: grade or level first, then explicit numeric
// ranges reduced to their bounds ("Ages 2-3" yields "2-3"), unit-qualified
// values, and finally category keywords.
func Age(text string) string {
	if m := gradeRe.FindString(text); m != "" {
		return Collapse(m)
	}
	if m := preKRe.FindString(text); m != "" {
		return Collapse(m)
	}
	if m := ageRangeRe.FindStringSubmatch(text); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := agePlusRe.FindStringSubmatch(text); m != nil {
		return m[1] + "+"
	}
	if m := unitRangeRe.FindStringSubmatch(text); m != nil {
		return m[1] + "-" + m[2]
	}
	if m := ageUnitRe.FindString(text); m != "" {
		return Collapse(m)
	}
	if m := ageWordRe.FindString(text); m != "" {
		return strings.ToLower(Collapse(m))
	}
	return ""
}

// BareRange finds a prefix-less numeric range like "3-5". It rejects spans
// that are clock times ("3-5pm") or fragments of them ("10:00-10:45"), so
// it is only safe on short label-scoped text where a lone range can mean
// nothing but ages.
func BareRange(text string) string {
	for _, loc := range bareRangeRe.FindAllStringSubmatchIndex(text, -1) {
		if !cleanBoundary(text, loc[0], loc[1]) {
			continue
		}
		return text[loc[2]:loc[3]] + "-" + text[loc[4]:loc[5]]
	}
	return ""
}
