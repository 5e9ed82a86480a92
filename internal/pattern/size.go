package pattern

import "regexp"

var (
	sizeCapRe  = regexp.MustCompile(`(?i)\b(?:max(?:imum)?(?:\s+of)?|limit(?:ed)?(?:\s+to)?|up\s+to|capacity(?:\s+of)?)\s*:?\s*(\d{1,2})\b`)
	sizeNounRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:students?|kids?|children|swimmers?|participants?|campers?|players?|dancers?|gymnasts?)\b`)
	bareNumRe  = regexp.MustCompile(`\d{1,3}`)
)

// Size returns a class size mention: a capacity phrase ("max of 8",
// "limited to 12") or a count followed by a participant noun
// ("10 students"). Returns "" when neither form appears.
func Size(text string) string {
	if m := sizeCapRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	if m := sizeNounRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// BareNumber finds a free-standing count or range in short label-scoped
// text, for spans like "Class Size: 8" where the label already names the
// field. Numbers glued to clock or decimal punctuation never qualify.
func BareNumber(text string) string {
	if r := BareRange(text); r != "" {
		return r
	}
	for _, loc := range bareNumRe.FindAllStringIndex(text, -1) {
		if cleanBoundary(text, loc[0], loc[1]) {
			return text[loc[0]:loc[1]]
		}
	}
	return ""
}
