package pattern

import (
	"regexp"
	"strings"
)

var (
	streetRe = regexp.MustCompile(`(?i)\b\d{1,5}\s+(?:[A-Za-z0-9'.-]+\s+){0,4}(?:st(?:reet)?|ave(?:nue)?|blvd|boulevard|rd|road|dr(?:ive)?|ln|lane|way|pl(?:ace)?|ct|court|plaza|pkwy|parkway|hwy|highway|ter(?:race)?|sq(?:uare)?)\b\.?`)
	addrTailRe  = regexp.MustCompile(`^(?:\s*,?\s*(?i:suite|ste\.?|unit|#)\s*[A-Za-z0-9-]+)?(?:\s*,?\s+[A-Z]{2}\s+\d{5}(?:-\d{4})?|\s*,\s*[A-Z][A-Za-z'.-]*(?:\s+[A-Z][A-Za-z'.-]*){0,3}){0,4}`)
	technicalRe = regexp.MustCompile(`(?i)https?://|www\.|javascript|function\s*\(|[{}]|</|="|@media|\bvar\s|cookie policy|uses cookies|privacy policy|all rights reserved|copyright|\x{00a9}`)
)

// Address returns a street address found in text, including any suite,
// city, state and zip tail that follows the street line, or "".
func Address(text string) string {
	loc := streetRe.FindStringIndex(text)
	if loc == nil {
		return ""
	}
	out := text[loc[0]:loc[1]]
	if m := addrTailRe.FindString(text[loc[1]:]); m != "" {
		out += m
	}
	return Collapse(strings.TrimRight(out, ",. "))
}

// Technical reports whether text looks like markup, script or site
// boilerplate rather than prose a person wrote about a venue.
func Technical(text string) bool {
	if technicalRe.MatchString(text) {
		return true
	}
	for _, f := range strings.Fields(text) {
		if len(f) > 40 {
			return true
		}
	}
	return false
}
