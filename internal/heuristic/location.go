package heuristic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"classscout/internal/pattern"
	"classscout/internal/scrape"
)

const locationMax = 120

// hintSelector matches elements whose markup names a venue: the
// address tag, schema.org microdata, and class or id naming hints.
const hintSelector = `address, [itemprop="address"], [itemprop="location"], [class*="location"], [class*="address"], [class*="venue"], [id*="location"], [id*="address"]`

// Location finds where classes meet, widening scope only as needed: a
// labeled span in the candidate text, venue-hinted elements inside the
// candidate's markup, a street address in the candidate or nearby text,
// the same hints over the whole page, and finally the page's linked
// data. Markup-shaped candidates are rejected at every step.
func Location(in Input) string {
	if w := labeledValue(in.Text, locationLabelRe); w != "" {
		if v := venue(w); v != "" {
			return v
		}
	}
	if in.Scope != nil {
		if v := fromHints(in.Scope); v != "" {
			return v
		}
	}
	if v := pattern.Address(in.Text); v != "" {
		return v
	}
	if v := pattern.Address(in.Wide); v != "" {
		return v
	}
	if in.Doc != nil {
		if v := fromHints(in.Doc.Selection); v != "" {
			return v
		}
		if v := fromLinkedData(in.Doc); v != "" {
			return v
		}
		if v := pattern.Address(in.Doc.Text()); v != "" {
			return v
		}
	}
	return ""
}

func fromHints(s *goquery.Selection) string {
	found := ""
	s.Find(hintSelector).EachWithBreak(func(_ int, el *goquery.Selection) bool {
		found = venue(el.Text())
		return found == ""
	})
	return found
}

func fromLinkedData(doc *goquery.Document) string {
	for _, item := range scrape.LinkedData(doc) {
		for _, key := range []string{"location", "address", "venue"} {
			if v := venue(linkedText(item[key])); v != "" {
				return v
			}
		}
	}
	return ""
}

// linkedText flattens a linked-data location value, which may be a plain
// string, a Place with a nested PostalAddress, or a list of either.
func linkedText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case map[string]any:
		var parts []string
		if s, ok := t["name"].(string); ok && s != "" {
			parts = append(parts, s)
		}
		for _, k := range []string{"streetAddress", "addressLocality", "addressRegion", "postalCode"} {
			if s, ok := t[k].(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		if nested, ok := t["address"]; ok {
			if s := linkedText(nested); s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case []any:
		for _, item := range t {
			if s := linkedText(item); s != "" {
				return s
			}
		}
	}
	return ""
}

// venue vets one location candidate: short, prose-shaped, nonempty.
func venue(s string) string {
	s = Clean(s)
	if s == "" || len(s) > locationMax || pattern.Technical(s) {
		return ""
	}
	return s
}
