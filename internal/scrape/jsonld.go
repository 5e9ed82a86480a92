package scrape

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkedData returns every schema.org item embedded in the page's
// ld+json script blocks. A block may hold a single object, an array, or
// an @graph container; all flatten to one list. Malformed blocks are
// skipped rather than failing the page.
func LinkedData(doc *goquery.Document) []map[string]any {
	var items []map[string]any
	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, s *goquery.Selection) {
		items = append(items, decodeLinkedData(s.Text())...)
	})
	return items
}

func decodeLinkedData(raw string) []map[string]any {
	raw = strings.TrimSpace(raw)
	var one map[string]any
	if err := json.Unmarshal([]byte(raw), &one); err == nil {
		return flattenGraph(one)
	}
	var many []map[string]any
	if err := json.Unmarshal([]byte(raw), &many); err == nil {
		var out []map[string]any
		for _, m := range many {
			out = append(out, flattenGraph(m)...)
		}
		return out
	}
	return nil
}

func flattenGraph(m map[string]any) []map[string]any {
	graph, ok := m["@graph"].([]any)
	if !ok {
		return []map[string]any{m}
	}
	var out []map[string]any
	for _, item := range graph {
		if im, ok := item.(map[string]any); ok {
			out = append(out, im)
		}
	}
	return out
}

// IsType reports whether a linked-data item declares the given @type,
// which may be a single string or a list.
func IsType(item map[string]any, want string) bool {
	switch t := item["@type"].(type) {
	case string:
		return strings.EqualFold(t, want)
	case []any:
		for _, v := range t {
			if s, ok := v.(string); ok && strings.EqualFold(s, want) {
				return true
			}
		}
	}
	return false
}

// Str returns the first nonempty string among the item's keys.
func Str(item map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := item[k].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
