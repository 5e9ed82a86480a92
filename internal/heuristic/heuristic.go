// Package heuristic turns the flattened text of a class candidate into
// field values. Each field scans in widening passes: a labeled window
// ("Age Group: 3-5") first, then the candidate's own text, then nearby
// context. Empty results mean the page never said; callers map those to
// the unknown sentinel.
package heuristic

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"classscout/internal/pattern"
)

// Input carries the text scopes a field scan may consult, from the
// candidate's own markup out to the whole page. Scope and Doc are
// optional; text-only callers leave them nil.
type Input struct {
	Scope *goquery.Selection
	Text  string
	Wide  string
	Doc   *goquery.Document
}

// Fields is the fragment a scan yields. Empty means not found.
type Fields struct {
	Age      string
	Days     string
	Times    string
	Duration string
	Size     string
	Location string
}

// Extract runs every field scan over in.
func Extract(in Input) Fields {
	var f Fields

	if w := labeledValue(in.Text, ageLabelRe); w != "" {
		if f.Age = pattern.Age(w); f.Age == "" {
			f.Age = pattern.BareRange(w)
		}
	}
	if f.Age == "" {
		f.Age = pattern.Age(in.Text)
	}
	if f.Age == "" {
		f.Age = pattern.Age(in.Wide)
	}

	if w := labeledValue(in.Text, daysLabelRe); w != "" {
		f.Days = pattern.Days(w)
	}
	if f.Days == "" {
		f.Days = pattern.Days(in.Text)
	}
	if f.Days == "" {
		f.Days = pattern.Days(in.Wide)
	}

	if w := labeledValue(in.Text, timesLabelRe); w != "" {
		f.Times = pattern.Times(w)
	}
	if f.Times == "" {
		f.Times = pattern.Times(in.Text)
	}
	if f.Times == "" {
		f.Times = pattern.Times(in.Wide)
	}

	if w := labeledValue(in.Text, durationLabelRe); w != "" {
		f.Duration = pattern.Duration(w)
	}
	if f.Duration == "" {
		f.Duration = pattern.Duration(in.Text)
	}
	if f.Duration == "" {
		f.Duration = pattern.Duration(in.Wide)
	}
	if f.Duration == "" && f.Times != "" {
		f.Duration = pattern.Derived(f.Times)
	}

	if w := labeledValue(in.Text, sizeLabelRe); w != "" {
		if f.Size = pattern.Size(w); f.Size == "" {
			f.Size = pattern.BareNumber(w)
		}
	}
	if f.Size == "" {
		f.Size = pattern.Size(in.Text)
	}
	if f.Size == "" {
		f.Size = pattern.Size(in.Wide)
	}

	f.Location = Location(in)
	return f
}

// Clean flattens whitespace, normalizes dashes and strips leading list
// bullets so a field value stays on one line.
func Clean(s string) string {
	return strings.TrimSpace(strings.TrimLeft(pattern.Collapse(s), "•·»> "))
}
