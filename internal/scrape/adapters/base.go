package adapters

import (
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"classscout/internal/heuristic"
	"classscout/internal/model"
	"classscout/internal/pattern"
	"classscout/internal/scrape"
)

// strategy is one way of reading class candidates off a page.
type strategy func(*scrape.Page) []model.Record

// extract runs strategies in order and keeps the first one that yields a
// real class row, so a page with good linked data never falls through to
// link guessing. Header-only yields keep the cascade going.
func extract(page *scrape.Page, strategies ...strategy) []model.Record {
	for _, s := range strategies {
		records := finalize(s(page))
		for _, rec := range records {
			if !rec.Header {
				return records
			}
		}
	}
	return nil
}

// candidate assembles one record from a title, description and scanned
// fields. ClassType and Title both start as the candidate title; the
// normalizer keys duplicates off ClassType.
func candidate(title, desc string, f heuristic.Fields) model.Record {
	rec := model.NewRecord()
	rec.Set(model.FieldClassType, title)
	rec.Set(model.FieldTitle, title)
	rec.Set(model.FieldAgeRange, f.Age)
	rec.Set(model.FieldDays, f.Days)
	rec.Set(model.FieldTimes, f.Times)
	rec.Set(model.FieldDuration, f.Duration)
	rec.Set(model.FieldSize, f.Size)
	rec.Set(model.FieldLocation, f.Location)
	rec.Set(model.FieldDescription, desc)
	return rec
}

// placeholderTitles are section captions that masquerade as class names.
var placeholderTitles = map[string]bool{
	"classes":         true,
	"classes offered": true,
	"our classes":     true,
	"class schedule":  true,
	"schedule":        true,
	"programs":        true,
	"our programs":    true,
	"overview":        true,
	"welcome":         true,
}

func placeholder(title string) bool {
	return placeholderTitles[strings.ToLower(strings.TrimSpace(title))]
}

// finalize vets a strategy's yield. Placeholder-titled candidates with a
// real description become headers, kept so their description can seed the
// class rows that follow; placeholder candidates with no schedule facts
// at all are dropped.
func finalize(records []model.Record) []model.Record {
	var out []model.Record
	for _, rec := range records {
		if placeholder(rec.Get(model.FieldTitle)) {
			if rec.Get(model.FieldDescription) != model.Unknown {
				rec.Header = true
				out = append(out, rec)
				continue
			}
			if rec.Get(model.FieldAgeRange) == model.Unknown &&
				rec.Get(model.FieldDuration) == model.Unknown &&
				rec.Get(model.FieldDays) == model.Unknown {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}

// linkedData reads schema.org Event, Course and Product items. When a
// page ships structured data it is the author's own word, so it outranks
// every markup scan.
func linkedData(page *scrape.Page) []model.Record {
	var out []model.Record
	for _, item := range scrape.LinkedData(page.Doc) {
		if !scrape.IsType(item, "Event") && !scrape.IsType(item, "Course") && !scrape.IsType(item, "Product") {
			continue
		}
		title := scrape.Str(item, "name", "headline")
		if title == "" {
			continue
		}
		desc := scrape.Str(item, "description")
		f := heuristic.Extract(heuristic.Input{Text: title + " " + desc, Doc: page.Doc})
		rec := candidate(title, desc, f)
		if days, times, length := linkedSchedule(item); days != "" {
			rec.Set(model.FieldDays, days)
			if times != "" {
				rec.Set(model.FieldTimes, times)
			}
			if length != "" && rec.Get(model.FieldDuration) == model.Unknown {
				rec.Set(model.FieldDuration, length)
			}
		}
		out = append(out, rec)
	}
	return out
}

var linkedDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

// linkedSchedule derives weekday, time range and length from an Event's
// startDate and endDate. Date-only stamps still carry the weekday.
func linkedSchedule(item map[string]any) (days, times, length string) {
	start, hasClock, ok := linkedDate(scrape.Str(item, "startDate"))
	if !ok {
		return "", "", ""
	}
	days = start.Weekday().String()
	if !hasClock {
		return days, "", ""
	}
	times = clockLabel(start)
	if end, endClock, ok := linkedDate(scrape.Str(item, "endDate")); ok && endClock && end.After(start) {
		times += "-" + clockLabel(end)
		if span := int(end.Sub(start).Minutes()); span <= 360 {
			length = pattern.Label(span)
		}
	}
	return days, times, length
}

func linkedDate(s string) (t time.Time, hasClock, ok bool) {
	for _, layout := range linkedDateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, layout != "2006-01-02", true
		}
	}
	return time.Time{}, false, false
}

func clockLabel(t time.Time) string {
	h := t.Hour() % 12
	if h == 0 {
		h = 12
	}
	mer := "AM"
	if t.Hour() >= 12 {
		mer = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute(), mer)
}

// cards tries each container selector in order and keeps the first one
// that matches anything, the way a family's newest page layout shadows
// its older ones.
func cards(containers ...string) strategy {
	return func(page *scrape.Page) []model.Record {
		for _, sel := range containers {
			nodes := page.Doc.Find(sel)
			if nodes.Length() == 0 {
				continue
			}
			var out []model.Record
			nodes.Each(func(_ int, card *goquery.Selection) {
				if rec, ok := cardRecord(page, card); ok {
					out = append(out, rec)
				}
			})
			if len(out) > 0 {
				return out
			}
		}
		return nil
	}
}

const (
	cardTitleSel = `h1, h2, h3, h4, h5, h6, .title, .card-title, .program-title, .class-title, strong, b`
	cardDescSel  = `p, .description, .program-description, .class-description, .summary`
)

func cardRecord(page *scrape.Page, card *goquery.Selection) (model.Record, bool) {
	text := heuristic.Clean(card.Text())
	title := heuristic.Clean(card.Find(cardTitleSel).First().Text())
	if title == "" {
		title = firstLine(card.Text())
	}
	if title == "" || text == "" {
		return model.Record{}, false
	}
	var parts []string
	card.Find(cardDescSel).EachWithBreak(func(_ int, p *goquery.Selection) bool {
		if t := heuristic.Clean(p.Text()); t != "" && t != title {
			parts = append(parts, t)
		}
		return len(parts) < 3
	})
	f := heuristic.Extract(heuristic.Input{Scope: card, Text: text, Doc: page.Doc})
	return candidate(title, strings.Join(parts, " "), f), true
}

// headingDeny skips section headings that never caption a class.
var headingDeny = []string{
	"testimonial", "review", "faq", "about us", "about our", "contact",
	"what parents", "our team", "our story", "gallery", "blog", "news",
	"follow us", "find us", "hours",
}

type headingOpts struct {
	// Levels defaults to "h2, h3, h4".
	Levels string
	// Siblings caps how many following blocks feed the description.
	Siblings int
	// DeriveTitle appends the first description sentence to the title
	// when it adds information, for families whose headings are bare
	// program names.
	DeriveTitle bool
}

// headings treats section headings as class names and the blocks that
// follow each heading as its description.
func headings(opts headingOpts) strategy {
	levels := opts.Levels
	if levels == "" {
		levels = "h2, h3, h4"
	}
	siblings := opts.Siblings
	if siblings == 0 {
		siblings = 3
	}
	return func(page *scrape.Page) []model.Record {
		var out []model.Record
		page.Doc.Find(levels).Each(func(_ int, h *goquery.Selection) {
			title := heuristic.Clean(h.Text())
			if title == "" || denied(title, headingDeny) {
				return
			}
			var parts []string
			for sib := h.Next(); sib.Length() > 0 && len(parts) < siblings; sib = sib.Next() {
				if isHeading(sib) {
					break
				}
				if t := heuristic.Clean(sib.Text()); t != "" {
					parts = append(parts, t)
				}
			}
			if len(parts) == 0 {
				return
			}
			desc := strings.Join(parts, " ")
			f := heuristic.Extract(heuristic.Input{Text: title + " " + desc, Doc: page.Doc})
			rec := candidate(title, desc, f)
			if opts.DeriveTitle {
				if s := firstSentence(desc); s != "" && len(s) <= 80 && !strings.EqualFold(s, title) {
					rec.Set(model.FieldTitle, title+" - "+s)
				}
			}
			out = append(out, rec)
		})
		return out
	}
}

// anchorDeny rejects navigation links that can never be classes.
var anchorDeny = []string{"login", "register", "contact", "facebook", "instagram"}

const (
	anchorMinLen = 8
	anchorMax    = 8
)

// anchors is the last resort: link texts long enough to be class names,
// capped so a navigation-heavy page cannot flood the sink.
func anchors(page *scrape.Page) []model.Record {
	var out []model.Record
	page.Doc.Find("a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := heuristic.Clean(a.Text())
		href, _ := a.Attr("href")
		if len(text) < anchorMinLen || denied(strings.ToLower(text+" "+href), anchorDeny) {
			return true
		}
		wide := ""
		if parent := a.Parent(); parent.Length() > 0 {
			wide = heuristic.Clean(parent.Text())
		}
		f := heuristic.Extract(heuristic.Input{Text: text, Wide: wide, Doc: page.Doc})
		out = append(out, candidate(text, "", f))
		return len(out) < anchorMax
	})
	return out
}

func denied(text string, deny []string) bool {
	low := strings.ToLower(text)
	for _, d := range deny {
		if strings.Contains(low, d) {
			return true
		}
	}
	return false
}

var headingNames = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

func isHeading(s *goquery.Selection) bool {
	return headingNames[goquery.NodeName(s)]
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if t := heuristic.Clean(line); t != "" {
			return t
		}
	}
	return ""
}

func firstSentence(text string) string {
	if i := strings.IndexAny(text, ".!?"); i >= 0 {
		return strings.TrimSpace(text[:i])
	}
	return strings.TrimSpace(text)
}
