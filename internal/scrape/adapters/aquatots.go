package adapters

import (
	"github.com/PuerkitoBio/goquery"

	"classscout/internal/heuristic"
	"classscout/internal/model"
	"classscout/internal/pattern"
	"classscout/internal/scrape"
)

// aquaTots reads aqua-tots.com school pages, which publish their swim
// schedule as plain tables: a header row naming the columns, one class
// per row.
type aquaTots struct{ site }

var aquaTotsCards = []string{
	"div.program-card",
	"div.class-card",
	"div.card",
}

func newAquaTots() *aquaTots {
	return &aquaTots{site{
		name:    "aquatots",
		aliases: []string{"aquatots"},
		render:  model.RenderStatic,
	}}
}

func (a *aquaTots) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		tables,
		cards(aquaTotsCards...),
		headings(headingOpts{}),
		anchors,
	)
}

// tables zips each data row against the header row, mapping column names
// through the canonical field aliases so "Class", "Age Group" and "Day"
// land in the right fields without per-table wiring. Rows that never name
// a class are skipped.
func tables(page *scrape.Page) []model.Record {
	var out []model.Record
	page.Doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return
		}
		var headers []string
		rows.First().Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, heuristic.Clean(cell.Text()))
		})
		rows.Each(func(i int, row *goquery.Selection) {
			if i == 0 {
				return
			}
			cells := row.Find("td")
			if cells.Length() == 0 {
				return
			}
			rec := model.NewRecord()
			cells.Each(func(j int, cell *goquery.Selection) {
				if j < len(headers) && headers[j] != "" {
					rec.Set(headers[j], heuristic.Clean(cell.Text()))
				}
			})
			title := rec.Get(model.FieldClassType)
			if title == model.Unknown {
				title = rec.Get(model.FieldTitle)
			}
			if title == model.Unknown {
				return
			}
			if rec.Get(model.FieldTitle) == model.Unknown {
				rec.Set(model.FieldTitle, title)
			}
			if rec.Get(model.FieldClassType) == model.Unknown {
				rec.Set(model.FieldClassType, title)
			}
			if rec.Get(model.FieldDuration) == model.Unknown {
				if d := pattern.Derived(rec.Get(model.FieldTimes)); d != "" {
					rec.Set(model.FieldDuration, d)
				}
			}
			out = append(out, rec)
		})
	})
	return out
}
