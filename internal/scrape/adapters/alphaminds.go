package adapters

import (
	"classscout/internal/model"
	"classscout/internal/scrape"
)

// alphaMinds reads alphamindsacademy.com, whose enrichment pages are
// plain sections: a heading naming the program, paragraphs after it.
// Headings alone make poor titles there ("Chess"), so the first
// description sentence is folded in when it says more.
type alphaMinds struct{ site }

func newAlphaMinds() *alphaMinds {
	return &alphaMinds{site{
		name:    "alphaminds",
		aliases: []string{"alphaminds"},
		render:  model.RenderStatic,
	}}
}

func (a *alphaMinds) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		headings(headingOpts{DeriveTitle: true}),
		anchors,
	)
}
