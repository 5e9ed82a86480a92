package adapters

import (
	"classscout/internal/model"
	"classscout/internal/scrape"
)

// generic handles every source no family claims, and doubles as the
// pipeline's second chance when a family adapter comes up empty. It
// leans on the markup conventions most small studio sites share.
type generic struct{ site }

var genericCards = []string{
	"div.class-card",
	"div.program-card",
	"li.class-item",
	"div.program",
	"div.card",
	"article",
}

func newGeneric() *generic {
	return &generic{site{
		name:   "generic",
		render: model.RenderAuto,
	}}
}

func (g *generic) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		cards(genericCards...),
		headings(headingOpts{}),
		anchors,
	)
}
