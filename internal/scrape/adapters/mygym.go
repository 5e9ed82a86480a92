package adapters

import (
	"classscout/internal/model"
	"classscout/internal/scrape"
)

// myGym reads mygym.com location pages, whose weekly schedule renders
// client side into per-class cards.
type myGym struct{ site }

var myGymCards = []string{
	"div.schedule-card",
	"div.class-card",
	"li.class-item",
	"div.program-block",
	"div.schedule",
	"div.card",
}

func newMyGym() *myGym {
	return &myGym{site{
		name:    "mygym",
		aliases: []string{"mygym"},
		render:  model.RenderJS,
	}}
}

func (m *myGym) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		cards(myGymCards...),
		headings(headingOpts{}),
		anchors,
	)
}
