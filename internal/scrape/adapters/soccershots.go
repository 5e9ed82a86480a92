package adapters

import (
	"classscout/internal/model"
	"classscout/internal/scrape"
)

// soccerShots reads soccershots.com franchise pages. Regional sites
// ("SoccerShots of Hudson County") share the program-finder layout, a
// script-rendered list of result cards, but older franchises still serve
// static listing markup, so the card list spans both generations.
type soccerShots struct{ site }

var soccerShotsCards = []string{
	"div.result",
	"div.search-result",
	"div.search-listing",
	"li.result",
	"div.program-card",
	"div.card",
	"div.listing",
	"div.item",
}

func newSoccerShots() *soccerShots {
	return &soccerShots{site{
		name:    "soccershots",
		aliases: []string{"soccershots", "hudsoncounty"},
		render:  model.RenderJS,
	}}
}

func (s *soccerShots) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		cards(soccerShotsCards...),
		headings(headingOpts{}),
		anchors,
	)
}
