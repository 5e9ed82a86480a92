package adapters

import (
	"classscout/internal/model"
	"classscout/internal/scrape"
)

// hiSawyer reads hisawyer.com marketplace listings. The schedule widget
// is fully script-rendered and ships generous Event linked data, so the
// markup scan is mostly a fallback here.
type hiSawyer struct{ site }

var hiSawyerCards = []string{
	"div.schedule-item",
	"div.schedules",
	"div.event",
	"li.event",
}

func newHiSawyer() *hiSawyer {
	return &hiSawyer{site{
		name:    "hisawyer",
		aliases: []string{"hisawyer"},
		render:  model.RenderJS,
	}}
}

func (h *hiSawyer) Extract(page *scrape.Page) []model.Record {
	return extract(page,
		linkedData,
		cards(hiSawyerCards...),
		headings(headingOpts{}),
		anchors,
	)
}
