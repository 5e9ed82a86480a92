package adapters

import (
	"strings"
	"testing"

	"classscout/internal/heuristic"
	"classscout/internal/model"
	"classscout/internal/scrape"
)

func TestDispatchKey(t *testing.T) {
	if got := DispatchKey("SoccerShots of Hudson County"); got != "soccershotsofhudsoncounty" {
		t.Errorf("Expected squashed key, got %q", got)
	}
}

func TestRegistry_Select(t *testing.T) {
	reg := NewRegistry()

	tests := []struct {
		name     string
		url      string
		expected string
		desc     string
	}{
		{"SoccerShots of Hudson County", "https://soccershots.com/hudson", "soccershots", "Franchise name"},
		{"Hudson County Soccer", "https://example.com/classes", "soccershots", "Regional alias alone"},
		{"AlphaMinds Academy", "https://alphamindsacademy.com", "alphaminds", "Name match"},
		{"Toddler Gym", "https://www.mygym.com/hoboken", "mygym", "URL match"},
		{"Aqua-Tots Hoboken", "https://aqua-tots.com/hoboken", "aquatots", "Hyphenated brand"},
		{"Swim Marketplace", "https://hisawyer.com/swim-time", "hisawyer", "Marketplace URL"},
		{"Darlene's Dance Studio", "https://darlenesdance.example", "generic", "Unclaimed source"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			got := reg.Select(model.Source{Name: tt.name, URL: tt.url})
			if got.Name() != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, got.Name())
			}
		})
	}
}

func TestGeneric_HeadingScan(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<h2>Tiny Tots Soccer</h2>
	<p>A fun introduction for ages 2-3.</p>
	<p>Schedule: Tuesday and Thursday, 10:00 - 10:45 AM.</p>
	<h2>Testimonials</h2>
	<p>Parents love us! Five stars all around.</p>
	</body></html>
	`)

	records := newGeneric().Extract(page)
	if len(records) != 1 {
		t.Fatalf("Expected testimonial section skipped, got %d records", len(records))
	}

	rec := records[0]
	if got := rec.Get(model.FieldTitle); got != "Tiny Tots Soccer" {
		t.Errorf("Expected title, got %q", got)
	}
	if got := rec.Get(model.FieldAgeRange); got != "2-3" {
		t.Errorf("Expected age 2-3, got %q", got)
	}
	if got := rec.Get(model.FieldDays); got != "Tuesday, Thursday" {
		t.Errorf("Expected Tuesday, Thursday, got %q", got)
	}
	if got := rec.Get(model.FieldTimes); got != "10:00-10:45 AM" {
		t.Errorf("Expected 10:00-10:45 AM, got %q", got)
	}
	if got := rec.Get(model.FieldDuration); got != "45m" {
		t.Errorf("Expected 45m, got %q", got)
	}
	if got := rec.Get(model.FieldSize); got != model.Unknown {
		t.Errorf("Expected unknown size, got %q", got)
	}
}

func TestGeneric_CardsWithHeader(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<div class="class-card"><h3>Classes Offered</h3><p>All classes meet weekly in our Hoboken studio.</p></div>
	<div class="class-card"><h3>Parkour Kids</h3><p>Ages 5-8, Wednesdays at 4:00 PM. 55 minutes of movement.</p></div>
	</body></html>
	`)

	records := newGeneric().Extract(page)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}

	if !records[0].Header {
		t.Error("Expected placeholder card marked as header")
	}
	if records[1].Header {
		t.Error("Expected real class not marked as header")
	}

	rec := records[1]
	if got := rec.Get(model.FieldTitle); got != "Parkour Kids" {
		t.Errorf("Expected title, got %q", got)
	}
	if got := rec.Get(model.FieldAgeRange); got != "5-8" {
		t.Errorf("Expected age 5-8, got %q", got)
	}
	if got := rec.Get(model.FieldDays); got != "Wednesday" {
		t.Errorf("Expected Wednesday, got %q", got)
	}
	if got := rec.Get(model.FieldDuration); got != "55m" {
		t.Errorf("Expected explicit 55m, got %q", got)
	}
}

func TestGeneric_LinkedDataWins(t *testing.T) {
	page := mustPage(t, `
	<html><head>
	<script type="application/ld+json">
	{"@type": "Event", "name": "Ninja Warriors", "description": "High energy obstacle training for kids.",
	 "startDate": "2026-09-12T15:30:00-04:00", "endDate": "2026-09-12T16:15:00-04:00",
	 "location": {"@type": "Place", "name": "Edge Gym"}}
	</script>
	</head><body>
	<div class="class-card"><h3>Stale Card</h3><p>Ages 1-2</p></div>
	</body></html>
	`)

	records := newGeneric().Extract(page)
	if len(records) != 1 {
		t.Fatalf("Expected linked data to stop the cascade, got %d records", len(records))
	}

	rec := records[0]
	if got := rec.Get(model.FieldTitle); got != "Ninja Warriors" {
		t.Errorf("Expected title, got %q", got)
	}
	if got := rec.Get(model.FieldDays); got != "Saturday" {
		t.Errorf("Expected Saturday from startDate, got %q", got)
	}
	if got := rec.Get(model.FieldTimes); got != "3:30 PM-4:15 PM" {
		t.Errorf("Expected times from event dates, got %q", got)
	}
	if got := rec.Get(model.FieldDuration); got != "45m" {
		t.Errorf("Expected 45m span, got %q", got)
	}
	if got := rec.Get(model.FieldLocation); got != "Edge Gym" {
		t.Errorf("Expected venue from linked data, got %q", got)
	}
}

func TestGeneric_AnchorFallback(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<ul>
	<li><a href="/login">Login here</a></li>
	<li><a href="/classes/karate">Karate for Kids, Ages 6-9</a></li>
	<li><a href="/contact">Contact Us Today</a></li>
	<li><a href="/classes/ballet">Beginner Ballet</a></li>
	</ul>
	</body></html>
	`)

	records := newGeneric().Extract(page)
	if len(records) != 2 {
		t.Fatalf("Expected denied links skipped, got %d records", len(records))
	}
	if got := records[0].Get(model.FieldTitle); got != "Karate for Kids, Ages 6-9" {
		t.Errorf("Expected link text as title, got %q", got)
	}
	if got := records[0].Get(model.FieldAgeRange); got != "6-9" {
		t.Errorf("Expected age from link text, got %q", got)
	}
	if got := records[1].Get(model.FieldTitle); got != "Beginner Ballet" {
		t.Errorf("Expected second link kept, got %q", got)
	}
}

func TestGeneric_AnchorCap(t *testing.T) {
	page := mustPage(t, `<html><body>`+
		strings.Repeat(`<a href="/c">Creative Movement Class</a>`, 12)+
		`</body></html>`)

	records := newGeneric().Extract(page)
	if len(records) != anchorMax {
		t.Fatalf("Expected anchor yield capped at %d, got %d", anchorMax, len(records))
	}
}

func TestAquaTots_Tables(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<table>
	<tr><th>Class</th><th>Age Group</th><th>Day</th><th>Time</th></tr>
	<tr><td>Tadpole</td><td>4-35 months</td><td>Saturday</td><td>9:00 - 9:30 AM</td></tr>
	<tr><td>Swim Basics</td><td>3-5</td><td>Tuesday</td><td>4:00 - 4:45 PM</td></tr>
	</table>
	</body></html>
	`)

	records := newAquaTots().Extract(page)
	if len(records) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(records))
	}

	rec := records[0]
	if got := rec.Get(model.FieldClassType); got != "Tadpole" {
		t.Errorf("Expected class column mapped, got %q", got)
	}
	if got := rec.Get(model.FieldAgeRange); got != "4-35 months" {
		t.Errorf("Expected age cell kept verbatim, got %q", got)
	}
	if got := rec.Get(model.FieldDays); got != "Saturday" {
		t.Errorf("Expected day cell, got %q", got)
	}
	if got := rec.Get(model.FieldDuration); got != "30m" {
		t.Errorf("Expected duration derived from time cell, got %q", got)
	}
	if got := records[1].Get(model.FieldDuration); got != "45m" {
		t.Errorf("Expected 45m for second row, got %q", got)
	}
}

func TestAlphaMinds_DerivedTitle(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<h3>Chess</h3>
	<p>Strategic thinking for ages 5-12. Thursdays at 4:30 PM.</p>
	</body></html>
	`)

	records := newAlphaMinds().Extract(page)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	rec := records[0]
	if got := rec.Get(model.FieldTitle); got != "Chess - Strategic thinking for ages 5-12" {
		t.Errorf("Expected derived title, got %q", got)
	}
	if got := rec.Get(model.FieldClassType); got != "Chess" {
		t.Errorf("Expected bare class type, got %q", got)
	}
	if got := rec.Get(model.FieldAgeRange); got != "5-12" {
		t.Errorf("Expected age range, got %q", got)
	}
}

func TestExtract_HeaderOnlyYieldKeepsGoing(t *testing.T) {
	page := mustPage(t, `
	<html><body>
	<div class="class-card"><h3>Our Classes</h3><p>Everything we offer, updated weekly.</p></div>
	<h2>Robotics Lab</h2>
	<p>Build and code robots. Ages 8-12.</p>
	</body></html>
	`)

	records := newGeneric().Extract(page)
	var robotics *model.Record
	for i := range records {
		if records[i].Get(model.FieldClassType) == "Robotics Lab" {
			robotics = &records[i]
		}
	}
	if robotics == nil {
		t.Fatal("Expected the heading scan to run after a header-only card yield")
	}
	if got := robotics.Get(model.FieldAgeRange); got != "8-12" {
		t.Errorf("Expected age 8-12, got %q", got)
	}
}

func TestFinalize_DropsBarePlaceholder(t *testing.T) {
	bare := candidate("Our Programs", "", heuristic.Fields{})
	real := candidate("Tiny Tots", "", heuristic.Fields{Age: "2-3"})

	out := finalize([]model.Record{bare, real})
	if len(out) != 1 {
		t.Fatalf("Expected bare placeholder dropped, got %d records", len(out))
	}
	if got := out[0].Get(model.FieldTitle); got != "Tiny Tots" {
		t.Errorf("Expected real record kept, got %q", got)
	}
}

func mustPage(t *testing.T, markup string) *scrape.Page {
	t.Helper()
	page, err := scrape.NewPage("https://example.com/classes", markup)
	if err != nil {
		t.Fatalf("Expected fixture to parse, got %v", err)
	}
	return page
}
