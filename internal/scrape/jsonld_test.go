package scrape

import "testing"

func TestNewPage_FlattensText(t *testing.T) {
	page, err := NewPage("https://example.com", `<html><body><h1>Tiny Tots</h1><p>Ages 2-3</p></body></html>`)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if page.URL != "https://example.com" {
		t.Errorf("Expected URL kept, got %s", page.URL)
	}
	if page.Doc == nil {
		t.Fatal("Expected a parsed document")
	}
	if want := "Tiny TotsAges 2-3"; page.Text != want {
		t.Errorf("Expected %q, got %q", want, page.Text)
	}
}

func TestLinkedData_SingleObject(t *testing.T) {
	page := mustPage(t, `
	<html><head>
	<script type="application/ld+json">
	{"@type": "Event", "name": "Tiny Tots Soccer", "location": "Hoboken"}
	</script>
	</head><body></body></html>
	`)

	items := LinkedData(page.Doc)
	if len(items) != 1 {
		t.Fatalf("Expected 1 item, got %d", len(items))
	}
	if got := Str(items[0], "name"); got != "Tiny Tots Soccer" {
		t.Errorf("Expected event name, got %q", got)
	}
	if !IsType(items[0], "Event") {
		t.Error("Expected item to be an Event")
	}
}

func TestLinkedData_ArrayAndGraph(t *testing.T) {
	page := mustPage(t, `
	<html><head>
	<script type="application/ld+json">
	[{"@type": "Course", "name": "First"}, {"@type": "Course", "name": "Second"}]
	</script>
	<script type="application/ld+json">
	{"@context": "https://schema.org", "@graph": [{"@type": "Event", "name": "Third"}]}
	</script>
	</head><body></body></html>
	`)

	items := LinkedData(page.Doc)
	if len(items) != 3 {
		t.Fatalf("Expected 3 items, got %d", len(items))
	}
	if got := Str(items[2], "name"); got != "Third" {
		t.Errorf("Expected graph item flattened, got %q", got)
	}
}

func TestLinkedData_SkipsMalformed(t *testing.T) {
	page := mustPage(t, `
	<html><head>
	<script type="application/ld+json">{not json at all</script>
	<script type="application/ld+json">{"@type": "Event", "name": "Kept"}</script>
	</head><body></body></html>
	`)

	items := LinkedData(page.Doc)
	if len(items) != 1 {
		t.Fatalf("Expected malformed block skipped, got %d items", len(items))
	}
	if got := Str(items[0], "name"); got != "Kept" {
		t.Errorf("Expected %q, got %q", "Kept", got)
	}
}

func TestIsType_List(t *testing.T) {
	item := map[string]any{"@type": []any{"Thing", "Event"}}
	if !IsType(item, "event") {
		t.Error("Expected case insensitive match in type list")
	}
	if IsType(item, "Course") {
		t.Error("Expected no match for absent type")
	}
}

func TestStr_FirstNonEmpty(t *testing.T) {
	item := map[string]any{"name": "  ", "headline": "Swim Basics", "count": 3.0}
	if got := Str(item, "name", "headline"); got != "Swim Basics" {
		t.Errorf("Expected blank name skipped, got %q", got)
	}
	if got := Str(item, "count"); got != "" {
		t.Errorf("Expected non-string ignored, got %q", got)
	}
}

func mustPage(t *testing.T, markup string) *Page {
	t.Helper()
	page, err := NewPage("https://example.com", markup)
	if err != nil {
		t.Fatalf("Expected page to parse, got %v", err)
	}
	return page
}
