package model

// RenderMode selects how a source's page is fetched.
type RenderMode string

const (
	// RenderAuto defers to the adapter's render preference.
	RenderAuto RenderMode = ""
	// RenderStatic fetches with a plain HTTP GET.
	RenderStatic RenderMode = "static"
	// RenderJS fetches through a headless browser so client-side
	// markup is populated before extraction.
	RenderJS RenderMode = "js"
)

// Source describes one scrape target. Immutable once loaded.
type Source struct {
	Name      string     `yaml:"name" json:"name"`
	URL       string     `yaml:"url" json:"url"`
	Schema    []string   `yaml:"schema" json:"schema"`
	Timeframe string     `yaml:"timeframe,omitempty" json:"timeframe,omitempty"`
	Render    RenderMode `yaml:"render,omitempty" json:"render,omitempty"`
}

// DefaultSchema is the column set used when a source declares none.
func DefaultSchema() []string {
	return []string{
		FieldWebsite,
		FieldPageURL,
		FieldClassType,
		FieldAgeRange,
		FieldDays,
		FieldTimes,
		FieldTitle,
		FieldDescription,
		FieldScrapeDate,
	}
}
