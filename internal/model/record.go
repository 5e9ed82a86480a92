package model

import (
	"strings"
	"time"
)

// Unknown is the sentinel for a field that could not be determined.
// Fields are never empty or absent; consumers branch on this value only.
const Unknown = "N/A"

// Canonical field names for extracted class records.
const (
	FieldWebsite     = "Website"
	FieldPageURL     = "PageURL"
	FieldClassType   = "ClassType"
	FieldTitle       = "Title"
	FieldAgeRange    = "AgeRange"
	FieldDays        = "DayOfWeek"
	FieldTimes       = "Times"
	FieldDuration    = "ClassLength"
	FieldSize        = "ClassSize"
	FieldLocation    = "Location"
	FieldDescription = "Description"
	FieldScrapeDate  = "ScrapeDate"
)

// fieldAliases maps squashed lowercase schema names to canonical fields.
// Sheet schemas from different operators name the same column differently
// ("AgeGroup" vs "AgeRange" vs "Age"); all resolve to one canonical key.
var fieldAliases = map[string]string{
	"website":     FieldWebsite,
	"site":        FieldWebsite,
	"sitename":    FieldWebsite,
	"pageurl":     FieldPageURL,
	"url":         FieldPageURL,
	"classtype":   FieldClassType,
	"class":       FieldClassType,
	"program":     FieldClassType,
	"course":      FieldClassType,
	"title":       FieldTitle,
	"name":        FieldTitle,
	"classname":   FieldTitle,
	"agerange":    FieldAgeRange,
	"agegroup":    FieldAgeRange,
	"age":         FieldAgeRange,
	"ages":        FieldAgeRange,
	"dayofweek":   FieldDays,
	"daysofweek":  FieldDays,
	"days":        FieldDays,
	"day":         FieldDays,
	"weekday":     FieldDays,
	"weekdays":    FieldDays,
	"times":       FieldTimes,
	"time":        FieldTimes,
	"timerange":   FieldTimes,
	"classlength": FieldDuration,
	"duration":    FieldDuration,
	"length":      FieldDuration,
	"classsize":   FieldSize,
	"size":        FieldSize,
	"capacity":    FieldSize,
	"location":    FieldLocation,
	"venue":       FieldLocation,
	"address":     FieldLocation,
	"where":       FieldLocation,
	"description": FieldDescription,
	"desc":        FieldDescription,
	"details":     FieldDescription,
	"summary":     FieldDescription,
	"scrapedate":  FieldScrapeDate,
	"scraped":     FieldScrapeDate,
}

// CanonicalField resolves a schema field name to its canonical key.
// Unrecognized names pass through unchanged so custom schema columns
// still round-trip.
func CanonicalField(name string) string {
	key := strings.ToLower(name)
	key = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '_', '-':
			return -1
		}
		return r
	}, key)
	if canonical, ok := fieldAliases[key]; ok {
		return canonical
	}
	return name
}

// Record is one extracted class entry. Fields are keyed by canonical
// field name; lookups through Get never return an empty string.
type Record struct {
	Fields map[string]string

	// Header marks a record carrying only the page-wide description,
	// to be propagated into sibling records and then discarded.
	Header bool
}

// NewRecord creates an empty record.
func NewRecord() Record {
	return Record{Fields: make(map[string]string)}
}

// Get returns the value for a field (by any alias), or Unknown.
func (r Record) Get(field string) string {
	if r.Fields == nil {
		return Unknown
	}
	if v, ok := r.Fields[CanonicalField(field)]; ok && strings.TrimSpace(v) != "" {
		return v
	}
	return Unknown
}

// Has reports whether the field resolved to a real value.
func (r Record) Has(field string) bool {
	return r.Get(field) != Unknown
}

// Set stores a value under the field's canonical key.
func (r *Record) Set(field, value string) {
	if r.Fields == nil {
		r.Fields = make(map[string]string)
	}
	r.Fields[CanonicalField(field)] = value
}

// Clone returns an independent copy of the record.
func (r Record) Clone() Record {
	out := Record{Fields: make(map[string]string, len(r.Fields)), Header: r.Header}
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// RecordSet is the deduplicated, schema-projected output for one source.
type RecordSet struct {
	Source  string   `json:"source"`
	URL     string   `json:"url"`
	Schema  []string `json:"schema"`
	Records []Record `json:"records"`
}

// Empty reports whether the set holds no records.
func (s *RecordSet) Empty() bool {
	return s == nil || len(s.Records) == 0
}

// Rows returns record values in schema order, one row per record.
func (s *RecordSet) Rows() [][]string {
	rows := make([][]string, 0, len(s.Records))
	for _, rec := range s.Records {
		row := make([]string, len(s.Schema))
		for i, field := range s.Schema {
			row[i] = rec.Get(field)
		}
		rows = append(rows, row)
	}
	return rows
}

// ScrapeStamp formats a scrape timestamp the way sheet consumers expect.
func ScrapeStamp(t time.Time) string {
	return t.Format("01/02/2006")
}
