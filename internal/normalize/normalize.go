// Package normalize turns raw adapter yield into schema-conforming rows.
// Header records donate their description to the class rows after them
// and disappear, duplicates collapse first-wins while filling each
// other's unknowns, and every surviving record projects onto the
// source's schema.
package normalize

import (
	"strings"

	"classscout/internal/heuristic"
	"classscout/internal/model"
)

// Apply normalizes one source's extraction yield.
func Apply(src model.Source, records []model.Record) *model.RecordSet {
	schema := src.Schema
	if len(schema) == 0 {
		schema = model.DefaultSchema()
	}
	merged := dedupe(propagateHeaders(records))
	out := make([]model.Record, 0, len(merged))
	for _, rec := range merged {
		out = append(out, project(rec, schema))
	}
	return &model.RecordSet{Source: src.Name, URL: src.URL, Schema: schema, Records: out}
}

// propagateHeaders copies each header's description into the records in
// its section that have none, then drops the headers.
func propagateHeaders(records []model.Record) []model.Record {
	var out []model.Record
	sectionDesc := ""
	for _, rec := range records {
		if rec.Header {
			if d := rec.Get(model.FieldDescription); d != model.Unknown {
				sectionDesc = d
			}
			continue
		}
		if sectionDesc != "" && rec.Get(model.FieldDescription) == model.Unknown {
			rec = rec.Clone()
			rec.Set(model.FieldDescription, sectionDesc)
		}
		out = append(out, rec)
	}
	return out
}

// dedupe keeps the first record for each identity and folds later
// sightings into it, filling only fields the kept record lacks.
func dedupe(records []model.Record) []model.Record {
	var out []model.Record
	index := make(map[string]int)
	for _, rec := range records {
		key := identity(rec)
		if key == "" {
			out = append(out, rec)
			continue
		}
		if i, ok := index[key]; ok {
			fillUnknown(&out[i], rec)
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

// identity keys duplicates off the class type, falling back to the
// title. Records naming neither are all kept.
func identity(rec model.Record) string {
	for _, field := range []string{model.FieldClassType, model.FieldTitle} {
		if v := rec.Get(field); v != model.Unknown {
			return strings.ToLower(v)
		}
	}
	return ""
}

// fillUnknown copies fields the kept record lacks from a dropped
// duplicate. Known values never change, so order of arrival decides.
func fillUnknown(kept *model.Record, dup model.Record) {
	for field, value := range dup.Fields {
		if value == model.Unknown || strings.TrimSpace(value) == "" {
			continue
		}
		if kept.Get(field) == model.Unknown {
			kept.Set(field, value)
		}
	}
}

// project narrows a record to the schema's fields, cleaning each value.
// Values already cleaned pass through unchanged, which keeps repeated
// normalization a no-op.
func project(rec model.Record, schema []string) model.Record {
	out := model.NewRecord()
	for _, field := range schema {
		value := rec.Get(field)
		if value != model.Unknown {
			value = heuristic.Clean(value)
			if value == "" {
				value = model.Unknown
			}
		}
		out.Set(field, value)
	}
	return out
}
