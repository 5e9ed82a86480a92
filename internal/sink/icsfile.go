package sink

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"classscout/internal/model"
	"classscout/internal/pattern"
)

// ICS writes weekly recurring calendar events for schedulable classes.
// A record needs at least one weekday and a parsable time range to
// become an event; the rest are skipped.
type ICS struct {
	path string
	cal  *ics.Calendar
}

// NewICS writes a calendar to path. Each Append rewrites the file with
// everything collected so far.
func NewICS(path string) *ICS {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//classscout//classscout//EN")
	return &ICS{path: path, cal: cal}
}

// Name identifies the sink in logs.
func (i *ICS) Name() string { return "ics" }

type icsDay struct {
	weekday time.Weekday
	code    string
}

var icsDays = map[string]icsDay{
	"Monday":    {time.Monday, "MO"},
	"Tuesday":   {time.Tuesday, "TU"},
	"Wednesday": {time.Wednesday, "WE"},
	"Thursday":  {time.Thursday, "TH"},
	"Friday":    {time.Friday, "FR"},
	"Saturday":  {time.Saturday, "SA"},
	"Sunday":    {time.Sunday, "SU"},
}

// Append adds one event per record per weekday and rewrites the file.
func (i *ICS) Append(ctx context.Context, set *model.RecordSet) error {
	added := 0
	for idx, rec := range set.Records {
		days := weekdays(rec.Get(model.FieldDays))
		start, end, ok := pattern.RangeMinutes(rec.Get(model.FieldTimes))
		if len(days) == 0 || !ok {
			continue
		}

		for _, day := range days {
			uid := fmt.Sprintf("%s-%d-%s@classscout", slug(set.Source), idx, strings.ToLower(day.code))
			event := i.cal.AddEvent(uid)
			event.SetDtStampTime(time.Now())

			first := nextWeekday(time.Now(), day.weekday)
			startAt := time.Date(first.Year(), first.Month(), first.Day(), start/60, start%60, 0, 0, time.Local)
			endAt := time.Date(first.Year(), first.Month(), first.Day(), end/60, end%60, 0, 0, time.Local)
			if !endAt.After(startAt) {
				endAt = endAt.AddDate(0, 0, 1)
			}
			event.SetStartAt(startAt)
			event.SetEndAt(endAt)
			event.SetSummary(rec.Get(model.FieldTitle))
			if loc := rec.Get(model.FieldLocation); loc != model.Unknown {
				event.SetLocation(loc)
			}
			if desc := rec.Get(model.FieldDescription); desc != model.Unknown {
				event.SetDescription(desc)
			}
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + day.code)
			added++
		}
	}

	if added == 0 {
		return nil
	}

	if err := os.WriteFile(i.path, []byte(i.cal.Serialize()), 0644); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}
	return nil
}

// weekdays parses a normalized day list like "Tuesday, Thursday".
func weekdays(field string) []icsDay {
	var out []icsDay
	for _, part := range strings.Split(field, ",") {
		if d, ok := icsDays[strings.TrimSpace(part)]; ok {
			out = append(out, d)
		}
	}
	return out
}

func nextWeekday(from time.Time, day time.Weekday) time.Time {
	offset := (int(day) - int(from.Weekday()) + 7) % 7
	return from.AddDate(0, 0, offset)
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "source"
	}
	return b.String()
}
