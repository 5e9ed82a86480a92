package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"classscout/internal/model"
)

func TestAirtable_Batches(t *testing.T) {
	var batches [][]airtableRecord
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer key123" {
			t.Errorf("unexpected auth header %q", got)
		}
		var payload airtablePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Errorf("decode payload: %v", err)
			return
		}
		batches = append(batches, payload.Records)
		fmt.Fprint(w, "{}")
	}))
	defer srv.Close()

	a := NewAirtable("key123", "base", "Classes")
	a.baseURL = srv.URL

	if err := a.Append(context.Background(), testSet(25)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	if len(batches) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(batches))
	}
	if len(batches[0]) != 10 || len(batches[1]) != 10 || len(batches[2]) != 5 {
		t.Errorf("unexpected batch sizes %d/%d/%d", len(batches[0]), len(batches[1]), len(batches[2]))
	}
	if got := batches[0][0].Fields[model.FieldTitle]; got != "Class 0" {
		t.Errorf("expected Class 0 in first batch, got %q", got)
	}
}

func TestAirtable_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"INVALID_REQUEST"}`, http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	a := NewAirtable("key", "base", "Classes")
	a.baseURL = srv.URL

	if err := a.Append(context.Background(), testSet(1)); err == nil {
		t.Error("expected error for rejected batch")
	}
}

func TestCSV_HeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.csv")
	c := NewCSV(path)

	if err := c.Append(context.Background(), testSet(2)); err != nil {
		t.Fatalf("first append failed: %v", err)
	}
	if err := c.Append(context.Background(), testSet(1)); err != nil {
		t.Fatalf("second append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Title,AgeRange") {
		t.Errorf("expected header first, got %q", lines[0])
	}
	if strings.Count(string(data), "Title,AgeRange") != 1 {
		t.Errorf("header written more than once")
	}
}

func TestICS_WeeklyEvents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classes.ics")
	i := NewICS(path)

	set := testSet(1)
	unscheduled := model.NewRecord()
	unscheduled.Set(model.FieldTitle, "Drop-in Play")
	set.Records = append(set.Records, unscheduled)

	if err := i.Append(context.Background(), set); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read ics: %v", err)
	}
	text := string(data)

	// One record, two weekdays, one event per weekday
	if got := strings.Count(text, "BEGIN:VEVENT"); got != 2 {
		t.Errorf("expected 2 events, got %d", got)
	}
	if !strings.Contains(text, "RRULE:FREQ=WEEKLY;BYDAY=TU") {
		t.Error("missing Tuesday recurrence rule")
	}
	if !strings.Contains(text, "RRULE:FREQ=WEEKLY;BYDAY=TH") {
		t.Error("missing Thursday recurrence rule")
	}
	if !strings.Contains(text, "SUMMARY:Class 0") {
		t.Error("missing event summary")
	}
	if strings.Contains(text, "Drop-in Play") {
		t.Error("unscheduled record should be skipped")
	}
}

func TestPreview(t *testing.T) {
	var buf bytes.Buffer
	p := NewPreview(&buf)

	if err := p.Append(context.Background(), testSet(2)); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Hudson Kids Gym") {
		t.Errorf("expected source name in preview, got %q", out)
	}
	if !strings.Contains(out, "Class 1") {
		t.Errorf("expected record row in preview, got %q", out)
	}
}

type stubSink struct {
	name  string
	calls int
	err   error
}

func (s *stubSink) Name() string { return s.name }

func (s *stubSink) Append(ctx context.Context, set *model.RecordSet) error {
	s.calls++
	return s.err
}

func TestMulti_FanOut(t *testing.T) {
	ok := &stubSink{name: "ok"}
	bad := &stubSink{name: "bad", err: errors.New("quota exceeded")}

	m := NewMulti(bad, ok)
	err := m.Append(context.Background(), testSet(1))

	if err == nil {
		t.Fatal("expected joined error")
	}
	if !strings.Contains(err.Error(), "bad") {
		t.Errorf("expected failing sink named in error, got %v", err)
	}
	if ok.calls != 1 || bad.calls != 1 {
		t.Errorf("expected both sinks called once, got %d and %d", ok.calls, bad.calls)
	}
}

func TestHeaderMatches(t *testing.T) {
	schema := []string{"Title", "AgeRange"}

	if !headerMatches([][]interface{}{{"Title", "AgeRange"}}, schema) {
		t.Error("expected exact header to match")
	}
	if !headerMatches([][]interface{}{{" Title ", "AgeRange"}}, schema) {
		t.Error("expected padded header to match")
	}
	if headerMatches(nil, schema) {
		t.Error("expected empty sheet to mismatch")
	}
	if headerMatches([][]interface{}{{"Title"}}, schema) {
		t.Error("expected short header to mismatch")
	}
	if headerMatches([][]interface{}{{"Title", "Ages"}}, schema) {
		t.Error("expected renamed column to mismatch")
	}
}

func testSet(n int) *model.RecordSet {
	set := &model.RecordSet{
		Source: "Hudson Kids Gym",
		URL:    "https://example.com/classes",
		Schema: []string{model.FieldTitle, model.FieldAgeRange, model.FieldDays, model.FieldTimes},
	}
	for i := 0; i < n; i++ {
		rec := model.NewRecord()
		rec.Set(model.FieldTitle, fmt.Sprintf("Class %d", i))
		rec.Set(model.FieldAgeRange, "3-5")
		rec.Set(model.FieldDays, "Tuesday, Thursday")
		rec.Set(model.FieldTimes, "10:00-10:45 AM")
		set.Records = append(set.Records, rec)
	}
	return set
}
