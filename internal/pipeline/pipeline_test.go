package pipeline

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"classscout/internal/cache"
	"classscout/internal/fetch"
	"classscout/internal/model"
	"classscout/internal/worker"
)

const classMarkup = `<html><body>
<div class="class-card">
  <h3>Tumbling Tots</h3>
  <p>Ages 2-3. Tuesdays 10:00 - 10:45 AM in the main gym.</p>
</div>
<div class="class-card">
  <h3>Junior Jumpers</h3>
  <p>Ages 4-6. Thursdays 4:00 - 4:45 PM.</p>
</div>
</body></html>`

func TestPipeline_Run(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(classMarkup))
	}))
	defer srv.Close()

	out := &captureSink{}
	p := newTestPipeline(out)

	src := model.Source{Name: "Hudson Kids Gym", URL: srv.URL + "/classes"}
	if err := p.Run(context.Background(), src); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(out.sets) != 1 {
		t.Fatalf("Expected 1 delivered set, got %d", len(out.sets))
	}

	set := out.sets[0]
	if len(set.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(set.Records))
	}

	titles := make(map[string]bool)
	for _, rec := range set.Records {
		titles[rec.Get(model.FieldTitle)] = true

		if got := rec.Get(model.FieldWebsite); got != "Hudson Kids Gym" {
			t.Errorf("Expected website stamp, got %q", got)
		}
		if got := rec.Get(model.FieldPageURL); got != src.URL {
			t.Errorf("Expected page url stamp, got %q", got)
		}
		if rec.Get(model.FieldScrapeDate) == model.Unknown {
			t.Error("Expected scrape date stamp")
		}
	}

	if !titles["Tumbling Tots"] || !titles["Junior Jumpers"] {
		t.Errorf("Expected both class titles, got %v", titles)
	}
}

func TestPipeline_FetchFailureYieldsEmptySet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "down for maintenance", http.StatusInternalServerError)
	}))
	defer srv.Close()

	p := newTestPipeline(nil)

	src := model.Source{Name: "Dead Site", URL: srv.URL + "/classes"}
	set, err := p.Scrape(context.Background(), src)
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if !set.Empty() {
		t.Errorf("Expected empty set, got %d records", len(set.Records))
	}

	if set.Source != "Dead Site" {
		t.Errorf("Expected source name on empty set, got %q", set.Source)
	}

	if len(set.Schema) != len(model.DefaultSchema()) {
		t.Errorf("Expected default schema on empty set, got %v", set.Schema)
	}
}

func TestPipeline_SinkErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(classMarkup))
	}))
	defer srv.Close()

	out := &captureSink{err: errors.New("quota exceeded")}
	p := newTestPipeline(out)

	src := model.Source{Name: "Hudson Kids Gym", URL: srv.URL + "/classes"}
	err := p.Run(context.Background(), src)
	if err == nil {
		t.Fatal("Expected delivery error, got nil")
	}

	if !strings.Contains(err.Error(), "deliver") {
		t.Errorf("Expected deliver error, got %v", err)
	}
}

func TestScrapeJob_Pool(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/robots.txt" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(classMarkup))
	}))
	defer srv.Close()

	p := newTestPipeline(nil)

	sources := []model.Source{
		{Name: "Hudson Kids Gym", URL: srv.URL + "/classes"},
		{Name: "Riverside Rec Center", URL: srv.URL + "/rec"},
	}

	pool := worker.NewPool(2)
	pool.Start()
	for _, src := range sources {
		pool.Submit(NewScrapeJob(p, src))
	}

	results := pool.Wait()
	if len(results) != 2 {
		t.Fatalf("Expected 2 results, got %d", len(results))
	}

	for _, res := range results {
		if res.Err() != nil {
			t.Errorf("Expected no error, got %v", res.Err())
		}

		sr, ok := res.(*ScrapeResult)
		if !ok {
			t.Fatalf("Expected *ScrapeResult, got %T", res)
		}

		if sr.Set.Empty() {
			t.Errorf("Expected records for %s", sr.Source.Name)
		}
	}
}

func newTestPipeline(out *captureSink) *Pipeline {
	f := fetch.New(fetch.Config{Rate: 100}, cache.NewMemory(time.Minute), nil)
	if out == nil {
		return NewPipeline(f, nil)
	}
	return NewPipeline(f, out)
}

type captureSink struct {
	sets []*model.RecordSet
	err  error
}

func (c *captureSink) Name() string { return "capture" }

func (c *captureSink) Append(_ context.Context, set *model.RecordSet) error {
	if c.err != nil {
		return c.err
	}
	c.sets = append(c.sets, set)
	return nil
}
