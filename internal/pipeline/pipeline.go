// Package pipeline orchestrates the complete scrape of a source: fetch
// the page, extract class records through the source's adapter,
// normalize them, and deliver the result. Scrapes run concurrently;
// delivery is serialized so sinks never see concurrent appends.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"classscout/internal/fetch"
	"classscout/internal/model"
	"classscout/internal/normalize"
	"classscout/internal/scrape"
	"classscout/internal/scrape/adapters"
	"classscout/internal/sink"
	"classscout/internal/worker"
)

// Pipeline orchestrates the scrape of configured sources.
type Pipeline struct {
	registry *adapters.Registry
	fetcher  *fetch.Fetcher
	sink     sink.Sink

	// mu serializes sink appends; file sinks rewrite whole files.
	mu sync.Mutex
}

// NewPipeline creates a pipeline delivering to the given sink. A nil
// sink turns Run into scrape-only.
func NewPipeline(fetcher *fetch.Fetcher, out sink.Sink) *Pipeline {
	return &Pipeline{
		registry: adapters.NewRegistry(),
		fetcher:  fetcher,
		sink:     out,
	}
}

// Run scrapes one source and delivers the result.
func (p *Pipeline) Run(ctx context.Context, src model.Source) error {
	set, err := p.Scrape(ctx, src)
	if err != nil {
		return err
	}

	return p.Deliver(ctx, set)
}

// Deliver appends a record set to the configured sink.
func (p *Pipeline) Deliver(ctx context.Context, set *model.RecordSet) error {
	if p.sink == nil {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.sink.Append(ctx, set); err != nil {
		return fmt.Errorf("deliver %s: %w", set.Source, err)
	}

	return nil
}

// Scrape extracts one source's records without delivering them. A
// source whose page cannot be fetched still yields an empty,
// schema-conforming set, so one dead site never stops a run.
func (p *Pipeline) Scrape(ctx context.Context, src model.Source) (*model.RecordSet, error) {
	adapter := p.registry.Select(src)

	// 1. Fetch markup, rendering when the source or its family asks
	mode := src.Render
	if mode == model.RenderAuto {
		mode = adapter.Render()
	}

	markup, err := p.fetcher.Fetch(ctx, src.URL, mode)
	if err != nil {
		log.Warn().Err(err).Str("source", src.Name).Msg("fetch failed")
		markup = ""
	}

	// 2. Parse
	page, err := scrape.NewPage(src.URL, markup)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}

	// 3. Extract, retrying empty family yield with the generic adapter
	records := p.extract(adapter, page)
	if len(records) == 0 && adapter != p.registry.Generic() {
		log.Debug().Str("source", src.Name).Str("adapter", adapter.Name()).Msg("empty yield, retrying generic")
		records = p.extract(p.registry.Generic(), page)
	}

	// 4. Stamp provenance and normalize
	stamp(src, records)
	set := normalize.Apply(src, records)

	log.Info().
		Str("source", src.Name).
		Str("adapter", adapter.Name()).
		Int("records", len(set.Records)).
		Msg("scrape complete")

	return set, nil
}

// extract runs one adapter over the page, absorbing panics so hostile
// markup cannot take down the whole run.
func (p *Pipeline) extract(a adapters.Adapter, page *scrape.Page) (records []model.Record) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Str("adapter", a.Name()).Str("url", page.URL).Msg("adapter panicked")
			records = nil
		}
	}()

	return a.Extract(page)
}

// stamp fills the provenance fields extraction cannot know.
func stamp(src model.Source, records []model.Record) {
	date := model.ScrapeStamp(time.Now())
	for i := range records {
		if !records[i].Has(model.FieldWebsite) {
			records[i].Set(model.FieldWebsite, src.Name)
		}
		if !records[i].Has(model.FieldPageURL) {
			records[i].Set(model.FieldPageURL, src.URL)
		}
		records[i].Set(model.FieldScrapeDate, date)
	}
}

// NeedsBrowser reports whether any source resolves to script
// rendering, so callers know to launch the headless browser up front.
func NeedsBrowser(sources []model.Source) bool {
	reg := adapters.NewRegistry()
	for _, src := range sources {
		mode := src.Render
		if mode == model.RenderAuto {
			mode = reg.Select(src).Render()
		}
		if mode == model.RenderJS {
			return true
		}
	}
	return false
}

// ScrapeJob adapts one source scrape to the worker pool.
type ScrapeJob struct {
	pipeline *Pipeline
	source   model.Source
}

// NewScrapeJob creates a pool job for one source.
func NewScrapeJob(p *Pipeline, src model.Source) *ScrapeJob {
	return &ScrapeJob{pipeline: p, source: src}
}

// Execute implements worker.Job.
func (j *ScrapeJob) Execute(ctx context.Context) worker.Result {
	set, err := j.pipeline.Scrape(ctx, j.source)
	return &ScrapeResult{Source: j.source, Set: set, err: err}
}

// ScrapeResult is the pool result for one source.
type ScrapeResult struct {
	Source model.Source
	Set    *model.RecordSet
	err    error
}

// Err implements worker.Result.
func (r *ScrapeResult) Err() error { return r.err }
