package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"classscout/internal/cache"
	"classscout/internal/config"
	"classscout/internal/fetch"
	"classscout/internal/model"
	"classscout/internal/pipeline"
	"classscout/internal/sink"
	"classscout/internal/worker"
)

var (
	sourceFilter  string
	dryRun        bool
	workers       int
	noCache       bool
	scrapeTimeout time.Duration
)

// scrapeCmd represents the scrape command
var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every configured source once",
	Long: `Scrape runs one collection cycle:
- Fetch each configured source page, honoring robots.txt and rate limits
- Extract class records through the source's site adapter
- Normalize, dedupe and project records onto the source schema
- Append the rows to every configured sink

Example:
  classscout scrape
  classscout scrape --source Hudson --dry-run
  classscout scrape --workers 8 --no-cache`,
	RunE: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().StringVar(&sourceFilter, "source", "", "only scrape sources whose name contains this text")
	scrapeCmd.Flags().BoolVar(&dryRun, "dry-run", false, "print records instead of delivering to sinks")
	scrapeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent scrapes (default from config)")
	scrapeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	scrapeCmd.Flags().DurationVar(&scrapeTimeout, "timeout", 10*time.Minute, "total timeout for the cycle")
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scrapeTimeout)
	defer cancel()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sources := filterSources(cfg.Sources, sourceFilter)
	if len(sources) == 0 {
		return fmt.Errorf("no configured source matches %q", sourceFilter)
	}

	out, err := buildSink(ctx, cfg, dryRun)
	if err != nil {
		return err
	}

	fetcher, cleanup := buildFetcher(cfg, sources, noCache)
	defer cleanup()

	p := pipeline.NewPipeline(fetcher, out)

	if verbose {
		fmt.Fprintf(os.Stderr, "Scraping %d sources\n\n", len(sources))
	}

	n := cfg.Workers
	if workers > 0 {
		n = workers
	}

	pool := worker.NewPool(n)
	pool.Start()
	for _, src := range sources {
		pool.Submit(pipeline.NewScrapeJob(p, src))
	}

	// Scrapes run in parallel; delivery stays on this goroutine so
	// sinks never see concurrent appends.
	delivered := 0
	failed := 0
	for _, res := range pool.Wait() {
		sr, ok := res.(*pipeline.ScrapeResult)
		if !ok {
			continue
		}
		if sr.Err() != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", sr.Source.Name, sr.Err())
			continue
		}
		if err := p.Deliver(ctx, sr.Set); err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", sr.Source.Name, err)
			continue
		}
		delivered++
		fmt.Fprintf(os.Stderr, "✓ %s: %d records\n", sr.Source.Name, len(sr.Set.Records))
	}

	fmt.Fprintf(os.Stderr, "\nScraped %d sources: %d delivered, %d failed\n", len(sources), delivered, failed)

	if failed > 0 {
		return fmt.Errorf("%d of %d sources failed", failed, len(sources))
	}

	return nil
}

// loadConfig reads the config file picked by --config or found on the
// default search path. Shared by scrape, run and sources.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		path = viper.ConfigFileUsed()
	}
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("find home directory: %w", err)
		}
		path = home + "/.classscout/config.yaml"
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("no config file at %s; run 'classscout config init' to create one", path)
	}

	return config.Load(path)
}

func filterSources(sources []model.Source, filter string) []model.Source {
	if filter == "" {
		return sources
	}

	needle := strings.ToLower(filter)
	var out []model.Source
	for _, src := range sources {
		if strings.Contains(strings.ToLower(src.Name), needle) {
			out = append(out, src)
		}
	}
	return out
}

// buildFetcher assembles the fetcher from config. The returned cleanup
// closes the headless browser when one was launched.
func buildFetcher(cfg *config.Config, sources []model.Source, fresh bool) (*fetch.Fetcher, func()) {
	var store cache.Cache
	if !fresh {
		dir := cfg.Fetch.CacheDir
		if dir == "" {
			if home, err := os.UserHomeDir(); err == nil {
				dir = home + "/.classscout/cache"
			}
		}
		ttl := time.Duration(cfg.Fetch.CacheTTLHours) * time.Hour
		if dir != "" {
			store = cache.NewLayered(15*time.Minute, dir, ttl)
		} else {
			store = cache.NewMemory(ttl)
		}
	}

	var renderer fetch.Renderer
	cleanup := func() {}
	if cfg.Fetch.Render || pipeline.NeedsBrowser(sources) {
		br, err := fetch.NewBrowserRenderer(time.Duration(cfg.Fetch.TimeoutSec) * time.Second)
		if err != nil {
			log.Warn().Err(err).Msg("headless browser unavailable, rendered sources fall back to plain HTTP")
		} else {
			renderer = br
			cleanup = func() {
				if err := br.Close(); err != nil {
					log.Warn().Err(err).Msg("close browser")
				}
			}
		}
	}

	f := fetch.New(fetch.Config{
		UserAgent:  cfg.Fetch.UserAgent,
		Timeout:    time.Duration(cfg.Fetch.TimeoutSec) * time.Second,
		MaxBytes:   cfg.Fetch.MaxBytes,
		Rate:       cfg.Fetch.Rate,
		Burst:      cfg.Fetch.Burst,
		CacheTTL:   time.Duration(cfg.Fetch.CacheTTLHours) * time.Hour,
		HTTPProxy:  cfg.Fetch.HTTPProxy,
		HTTPSProxy: cfg.Fetch.HTTPSProxy,
	}, store, renderer)

	return f, cleanup
}

// buildSink assembles the configured destinations. With none
// configured, or under --dry-run, records print to the terminal.
func buildSink(ctx context.Context, cfg *config.Config, preview bool) (sink.Sink, error) {
	if preview {
		return sink.NewPreview(os.Stdout), nil
	}

	var sinks []sink.Sink
	if s := cfg.Sinks.Sheets; s != nil {
		sh, err := sink.NewSheets(ctx, s.CredentialsPath, s.SpreadsheetID)
		if err != nil {
			return nil, fmt.Errorf("sheets sink: %w", err)
		}
		sinks = append(sinks, sh)
	}
	if a := cfg.Sinks.Airtable; a != nil {
		sinks = append(sinks, sink.NewAirtable(a.APIKey, a.BaseID, a.Table))
	}
	if cfg.Sinks.CSV != "" {
		sinks = append(sinks, sink.NewCSV(cfg.Sinks.CSV))
	}
	if cfg.Sinks.ICS != "" {
		sinks = append(sinks, sink.NewICS(cfg.Sinks.ICS))
	}

	if len(sinks) == 0 {
		return sink.NewPreview(os.Stdout), nil
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return sink.NewMulti(sinks...), nil
}
