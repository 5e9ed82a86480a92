// Package fetch retrieves page markup politely. Every fetch goes
// through robots.txt, a per-domain rate limit and the markup cache;
// script-heavy sites go through a headless browser instead of plain
// HTTP.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"classscout/internal/cache"
	"classscout/internal/model"
)

// Config carries the fetcher knobs.
type Config struct {
	UserAgent  string
	Timeout    time.Duration
	MaxBytes   int64
	Rate       float64 // requests per second per domain
	Burst      int
	CacheTTL   time.Duration
	HTTPProxy  string
	HTTPSProxy string
}

// Fetcher downloads markup for the pipeline.
type Fetcher struct {
	client   *http.Client
	store    cache.Cache
	robots   *Robots
	limiter  *Limiter
	renderer Renderer
	cfg      Config
}

// New wires a Fetcher. store may be nil to disable caching; renderer
// may be nil, in which case script-rendered sources fall back to plain
// HTTP.
func New(cfg Config, store cache.Cache, renderer Renderer) *Fetcher {
	if cfg.UserAgent == "" {
		cfg.UserAgent = "classscout/1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = 10 << 20
	}
	if cfg.Rate <= 0 {
		cfg.Rate = 1
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 24 * time.Hour
	}

	return &Fetcher{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: proxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		store:    store,
		robots:   NewRobots(cfg.UserAgent, cfg.Timeout),
		limiter:  NewLimiter(cfg.Rate, cfg.Burst),
		renderer: renderer,
		cfg:      cfg,
	}
}

// Fetch returns the markup for url under the given render mode. Cached
// markup is returned without touching the network.
func (f *Fetcher) Fetch(ctx context.Context, url string, mode model.RenderMode) (string, error) {
	key := cache.Key(url, string(mode))
	if f.store != nil {
		if data, ok := f.store.Get(key); ok {
			log.Debug().Str("url", url).Msg("cache hit")
			return string(data), nil
		}
	}

	allowed, delay, err := f.robots.Check(ctx, url)
	if err != nil {
		return "", err
	}
	if !allowed {
		return "", fmt.Errorf("robots.txt disallows %s", url)
	}

	if err := f.limiter.WaitWithDelay(ctx, url, delay); err != nil {
		return "", err
	}

	markup, err := f.download(ctx, url, mode)
	if err != nil {
		return "", err
	}

	if f.store != nil {
		if err := f.store.Set(key, []byte(markup), f.cfg.CacheTTL); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("cache write failed")
		}
	}

	return markup, nil
}

func (f *Fetcher) download(ctx context.Context, url string, mode model.RenderMode) (string, error) {
	if mode == model.RenderJS && f.renderer != nil {
		return f.renderer.Render(ctx, url)
	}
	return f.get(ctx, url)
}

func (f *Fetcher) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBytes))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	return string(body), nil
}
