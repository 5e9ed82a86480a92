// Package schedule runs scrape cycles on per-source intervals.
package schedule

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"classscout/internal/model"
)

// DefaultTimeframe applies when a source declares no interval or an
// unreadable one.
const DefaultTimeframe = 7 * 24 * time.Hour

// ParseTimeframe reads interval strings like "30m", "12h" or "7d". A
// bare number means days. Anything unreadable falls back to the weekly
// default.
func ParseTimeframe(tf string) time.Duration {
	tf = strings.ToLower(strings.TrimSpace(tf))
	if tf == "" {
		return DefaultTimeframe
	}

	var unit time.Duration
	switch {
	case strings.HasSuffix(tf, "m"):
		unit = time.Minute
	case strings.HasSuffix(tf, "h"):
		unit = time.Hour
	case strings.HasSuffix(tf, "d"):
		unit = 24 * time.Hour
	}

	digits := tf
	if unit != 0 {
		digits = tf[:len(tf)-1]
	} else {
		unit = 24 * time.Hour
	}

	n, err := strconv.Atoi(strings.TrimSpace(digits))
	if err != nil || n <= 0 {
		return DefaultTimeframe
	}

	return time.Duration(n) * unit
}

// Runner scrapes and delivers one source. Implemented by the pipeline.
type Runner interface {
	Run(ctx context.Context, src model.Source) error
}

// Scheduler keeps every source on its own interval.
type Scheduler struct {
	runner Runner
}

// New wraps a runner.
func New(runner Runner) *Scheduler {
	return &Scheduler{runner: runner}
}

// Start scrapes every source once, then re-runs each on its interval
// until the context is cancelled. It blocks until all loops stop.
func (s *Scheduler) Start(ctx context.Context, sources []model.Source) {
	var wg sync.WaitGroup
	for _, src := range sources {
		wg.Add(1)
		go func(src model.Source) {
			defer wg.Done()
			s.loop(ctx, src)
		}(src)
	}
	wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, src model.Source) {
	interval := ParseTimeframe(src.Timeframe)
	log.Info().Str("source", src.Name).Dur("interval", interval).Msg("scheduling source")

	s.runOnce(ctx, src)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runOnce(ctx, src)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, src model.Source) {
	if err := s.runner.Run(ctx, src); err != nil {
		log.Error().Err(err).Str("source", src.Name).Msg("scheduled scrape failed")
	}
}
