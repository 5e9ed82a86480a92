// Package sink delivers normalized class records to their
// destinations: Google Sheets, Airtable, local CSV and iCalendar
// files, or a terminal preview.
package sink

import (
	"context"
	"errors"
	"fmt"

	"classscout/internal/model"
)

// Sink appends the rows of one scraped source to a destination table.
type Sink interface {
	Name() string
	Append(ctx context.Context, set *model.RecordSet) error
}

// Multi fans one set out to several sinks. Every sink sees every set;
// failures are collected rather than short-circuiting the rest.
type Multi struct {
	sinks []Sink
}

// NewMulti bundles sinks into one.
func NewMulti(sinks ...Sink) *Multi {
	return &Multi{sinks: sinks}
}

// Name identifies the fan-out in logs.
func (m *Multi) Name() string { return "multi" }

// Append forwards the set to every sink.
func (m *Multi) Append(ctx context.Context, set *model.RecordSet) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.Append(ctx, set); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", s.Name(), err))
		}
	}
	return errors.Join(errs...)
}
