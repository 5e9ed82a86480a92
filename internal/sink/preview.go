package sink

import (
	"context"
	"fmt"
	"io"

	"classscout/internal/format"
	"classscout/internal/model"
)

// Preview prints the set as an aligned table, for checking what a
// source yields without wiring a real destination.
type Preview struct {
	out io.Writer
}

// NewPreview writes to out.
func NewPreview(out io.Writer) *Preview {
	return &Preview{out: out}
}

// Name identifies the sink in logs.
func (p *Preview) Name() string { return "preview" }

// Append renders the set.
func (p *Preview) Append(ctx context.Context, set *model.RecordSet) error {
	if set.Empty() {
		fmt.Fprintf(p.out, "%s: no records\n", set.Source)
		return nil
	}

	fmt.Fprintf(p.out, "%s (%s): %d records\n\n", set.Source, set.URL, len(set.Records))
	return format.Table(p.out, set.Schema, set.Rows())
}
