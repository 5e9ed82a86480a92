package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"classscout/internal/model"
)

// CSV appends rows to one file. The header is written when the file is
// created and skipped on later appends.
type CSV struct {
	path string
}

// NewCSV writes to path.
func NewCSV(path string) *CSV {
	return &CSV{path: path}
}

// Name identifies the sink in logs.
func (c *CSV) Name() string { return "csv" }

// Append writes the set's rows, creating the file with a header row on
// first use.
func (c *CSV) Append(ctx context.Context, set *model.RecordSet) error {
	if set.Empty() {
		return nil
	}

	_, statErr := os.Stat(c.path)
	fresh := errors.Is(statErr, fs.ErrNotExist)

	f, err := os.OpenFile(c.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open %s: %w", c.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if fresh {
		if err := w.Write(set.Schema); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	for _, row := range set.Rows() {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	w.Flush()

	return w.Error()
}
