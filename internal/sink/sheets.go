package sink

import (
	"context"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"classscout/internal/model"
)

// Sheets appends rows to a Google Sheet through a service account. The
// header row is verified on every append and a fresh one is inserted
// when row 1 is missing or stale, so old data shifts down instead of
// being overwritten.
type Sheets struct {
	svc           *sheets.Service
	spreadsheetID string
}

// NewSheets authenticates with the service-account key file at
// credentialsPath and targets spreadsheetID.
func NewSheets(ctx context.Context, credentialsPath, spreadsheetID string) (*Sheets, error) {
	key, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials: %w", err)
	}

	jwt, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	svc, err := sheets.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Sheets{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// Name identifies the sink in logs.
func (s *Sheets) Name() string { return "sheets" }

// Append reconciles the header row, then appends the set's rows below
// the existing data.
func (s *Sheets) Append(ctx context.Context, set *model.RecordSet) error {
	if set.Empty() {
		return nil
	}

	if err := s.ensureHeader(ctx, set.Schema); err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(set.Records))
	for _, row := range set.Rows() {
		cells := make([]interface{}, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, "A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append rows: %w", err)
	}

	return nil
}

func (s *Sheets) ensureHeader(ctx context.Context, schema []string) error {
	resp, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, "1:1").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header row: %w", err)
	}

	if headerMatches(resp.Values, schema) {
		return nil
	}

	insert := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			InsertDimension: &sheets.InsertDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "ROWS",
					StartIndex: 0,
					EndIndex:   1,
				},
			},
		}},
	}
	if _, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, insert).Context(ctx).Do(); err != nil {
		return fmt.Errorf("insert header row: %w", err)
	}

	cells := make([]interface{}, len(schema))
	for i, col := range schema {
		cells[i] = col
	}
	_, err = s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, "1:1", &sheets.ValueRange{Values: [][]interface{}{cells}}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("write header row: %w", err)
	}

	return nil
}

func headerMatches(values [][]interface{}, schema []string) bool {
	if len(values) == 0 || len(values[0]) != len(schema) {
		return false
	}
	for i, cell := range values[0] {
		text, ok := cell.(string)
		if !ok || strings.TrimSpace(text) != schema[i] {
			return false
		}
	}
	return true
}
