package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"classscout/internal/model"
)

// The Airtable API caps create requests at ten records.
const airtableBatchSize = 10

// Airtable pushes records to one table through the Airtable REST API.
type Airtable struct {
	client  *http.Client
	baseURL string
	token   string
}

// NewAirtable targets table in the given base.
func NewAirtable(token, baseID, table string) *Airtable {
	return &Airtable{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: fmt.Sprintf("https://api.airtable.com/v0/%s/%s", baseID, url.PathEscape(table)),
		token:   token,
	}
}

// Name identifies the sink in logs.
func (a *Airtable) Name() string { return "airtable" }

type airtableRecord struct {
	Fields map[string]string `json:"fields"`
}

type airtablePayload struct {
	Records []airtableRecord `json:"records"`
}

// Append uploads the set in batches of ten.
func (a *Airtable) Append(ctx context.Context, set *model.RecordSet) error {
	if set.Empty() {
		return nil
	}

	records := make([]airtableRecord, 0, len(set.Records))
	for _, rec := range set.Records {
		fields := make(map[string]string, len(set.Schema))
		for _, col := range set.Schema {
			fields[col] = rec.Get(col)
		}
		records = append(records, airtableRecord{Fields: fields})
	}

	for start := 0; start < len(records); start += airtableBatchSize {
		end := start + airtableBatchSize
		if end > len(records) {
			end = len(records)
		}
		if err := a.push(ctx, airtablePayload{Records: records[start:end]}); err != nil {
			return fmt.Errorf("batch %d: %w", start/airtableBatchSize+1, err)
		}
	}

	return nil
}

func (a *Airtable) push(ctx context.Context, payload airtablePayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("post records: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return nil
}
