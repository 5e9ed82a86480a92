// Package scrape holds the parsed form of one fetched page and the
// shared helpers for reading it: flattened text and embedded linked data.
package scrape

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Page is one fetched document ready for extraction.
type Page struct {
	URL  string
	Doc  *goquery.Document
	Text string
}

// NewPage parses markup into a queryable page. Empty markup still parses;
// it just yields no candidates downstream.
func NewPage(url, markup string) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return &Page{URL: url, Doc: doc, Text: doc.Text()}, nil
}
