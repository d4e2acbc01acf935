// Package crawler fetches the Pokemon GO Korea news listing, extracts
// article candidates from its HTML and enriches them with event date
// windows scanned from the detail pages.
package crawler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// Crawler drives a full crawl of the news source
type Crawler struct {
	fetcher   *Fetcher
	extractor *Extractor
	listURL   string
}

// Params holds crawler construction parameters
type Params struct {
	ListURL     string
	PathPrefix  string
	Category    string
	Timeout     time.Duration
	UserAgent   string
	MaxParallel int
	Location    *time.Location
}

// New creates a crawler for the configured source
func New(p Params) (*Crawler, error) {
	fetcher := NewFetcher(p.Timeout, p.UserAgent)
	extractor, err := NewExtractor(ExtractorParams{
		Fetcher:     fetcher,
		BaseURL:     p.ListURL,
		PathPrefix:  p.PathPrefix,
		Category:    p.Category,
		MaxParallel: p.MaxParallel,
		Location:    p.Location,
	})
	if err != nil {
		return nil, fmt.Errorf("create extractor: %w", err)
	}
	return &Crawler{fetcher: fetcher, extractor: extractor, listURL: p.ListURL}, nil
}

// Crawl fetches the listing page and returns enriched candidates.
// An unreachable source is an error; a reachable page with no
// recognizable articles returns an empty slice.
func (c *Crawler) Crawl(ctx context.Context) ([]domain.Candidate, error) {
	started := time.Now()

	doc, err := c.fetcher.Fetch(ctx, c.listURL)
	if err != nil {
		return nil, fmt.Errorf("fetch news listing: %w", err)
	}

	candidates := c.extractor.Extract(doc)
	c.extractor.FillEventWindows(ctx, candidates)

	lgr.Printf("[INFO] crawled %d news candidates in %v", len(candidates), time.Since(started).Truncate(time.Millisecond))
	return candidates, nil
}
