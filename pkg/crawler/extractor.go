package crawler

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// DocumentFetcher retrieves and parses HTML documents
type DocumentFetcher interface {
	Fetch(ctx context.Context, url string) (*goquery.Document, error)
}

// Extractor converts the news list page into candidate items. The upstream
// markup changes without notice, so extraction runs an ordered chain of
// strategies from the most structurally specific to a raw link scan. The
// chain stops at the first strategy yielding at least one valid candidate;
// partial results from different strategies are never merged because they
// would describe the same underlying items twice.
type Extractor struct {
	fetcher     DocumentFetcher
	base        *url.URL
	pathPrefix  string
	linkRe      *regexp.Regexp
	category    string
	maxParallel int
	loc         *time.Location
	now         func() time.Time
}

// ExtractorParams holds construction parameters for Extractor
type ExtractorParams struct {
	Fetcher     DocumentFetcher
	BaseURL     string // list page URL, also defines the accepted scheme+host
	PathPrefix  string // e.g. /ko/news/
	Category    string // default category label for extracted items
	MaxParallel int    // concurrent detail page fetches
	Location    *time.Location
}

// NewExtractor creates an extractor for the configured news source
func NewExtractor(p ExtractorParams) (*Extractor, error) {
	base, err := url.Parse(p.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", p.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", p.BaseURL)
	}

	if p.MaxParallel <= 0 {
		p.MaxParallel = 5
	}
	if p.Location == nil {
		p.Location = time.Local
	}

	return &Extractor{
		fetcher:     p.Fetcher,
		base:        base,
		pathPrefix:  p.PathPrefix,
		linkRe:      regexp.MustCompile(`^` + regexp.QuoteMeta(p.PathPrefix) + `[^/]+$`),
		category:    p.Category,
		maxParallel: p.MaxParallel,
		loc:         p.Location,
		now:         time.Now,
	}, nil
}

// Extract runs the strategy chain over the list page document and returns
// validated candidates. A page yielding no candidates is not an error.
func (e *Extractor) Extract(doc *goquery.Document) []domain.Candidate {
	strategies := []struct {
		name string
		fn   func(*goquery.Document) []domain.Candidate
	}{
		{"article containers", e.extractArticles},
		{"card classes", e.extractCards},
		{"link scan", e.extractLinks},
	}

	for _, s := range strategies {
		candidates := e.validateAll(s.fn(doc))
		if len(candidates) > 0 {
			lgr.Printf("[DEBUG] strategy %q produced %d candidates", s.name, len(candidates))
			return candidates
		}
	}

	lgr.Printf("[WARN] no news candidates found on list page")
	return nil
}

// FillEventWindows fetches each candidate's detail page and scans its text
// for an event date range. Fetch or parse failures leave the window unset,
// a single bad detail page must not abort the batch. Candidate order is
// preserved regardless of fetch completion order.
func (e *Extractor) FillEventWindows(ctx context.Context, candidates []domain.Candidate) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel)

	for i := range candidates {
		g.Go(func() error {
			doc, err := e.fetcher.Fetch(ctx, candidates[i].URL)
			if err != nil {
				lgr.Printf("[WARN] failed to fetch detail page %s: %v", candidates[i].URL, err)
				return nil
			}
			candidates[i].Window = eventWindow(doc.Text(), e.now(), e.loc)
			return nil
		})
	}

	_ = g.Wait() // workers never return errors, they log and move on
}

// extractArticles looks for semantic article containers wrapping a news link
func (e *Extractor) extractArticles(doc *goquery.Document) []domain.Candidate {
	var out []domain.Candidate
	doc.Find("article").Each(func(_ int, art *goquery.Selection) {
		link := e.findNewsLink(art)
		if link == nil {
			return
		}
		href, _ := link.Attr("href")

		title := strings.TrimSpace(art.Find("h1, h2, h3").First().Text())
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}

		out = append(out, e.candidate(href, title, imageSrc(art)))
	})
	return out
}

// extractCards falls back to looser class-name heuristics
func (e *Extractor) extractCards(doc *goquery.Document) []domain.Candidate {
	var out []domain.Candidate
	doc.Find(`[class*="news"], [class*="card"], [class*="post"]`).Each(func(_ int, card *goquery.Selection) {
		link := e.findNewsLink(card)
		if link == nil {
			return
		}
		href, _ := link.Attr("href")
		out = append(out, e.candidate(href, strings.TrimSpace(link.Text()), imageSrc(card)))
	})
	return out
}

// extractLinks is the last resort: every hyperlink matching the news path
// pattern, structure: <a href="/ko/news/[slug]"><img src="...">title</a>
func (e *Extractor) extractLinks(doc *goquery.Document) []domain.Candidate {
	var out []domain.Candidate
	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !e.isNewsHref(href) {
			return
		}
		out = append(out, e.candidate(href, strings.TrimSpace(link.Text()), imageSrc(link)))
	})
	return out
}

// findNewsLink returns the first anchor within sel pointing at a news page
func (e *Extractor) findNewsLink(sel *goquery.Selection) *goquery.Selection {
	var found *goquery.Selection
	sel.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		href, _ := link.Attr("href")
		if e.isNewsHref(href) {
			found = link
			return false
		}
		return true
	})
	return found
}

// isNewsHref accepts relative news paths and absolute URLs on the source host
func (e *Extractor) isNewsHref(href string) bool {
	if href == "" {
		return false
	}
	if e.linkRe.MatchString(href) {
		return true
	}
	u, err := url.Parse(href)
	if err != nil {
		return false
	}
	return u.Scheme == e.base.Scheme && u.Host == e.base.Host && e.linkRe.MatchString(u.Path)
}

// candidate assembles a raw candidate, deriving the publish date estimate
func (e *Extractor) candidate(href, title, imgSrc string) domain.Candidate {
	abs := e.absoluteURL(href)
	return domain.Candidate{
		Title:     title,
		URL:       abs,
		Summary:   "", // the source provides no summaries on the list view
		Published: publishedAt(href, title, e.now(), e.loc),
		ImageURL:  e.absoluteImageURL(imgSrc),
		Category:  e.category,
	}
}

// validateAll drops malformed candidates and duplicates by URL.
// Dropped fragments are logged, never surfaced as pipeline errors.
func (e *Extractor) validateAll(raw []domain.Candidate) []domain.Candidate {
	seen := make(map[string]struct{}, len(raw))
	out := make([]domain.Candidate, 0, len(raw))
	for _, c := range raw {
		if err := e.validate(c); err != nil {
			lgr.Printf("[DEBUG] dropping candidate %q: %v", c.URL, err)
			continue
		}
		if _, dup := seen[c.URL]; dup {
			continue
		}
		seen[c.URL] = struct{}{}
		out = append(out, c)
	}
	return out
}

// validate checks a single candidate against the extractor contract
func (e *Extractor) validate(c domain.Candidate) error {
	if utf8.RuneCountInString(strings.TrimSpace(c.Title)) < 5 {
		return fmt.Errorf("title too short")
	}
	u, err := url.Parse(c.URL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != e.base.Scheme || u.Host != e.base.Host {
		return fmt.Errorf("url outside source host %s", e.base.Host)
	}
	return nil
}

// absoluteURL converts a relative news href to an absolute URL on the source host
func (e *Extractor) absoluteURL(href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http") {
		return href
	}
	if strings.HasPrefix(href, "//") {
		return e.base.Scheme + ":" + href
	}
	if strings.HasPrefix(href, "/") {
		return e.base.Scheme + "://" + e.base.Host + href
	}
	return e.base.Scheme + "://" + e.base.Host + "/" + href
}

// absoluteImageURL resolves thumbnail sources, empty stays empty
func (e *Extractor) absoluteImageURL(src string) string {
	if src == "" {
		return ""
	}
	return e.absoluteURL(src)
}

// imageSrc returns the first nested image source, if any
func imageSrc(sel *goquery.Selection) string {
	src, _ := sel.Find("img").First().Attr("src")
	return src
}
