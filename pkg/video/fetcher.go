// Package video fetches YouTube channel RSS feeds and converts their
// entries into video items ready for persistence.
package video

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// descriptions are capped so one verbose uploader can't bloat the digest
const maxDescriptionLen = 500

var channelPathRe = regexp.MustCompile(`/channel/([^/]+)`)

// Fetcher retrieves YouTube RSS feeds and converts entries to video items.
// Feeds are best-effort: one unreachable channel never fails the batch.
type Fetcher struct {
	client     *http.Client
	userAgent  string
	feeds      []string
	lookback   time.Duration
	maxResults int
	sanitizer  *bluemonday.Policy
	now        func() time.Time
}

// Params holds fetcher construction parameters
type Params struct {
	Feeds      []string
	Timeout    time.Duration
	UserAgent  string
	Lookback   time.Duration
	MaxResults int
}

// NewFetcher creates a video feed fetcher
func NewFetcher(p Params) *Fetcher {
	return &Fetcher{
		client: &http.Client{
			Timeout: p.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent:  p.UserAgent,
		feeds:      p.Feeds,
		lookback:   p.Lookback,
		maxResults: p.MaxResults,
		sanitizer:  bluemonday.StrictPolicy(),
		now:        time.Now,
	}
}

// FetchAll retrieves every configured feed and returns recent videos,
// newest first, capped at the configured maximum. Only videos published
// strictly within the lookback window are kept: an item exactly at the
// boundary is discarded.
func (f *Fetcher) FetchAll(ctx context.Context) ([]domain.VideoItem, error) {
	cutoff := f.now().Add(-f.lookback)

	var all []domain.VideoItem
	for _, feedURL := range f.feeds {
		videos, err := f.fetchFeed(ctx, feedURL)
		if err != nil {
			lgr.Printf("[WARN] failed to fetch video feed %s: %v", feedURL, err)
			continue
		}
		for _, v := range videos {
			if !v.Published.After(cutoff) {
				continue
			}
			all = append(all, v)
		}
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Published.After(all[j].Published) })

	if f.maxResults > 0 && len(all) > f.maxResults {
		all = all[:f.maxResults]
	}
	return all, nil
}

// fetchFeed retrieves and parses a single channel feed
func (f *Fetcher) fetchFeed(ctx context.Context, feedURL string) ([]domain.VideoItem, error) {
	body, err := f.fetch(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer body.Close()

	feed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	channelID := channelIDFromURL(feedURL)
	videos := make([]domain.VideoItem, 0, len(feed.Items))
	for _, item := range feed.Items {
		v, ok := f.convert(item, feed.Title, channelID)
		if !ok {
			continue
		}
		videos = append(videos, v)
	}
	return videos, nil
}

// convert maps a feed entry to a video item. Entries without an
// identifiable video id or publish time are skipped, not fatal.
func (f *Fetcher) convert(item *gofeed.Item, channelName, channelID string) (domain.VideoItem, bool) {
	id := videoID(item)
	if id == "" {
		lgr.Printf("[DEBUG] skipping feed entry without video id: %q", item.Title)
		return domain.VideoItem{}, false
	}

	var published time.Time
	switch {
	case item.PublishedParsed != nil:
		published = *item.PublishedParsed
	case item.UpdatedParsed != nil:
		published = *item.UpdatedParsed
	default:
		lgr.Printf("[DEBUG] skipping feed entry without publish time: %q", item.Title)
		return domain.VideoItem{}, false
	}

	description := f.description(rawDescription(item))

	return domain.VideoItem{
		VideoID:      id,
		Title:        strings.TrimSpace(item.Title),
		ChannelName:  channelName,
		ChannelID:    channelID,
		ThumbnailURL: fmt.Sprintf("https://i.ytimg.com/vi/%s/hqdefault.jpg", id),
		Description:  description,
		Published:    published,
		VideoURL:     fmt.Sprintf("https://www.youtube.com/watch?v=%s", id),
		ViewCount:    0, // RSS carries no view counts
		Tags:         ExtractTags(item.Title, description),
	}, true
}

// rawDescription digs the description out of a feed entry. YouTube puts it
// in the media:group extension, other feeds use summary or content.
func rawDescription(item *gofeed.Item) string {
	if media, ok := item.Extensions["media"]; ok {
		if groups, ok := media["group"]; ok && len(groups) > 0 {
			if descs, ok := groups[0].Children["description"]; ok && len(descs) > 0 {
				return descs[0].Value
			}
		}
	}
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

// description strips HTML and truncates to a digest-friendly length
func (f *Fetcher) description(raw string) string {
	clean := strings.TrimSpace(html.UnescapeString(f.sanitizer.Sanitize(raw)))
	runes := []rune(clean)
	if len(runes) > maxDescriptionLen {
		return string(runes[:maxDescriptionLen]) + "..."
	}
	return clean
}

// videoID extracts the id from an Atom entry id like "yt:video:dQw4w9WgXcQ"
func videoID(item *gofeed.Item) string {
	guid := item.GUID
	if guid == "" {
		guid = item.Link
	}
	if idx := strings.LastIndex(guid, ":"); idx >= 0 {
		return guid[idx+1:]
	}
	return guid
}

// channelIDFromURL pulls the channel id from a feed URL, either the
// channel_id query parameter or a /channel/<id> path segment
func channelIDFromURL(feedURL string) string {
	u, err := url.Parse(feedURL)
	if err != nil {
		return ""
	}
	if id := u.Query().Get("channel_id"); id != "" {
		return id
	}
	if m := channelPathRe.FindStringSubmatch(u.Path); m != nil {
		return m[1]
	}
	return ""
}

// fetch retrieves feed content from a URL
func (f *Fetcher) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}
