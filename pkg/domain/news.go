package domain

import "time"

// NewsItem represents a persisted announcement from the official news page.
// Identity is the canonical URL, it never changes and is never reused.
type NewsItem struct {
	ID         int64      `json:"id"`
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Summary    string     `json:"summary,omitempty"`
	Published  time.Time  `json:"published"`
	EventStart *time.Time `json:"event_start,omitempty"`
	EventEnd   *time.Time `json:"event_end,omitempty"`
	ImageURL   string     `json:"image_url,omitempty"`
	Category   string     `json:"category,omitempty"`
	Notified   bool       `json:"notified"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// EventWindow is a start/end pair parsed from free text on a detail page.
// Both bounds are set together or not at all.
type EventWindow struct {
	Start time.Time
	End   time.Time
}

// Candidate is a news item produced by the extractor before dedup decides
// whether it becomes persisted state. Validated at the extractor boundary,
// downstream stages can rely on Title and URL being well-formed.
type Candidate struct {
	Title     string
	URL       string
	Summary   string
	Published time.Time
	Window    *EventWindow
	ImageURL  string
	Category  string
}

// Item converts a validated candidate to a persistable news item
func (c Candidate) Item() NewsItem {
	item := NewsItem{
		URL:       c.URL,
		Title:     c.Title,
		Summary:   c.Summary,
		Published: c.Published,
		ImageURL:  c.ImageURL,
		Category:  c.Category,
	}
	if c.Window != nil {
		start, end := c.Window.Start, c.Window.End
		item.EventStart, item.EventEnd = &start, &end
	}
	return item
}
