package domain

import "time"

// VideoItem represents a persisted video from one of the configured feeds.
// Identity is the upstream video id. Rows are never updated in place, they are
// created once and eventually removed by the retention sweeper.
type VideoItem struct {
	ID           int64     `json:"id"`
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	ChannelName  string    `json:"channel_name,omitempty"`
	ChannelID    string    `json:"channel_id,omitempty"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	Description  string    `json:"description,omitempty"`
	Published    time.Time `json:"published"`
	VideoURL     string    `json:"video_url"`
	ViewCount    int       `json:"view_count"` // feeds don't expose it, kept for API compatibility
	Tags         []string  `json:"tags,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
