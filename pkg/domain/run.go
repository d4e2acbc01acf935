package domain

import "time"

// CrawlResult is the structured outcome of a single pipeline run,
// returned as-is by the operator trigger
type CrawlResult struct {
	Job       string      `json:"job"`
	Found     int         `json:"found"`
	NewCount  int         `json:"new_count"`
	NewNews   []NewsItem  `json:"new_news,omitempty"`
	NewVideos []VideoItem `json:"new_videos,omitempty"`
	Deleted   int64       `json:"deleted,omitempty"`
	Notified  bool        `json:"notified"`
	Started   time.Time   `json:"started"`
	Elapsed   string      `json:"elapsed"`
}

// JobStatus reports scheduling state for one named job
type JobStatus struct {
	Name     string    `json:"name"`
	Running  bool      `json:"running"`
	NextFire time.Time `json:"next_fire"`
	LastFire time.Time `json:"last_fire,omitempty"`
}
