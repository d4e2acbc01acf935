package scheduler

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

// runNews is the news pipeline: crawl, persist unseen, notify, mark.
// An unreachable source aborts before any write. The digest covers ALL
// unnotified rows, not just this run's inserts, so items stranded by an
// earlier notification failure get re-offered until a delivery succeeds.
func (s *Scheduler) runNews(ctx context.Context) (domain.CrawlResult, error) {
	var res domain.CrawlResult

	candidates, err := s.crawler.Crawl(ctx)
	if err != nil {
		return res, fmt.Errorf("crawl news: %w", err)
	}
	res.Found = len(candidates)

	items := make([]domain.NewsItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, c.Item())
	}

	inserted, err := s.news.CreateItems(ctx, items)
	if err != nil {
		return res, fmt.Errorf("persist news: %w", err)
	}
	res.NewCount = len(inserted)
	res.NewNews = inserted

	pending, err := s.news.GetUnnotified(ctx)
	if err != nil {
		return res, fmt.Errorf("collect unnotified: %w", err)
	}
	if len(pending) == 0 {
		return res, nil
	}

	recipients, err := s.subscribers.ListActive(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to list subscribers, using default recipients: %v", err)
		recipients = nil
	}
	if len(recipients) == 0 {
		recipients = nil // notifier falls back to configured defaults
	}

	delivered, err := s.notifier.NotifyBatch(ctx, pending, recipients)
	res.Notified = delivered
	if err != nil {
		// items stay unnotified, the next run re-offers them
		return res, fmt.Errorf("notify digest: %w", err)
	}
	if !delivered {
		return res, nil
	}

	ids := make([]int64, 0, len(pending))
	for _, item := range pending {
		ids = append(ids, item.ID)
	}
	if err := s.news.MarkNotified(ctx, ids); err != nil {
		// worst case is a duplicate mention in the next digest,
		// preferable to losing the notification entirely
		return res, fmt.Errorf("mark notified: %w", err)
	}
	return res, nil
}

// runVideos is the video pipeline: retention sweep, fetch, persist unseen.
// A failed sweep is logged and fetching proceeds, the next run retries it.
func (s *Scheduler) runVideos(ctx context.Context) (domain.CrawlResult, error) {
	var res domain.CrawlResult

	cutoff := s.now().Add(-s.retention)
	deleted, err := s.videos.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		lgr.Printf("[WARN] retention sweep failed, proceeding with fetch: %v", err)
	} else {
		res.Deleted = deleted
		if deleted > 0 {
			lgr.Printf("[INFO] retention sweep removed %d videos older than %s", deleted, cutoff.Format("2006-01-02"))
		}
	}

	videos, err := s.fetcher.FetchAll(ctx)
	if err != nil {
		return res, fmt.Errorf("fetch videos: %w", err)
	}
	res.Found = len(videos)

	inserted, err := s.videos.CreateVideos(ctx, videos)
	if err != nil {
		return res, fmt.Errorf("persist videos: %w", err)
	}
	res.NewCount = len(inserted)
	res.NewVideos = inserted
	return res, nil
}
