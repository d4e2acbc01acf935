package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/treehi/pogo-tracker/pkg/domain"
	"github.com/treehi/pogo-tracker/pkg/scheduler/mocks"
)

type testMocks struct {
	news    *mocks.NewsStoreMock
	videos  *mocks.VideoStoreMock
	subs    *mocks.SubscriberStoreMock
	crawler *mocks.CrawlerMock
	fetcher *mocks.VideoFetcherMock
	notif   *mocks.NotifierMock
}

func newTestScheduler(t *testing.T) (*Scheduler, *testMocks) {
	t.Helper()
	loc, err := time.LoadLocation("Asia/Seoul")
	require.NoError(t, err)

	m := &testMocks{
		news:    &mocks.NewsStoreMock{},
		videos:  &mocks.VideoStoreMock{},
		subs:    &mocks.SubscriberStoreMock{},
		crawler: &mocks.CrawlerMock{},
		fetcher: &mocks.VideoFetcherMock{},
		notif:   &mocks.NotifierMock{},
	}

	s := NewScheduler(Params{
		News:         m.news,
		Videos:       m.videos,
		Subscribers:  m.subs,
		Crawler:      m.crawler,
		Fetcher:      m.fetcher,
		Notifier:     m.notif,
		Hour:         10,
		Minute:       0,
		Location:     loc,
		MisfireGrace: 5 * time.Minute,
		Retention:    90 * 24 * time.Hour,
	})
	return s, m
}

func candidate(i byte) domain.Candidate {
	return domain.Candidate{
		Title:     "이벤트 안내 " + string('0'+i),
		URL:       "https://pokemongo.com/ko/news/event-" + string('0'+i),
		Published: time.Date(2026, 1, int(i), 0, 0, 0, 0, time.UTC),
	}
}

func TestScheduler_RunNowNews(t *testing.T) {
	s, m := newTestScheduler(t)
	ctx := context.Background()

	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		return []domain.Candidate{candidate(1), candidate(2), candidate(3)}, nil
	}
	m.news.CreateItemsFunc = func(_ context.Context, items []domain.NewsItem) ([]domain.NewsItem, error) {
		// two of three are new
		return []domain.NewsItem{{ID: 11, URL: items[0].URL}, {ID: 12, URL: items[1].URL}}, nil
	}
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) {
		// includes a leftover from a run whose notification failed
		return []domain.NewsItem{{ID: 7}, {ID: 11}, {ID: 12}}, nil
	}
	m.subs.ListActiveFunc = func(context.Context) ([]string, error) {
		return []string{"trainer@example.com"}, nil
	}
	m.notif.NotifyBatchFunc = func(_ context.Context, items []domain.NewsItem, _ []string) (bool, error) {
		return true, nil
	}
	m.news.MarkNotifiedFunc = func(context.Context, []int64) error { return nil }

	res, err := s.RunNow(ctx, JobNews)
	require.NoError(t, err)

	assert.Equal(t, JobNews, res.Job)
	assert.Equal(t, 3, res.Found)
	assert.Equal(t, 2, res.NewCount)
	assert.True(t, res.Notified)
	assert.NotEmpty(t, res.Elapsed)

	require.Len(t, m.notif.NotifyBatchCalls(), 1)
	assert.Len(t, m.notif.NotifyBatchCalls()[0].Items, 3, "digest covers leftovers too")
	assert.Equal(t, []string{"trainer@example.com"}, m.notif.NotifyBatchCalls()[0].Recipients)

	require.Len(t, m.news.MarkNotifiedCalls(), 1)
	assert.Equal(t, []int64{7, 11, 12}, m.news.MarkNotifiedCalls()[0].Ids)
}

func TestScheduler_NewsNotifyFailureKeepsItemsPending(t *testing.T) {
	s, m := newTestScheduler(t)

	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		return []domain.Candidate{candidate(1)}, nil
	}
	m.news.CreateItemsFunc = func(_ context.Context, items []domain.NewsItem) ([]domain.NewsItem, error) {
		return []domain.NewsItem{{ID: 1, URL: items[0].URL}}, nil
	}
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) {
		return []domain.NewsItem{{ID: 1}}, nil
	}
	m.subs.ListActiveFunc = func(context.Context) ([]string, error) { return nil, nil }
	m.notif.NotifyBatchFunc = func(context.Context, []domain.NewsItem, []string) (bool, error) {
		return false, assert.AnError
	}

	res, err := s.RunNow(context.Background(), JobNews)
	require.Error(t, err)
	assert.False(t, res.Notified)
	assert.Equal(t, 1, res.NewCount, "items persisted before the failed notify stay persisted")
	assert.Empty(t, m.news.MarkNotifiedCalls(), "nothing marked without a delivery")
}

func TestScheduler_NewsCrawlFailureAbortsBeforeWrites(t *testing.T) {
	s, m := newTestScheduler(t)

	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		return nil, assert.AnError
	}

	_, err := s.RunNow(context.Background(), JobNews)
	require.Error(t, err)
	assert.Empty(t, m.news.CreateItemsCalls())
	assert.Empty(t, m.notif.NotifyBatchCalls())
}

func TestScheduler_NewsNothingNewNoDigest(t *testing.T) {
	s, m := newTestScheduler(t)

	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		return []domain.Candidate{candidate(1)}, nil
	}
	m.news.CreateItemsFunc = func(context.Context, []domain.NewsItem) ([]domain.NewsItem, error) {
		return nil, nil // everything already seen
	}
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) { return nil, nil }

	res, err := s.RunNow(context.Background(), JobNews)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewCount)
	assert.False(t, res.Notified)
	assert.Empty(t, m.notif.NotifyBatchCalls(), "empty batch never produces an email")
}

func TestScheduler_RunNowVideos(t *testing.T) {
	s, m := newTestScheduler(t)
	fixed := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	m.videos.DeleteOlderThanFunc = func(_ context.Context, cutoff time.Time) (int64, error) {
		assert.Equal(t, fixed.Add(-90*24*time.Hour), cutoff)
		return 2, nil
	}
	m.fetcher.FetchAllFunc = func(context.Context) ([]domain.VideoItem, error) {
		return []domain.VideoItem{{VideoID: "a"}, {VideoID: "b"}, {VideoID: "c"}}, nil
	}
	m.videos.CreateVideosFunc = func(_ context.Context, videos []domain.VideoItem) ([]domain.VideoItem, error) {
		return videos[:1], nil
	}

	res, err := s.RunNow(context.Background(), JobVideos)
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Deleted)
	assert.Equal(t, 3, res.Found)
	assert.Equal(t, 1, res.NewCount)
}

func TestScheduler_VideosSweepFailureStillFetches(t *testing.T) {
	s, m := newTestScheduler(t)

	m.videos.DeleteOlderThanFunc = func(context.Context, time.Time) (int64, error) {
		return 0, assert.AnError
	}
	m.fetcher.FetchAllFunc = func(context.Context) ([]domain.VideoItem, error) {
		return []domain.VideoItem{{VideoID: "a"}}, nil
	}
	m.videos.CreateVideosFunc = func(_ context.Context, videos []domain.VideoItem) ([]domain.VideoItem, error) {
		return videos, nil
	}

	res, err := s.RunNow(context.Background(), JobVideos)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.Deleted)
	assert.Equal(t, 1, res.NewCount)
}

func TestScheduler_RunNowUnknownJob(t *testing.T) {
	s, _ := newTestScheduler(t)
	_, err := s.RunNow(context.Background(), "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown job")
}

func TestScheduler_ScheduledFireSkipsWhileRunning(t *testing.T) {
	s, m := newTestScheduler(t)

	release := make(chan struct{})
	started := make(chan struct{})
	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		close(started)
		<-release
		return nil, nil
	}
	m.news.CreateItemsFunc = func(context.Context, []domain.NewsItem) ([]domain.NewsItem, error) { return nil, nil }
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) { return nil, nil }

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := s.RunNow(context.Background(), JobNews)
		assert.NoError(t, err)
	}()
	<-started

	// a scheduled fire while the manual run holds the lock is suppressed
	s.tryRun(context.Background(), s.byName[JobNews])
	assert.Len(t, m.crawler.CrawlCalls(), 1, "overlapping fire skipped, not queued")

	close(release)
	wg.Wait()
}

func TestScheduler_ManualRunsSerialize(t *testing.T) {
	s, m := newTestScheduler(t)

	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) {
		mu.Lock()
		inFlight++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return nil, nil
	}
	m.news.CreateItemsFunc = func(context.Context, []domain.NewsItem) ([]domain.NewsItem, error) { return nil, nil }
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) { return nil, nil }

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.RunNow(context.Background(), JobNews)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Len(t, m.crawler.CrawlCalls(), 3, "manual runs queue instead of dropping")
	assert.Equal(t, 1, maxInFlight, "never more than one run of the same job")
}

func TestScheduler_MisfireGrace(t *testing.T) {
	newsRun := func(m *testMocks) {
		m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) { return nil, nil }
		m.news.CreateItemsFunc = func(context.Context, []domain.NewsItem) ([]domain.NewsItem, error) { return nil, nil }
		m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) { return nil, nil }
	}

	t.Run("wakeup past the grace is skipped", func(t *testing.T) {
		s, m := newTestScheduler(t)
		newsRun(m)

		planned := time.Date(2026, 4, 1, 10, 0, 0, 0, s.loc)
		s.now = func() time.Time { return planned.Add(5*time.Minute + time.Second) }

		s.fire(context.Background(), s.byName[JobNews], planned)
		assert.Empty(t, m.crawler.CrawlCalls(), "late fire runs nothing")
	})

	t.Run("wakeup within the grace runs", func(t *testing.T) {
		s, m := newTestScheduler(t)
		newsRun(m)

		planned := time.Date(2026, 4, 1, 10, 0, 0, 0, s.loc)
		s.now = func() time.Time { return planned.Add(4 * time.Minute) }

		s.fire(context.Background(), s.byName[JobNews], planned)
		assert.Len(t, m.crawler.CrawlCalls(), 1)
	})

	t.Run("wakeup exactly at the grace runs", func(t *testing.T) {
		s, m := newTestScheduler(t)
		newsRun(m)

		planned := time.Date(2026, 4, 1, 10, 0, 0, 0, s.loc)
		s.now = func() time.Time { return planned.Add(5 * time.Minute) }

		s.fire(context.Background(), s.byName[JobNews], planned)
		assert.Len(t, m.crawler.CrawlCalls(), 1)
	})

	t.Run("days of missed fires coalesce into one next fire", func(t *testing.T) {
		s, m := newTestScheduler(t)
		newsRun(m)

		planned := time.Date(2026, 4, 1, 10, 0, 0, 0, s.loc)
		woke := planned.AddDate(0, 0, 3).Add(2 * time.Hour) // e.g. host resumed from suspend
		s.now = func() time.Time { return woke }

		s.fire(context.Background(), s.byName[JobNews], planned)
		assert.Empty(t, m.crawler.CrawlCalls())
		assert.Equal(t, time.Date(2026, 4, 5, 10, 0, 0, 0, s.loc), s.nextFire(woke),
			"three missed days collapse into a single next fire")
	})
}

func TestScheduler_NextFire(t *testing.T) {
	s, _ := newTestScheduler(t)
	loc := s.loc

	t.Run("before today's fire time", func(t *testing.T) {
		now := time.Date(2026, 1, 18, 9, 30, 0, 0, loc)
		assert.Equal(t, time.Date(2026, 1, 18, 10, 0, 0, 0, loc), s.nextFire(now))
	})

	t.Run("exactly at fire time rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2026, 1, 18, 10, 0, 0, 0, loc)
		assert.Equal(t, time.Date(2026, 1, 19, 10, 0, 0, 0, loc), s.nextFire(now))
	})

	t.Run("after today's fire time", func(t *testing.T) {
		now := time.Date(2026, 1, 18, 23, 59, 0, 0, loc)
		assert.Equal(t, time.Date(2026, 1, 19, 10, 0, 0, 0, loc), s.nextFire(now))
	})
}

func TestScheduler_Status(t *testing.T) {
	s, m := newTestScheduler(t)

	m.crawler.CrawlFunc = func(context.Context) ([]domain.Candidate, error) { return nil, nil }
	m.news.CreateItemsFunc = func(context.Context, []domain.NewsItem) ([]domain.NewsItem, error) { return nil, nil }
	m.news.GetUnnotifiedFunc = func(context.Context) ([]domain.NewsItem, error) { return nil, nil }

	_, err := s.RunNow(context.Background(), JobNews)
	require.NoError(t, err)

	statuses := s.Status()
	require.Len(t, statuses, 2)
	assert.Equal(t, JobNews, statuses[0].Name)
	assert.False(t, statuses[0].Running)
	assert.False(t, statuses[0].LastFire.IsZero())
	assert.Equal(t, JobVideos, statuses[1].Name)
	assert.True(t, statuses[1].LastFire.IsZero(), "videos job never ran")
}

func TestScheduler_StartStop(t *testing.T) {
	s, _ := newTestScheduler(t)

	s.Start(context.Background())
	time.Sleep(50 * time.Millisecond) // let the loops compute their first fire

	for _, st := range s.Status() {
		assert.False(t, st.NextFire.IsZero(), "next fire computed for %s", st.Name)
		assert.Equal(t, 10, st.NextFire.In(s.loc).Hour())
	}

	s.Stop()
}
