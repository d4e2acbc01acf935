// Package scheduler runs the daily news and video pipelines. Each job
// fires once a day at the configured local time, never overlaps itself,
// coalesces missed fires into one, and skips a fire entirely when it is
// discovered later than the misfire grace.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/treehi/pogo-tracker/pkg/domain"
)

//go:generate moq -out mocks/news_store.go -pkg mocks -skip-ensure -fmt goimports . NewsStore
//go:generate moq -out mocks/video_store.go -pkg mocks -skip-ensure -fmt goimports . VideoStore
//go:generate moq -out mocks/subscriber_store.go -pkg mocks -skip-ensure -fmt goimports . SubscriberStore
//go:generate moq -out mocks/crawler.go -pkg mocks -skip-ensure -fmt goimports . Crawler
//go:generate moq -out mocks/video_fetcher.go -pkg mocks -skip-ensure -fmt goimports . VideoFetcher
//go:generate moq -out mocks/notifier.go -pkg mocks -skip-ensure -fmt goimports . Notifier

// NewsStore persists news items
type NewsStore interface {
	CreateItems(ctx context.Context, items []domain.NewsItem) ([]domain.NewsItem, error)
	GetUnnotified(ctx context.Context) ([]domain.NewsItem, error)
	MarkNotified(ctx context.Context, ids []int64) error
}

// VideoStore persists video items
type VideoStore interface {
	CreateVideos(ctx context.Context, videos []domain.VideoItem) ([]domain.VideoItem, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SubscriberStore lists digest recipients
type SubscriberStore interface {
	ListActive(ctx context.Context) ([]string, error)
}

// Crawler fetches news candidates from the source page
type Crawler interface {
	Crawl(ctx context.Context) ([]domain.Candidate, error)
}

// VideoFetcher fetches recent videos from the configured feeds
type VideoFetcher interface {
	FetchAll(ctx context.Context) ([]domain.VideoItem, error)
}

// Notifier sends digest emails for a batch of news items
type Notifier interface {
	NotifyBatch(ctx context.Context, items []domain.NewsItem, recipients []string) (bool, error)
}

// job names used by RunNow and Status
const (
	JobNews   = "news"
	JobVideos = "videos"
)

// Scheduler owns the daily jobs and their single-flight guards
type Scheduler struct {
	news        NewsStore
	videos      VideoStore
	subscribers SubscriberStore
	crawler     Crawler
	fetcher     VideoFetcher
	notifier    Notifier

	hour, minute int
	loc          *time.Location
	misfireGrace time.Duration
	retention    time.Duration
	runOnStart   bool
	now          func() time.Time

	jobs   []*job
	byName map[string]*job
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// job is one scheduled pipeline with its single-flight lock. Scheduled
// fires try the lock and skip when it is held; manual runs block on it,
// so a manual trigger during a scheduled run executes right after.
type job struct {
	name string
	run  func(ctx context.Context) (domain.CrawlResult, error)
	mu   sync.Mutex

	stateMu  sync.Mutex
	running  bool
	nextFire time.Time
	lastFire time.Time
}

func (j *job) setRunning(v bool) { j.stateMu.Lock(); j.running = v; j.stateMu.Unlock() }

func (j *job) setNextFire(t time.Time) { j.stateMu.Lock(); j.nextFire = t; j.stateMu.Unlock() }

func (j *job) setLastFire(t time.Time) { j.stateMu.Lock(); j.lastFire = t; j.stateMu.Unlock() }

func (j *job) status() domain.JobStatus {
	j.stateMu.Lock()
	defer j.stateMu.Unlock()
	return domain.JobStatus{Name: j.name, Running: j.running, NextFire: j.nextFire, LastFire: j.lastFire}
}

// Params holds scheduler configuration and dependencies
type Params struct {
	News        NewsStore
	Videos      VideoStore
	Subscribers SubscriberStore
	Crawler     Crawler
	Fetcher     VideoFetcher
	Notifier    Notifier

	Hour         int
	Minute       int
	Location     *time.Location
	MisfireGrace time.Duration
	Retention    time.Duration
	RunOnStart   bool
}

// NewScheduler creates a scheduler with both daily jobs registered
func NewScheduler(p Params) *Scheduler {
	if p.Location == nil {
		p.Location = time.Local
	}
	if p.MisfireGrace == 0 {
		p.MisfireGrace = 5 * time.Minute
	}
	if p.Retention == 0 {
		p.Retention = 90 * 24 * time.Hour
	}

	s := &Scheduler{
		news:         p.News,
		videos:       p.Videos,
		subscribers:  p.Subscribers,
		crawler:      p.Crawler,
		fetcher:      p.Fetcher,
		notifier:     p.Notifier,
		hour:         p.Hour,
		minute:       p.Minute,
		loc:          p.Location,
		misfireGrace: p.MisfireGrace,
		retention:    p.Retention,
		runOnStart:   p.RunOnStart,
		now:          time.Now,
		byName:       make(map[string]*job),
	}

	s.addJob(JobNews, s.runNews)
	s.addJob(JobVideos, s.runVideos)
	return s
}

func (s *Scheduler) addJob(name string, run func(ctx context.Context) (domain.CrawlResult, error)) {
	j := &job{name: name, run: run}
	s.jobs = append(s.jobs, j)
	s.byName[name] = j
}

// Start launches the timer loop for each job
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.runLoop(ctx, j)
	}

	lgr.Printf("[INFO] scheduler started, %d jobs firing daily at %02d:%02d %s",
		len(s.jobs), s.hour, s.minute, s.loc)
}

// Stop cancels the timer loops and waits for running jobs to finish
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RunNow triggers a job by name, blocking until any in-flight run of the
// same job completes first. Used by the operator endpoints.
func (s *Scheduler) RunNow(ctx context.Context, name string) (domain.CrawlResult, error) {
	j, ok := s.byName[name]
	if !ok {
		return domain.CrawlResult{}, fmt.Errorf("unknown job %q", name)
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	return s.execute(ctx, j, "manual")
}

// Status reports scheduling state for all jobs
func (s *Scheduler) Status() []domain.JobStatus {
	out := make([]domain.JobStatus, 0, len(s.jobs))
	for _, j := range s.jobs {
		out = append(out, j.status())
	}
	return out
}

// runLoop is the per-job timer loop. One timer, recomputed after every
// fire, so any number of missed fires collapses into a single next fire.
func (s *Scheduler) runLoop(ctx context.Context, j *job) {
	defer s.wg.Done()

	if s.runOnStart {
		s.tryRun(ctx, j)
	}

	next := s.nextFire(s.now())
	j.setNextFire(next)
	timer := time.NewTimer(next.Sub(s.now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.fire(ctx, j, next)

			next = s.nextFire(s.now())
			j.setNextFire(next)
			timer.Reset(next.Sub(s.now()))
		}
	}
}

// fire runs one scheduled fire of the job, unless the wakeup came later
// than the misfire grace after the planned time. A delayed wakeup within
// the grace still runs.
func (s *Scheduler) fire(ctx context.Context, j *job, planned time.Time) {
	if late := s.now().Sub(planned); late > s.misfireGrace {
		lgr.Printf("[WARN] job %s missed its %s fire by %v, skipping",
			j.name, planned.Format("15:04"), late.Truncate(time.Second))
		return
	}
	s.tryRun(ctx, j)
}

// tryRun executes the job unless a previous run still holds the lock
func (s *Scheduler) tryRun(ctx context.Context, j *job) {
	if !j.mu.TryLock() {
		lgr.Printf("[WARN] job %s still running, skipping this fire", j.name)
		return
	}
	defer j.mu.Unlock()

	if _, err := s.execute(ctx, j, "scheduled"); err != nil {
		lgr.Printf("[ERROR] job %s failed: %v", j.name, err)
	}
}

// execute runs the job body with state bookkeeping. Caller holds j.mu.
func (s *Scheduler) execute(ctx context.Context, j *job, trigger string) (domain.CrawlResult, error) {
	started := s.now()
	j.setRunning(true)
	j.setLastFire(started)
	defer j.setRunning(false)

	lgr.Printf("[INFO] job %s started (%s)", j.name, trigger)
	res, err := j.run(ctx)
	res.Job = j.name
	res.Started = started
	res.Elapsed = time.Since(started).Truncate(time.Millisecond).String()

	if err != nil {
		return res, err
	}
	lgr.Printf("[INFO] job %s done in %s: %d found, %d new", j.name, res.Elapsed, res.Found, res.NewCount)
	return res, nil
}

// nextFire returns the next daily fire time strictly after t
func (s *Scheduler) nextFire(t time.Time) time.Time {
	t = t.In(s.loc)
	fire := time.Date(t.Year(), t.Month(), t.Day(), s.hour, s.minute, 0, 0, s.loc)
	if !fire.After(t) {
		fire = fire.AddDate(0, 0, 1)
	}
	return fire
}
