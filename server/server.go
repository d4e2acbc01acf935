package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/treehi/pogo-tracker/pkg/domain"
	"github.com/treehi/pogo-tracker/pkg/pokedex"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/news_store.go -pkg mocks -skip-ensure -fmt goimports . NewsStore
//go:generate moq -out mocks/video_store.go -pkg mocks -skip-ensure -fmt goimports . VideoStore
//go:generate moq -out mocks/subscriber_store.go -pkg mocks -skip-ensure -fmt goimports . SubscriberStore
//go:generate moq -out mocks/analysis_store.go -pkg mocks -skip-ensure -fmt goimports . AnalysisStore
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// NewsStore reads persisted news items
type NewsStore interface {
	ListItems(ctx context.Context, limit, offset int) ([]domain.NewsItem, error)
}

// VideoStore reads persisted video items
type VideoStore interface {
	ListVideos(ctx context.Context, limit, offset int) ([]domain.VideoItem, error)
}

// SubscriberStore manages digest recipients
type SubscriberStore interface {
	Subscribe(ctx context.Context, email string) (domain.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	Get(ctx context.Context, email string) (domain.Subscriber, error)
	List(ctx context.Context) ([]domain.Subscriber, error)
}

// AnalysisStore persists IV analysis results
type AnalysisStore interface {
	Create(ctx context.Context, analysis *domain.Analysis) error
	List(ctx context.Context, limit int) ([]domain.Analysis, error)
}

// Analyzer estimates IVs from manually entered stats
type Analyzer interface {
	Analyze(name string, cp, hp int) (domain.Analysis, error)
}

// Pokedex serves the bundled reference data
type Pokedex interface {
	All() []pokedex.Pokemon
	ByNumber(number int) (pokedex.Pokemon, bool)
	Search(query string) []pokedex.Pokemon
	MovesFor(pokemonID int) pokedex.MoveSet
	MoveByID(moveID string) (pokedex.Move, bool)
	CurrentSeason() string
	TierFor(pokemonID int, seasonID string) (pokedex.SeasonalTier, bool)
	RaidCountersFor(bossID int) (pokedex.RaidCounterSet, bool)
	PvPRankings(league string, limit int) (pokedex.PvPLeagueRankings, bool)
	Reload()
	Stats() map[string]int
}

// Scheduler exposes on-demand pipeline runs and job state
type Scheduler interface {
	RunNow(ctx context.Context, name string) (domain.CrawlResult, error)
	Status() []domain.JobStatus
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// Server represents HTTP server instance
type Server struct {
	config      ConfigProvider
	news        NewsStore
	videos      VideoStore
	subscribers SubscriberStore
	analyses    AnalysisStore
	analyzer    Analyzer
	pokedex     Pokedex
	scheduler   Scheduler
	version     string
	debug       bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// Params holds server dependencies
type Params struct {
	Config      ConfigProvider
	News        NewsStore
	Videos      VideoStore
	Subscribers SubscriberStore
	Analyses    AnalysisStore
	Analyzer    Analyzer
	Pokedex     Pokedex
	Scheduler   Scheduler
	Version     string
	Debug       bool
}

// New initializes a new server instance
func New(p Params) *Server {
	s := &Server{
		config:      p.Config,
		news:        p.News,
		videos:      p.Videos,
		subscribers: p.Subscribers,
		analyses:    p.Analyses,
		analyzer:    p.Analyzer,
		pokedex:     p.Pokedex,
		scheduler:   p.Scheduler,
		version:     p.Version,
		debug:       p.Debug,
		router:      routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("pogo-tracker", "treehi", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /news", s.newsListHandler)
		r.HandleFunc("GET /videos", s.videoListHandler)

		r.HandleFunc("POST /subscriptions", s.subscribeHandler)
		r.HandleFunc("GET /subscriptions", s.listSubscriptionsHandler)
		r.HandleFunc("GET /subscriptions/{email}", s.getSubscriptionHandler)
		r.HandleFunc("PUT /subscriptions/{email}", s.updateSubscriptionHandler)
		r.HandleFunc("DELETE /subscriptions/{email}", s.unsubscribeHandler)

		r.HandleFunc("POST /analysis", s.analyzeHandler)
		r.HandleFunc("GET /analysis", s.analysisHistoryHandler)

		r.HandleFunc("GET /pokedex", s.pokedexListHandler)
		r.HandleFunc("GET /pokedex/search", s.pokedexSearchHandler)
		r.HandleFunc("GET /pokedex/{id}", s.pokedexGetHandler)

		r.HandleFunc("GET /raids/{boss}/counters", s.raidCountersHandler)
		r.HandleFunc("GET /pvp/party-rankings", s.pvpRankingsHandler)

		r.Mount("/admin").Route(func(admin *routegroup.Bundle) {
			admin.HandleFunc("POST /crawl-now", s.crawlNowHandler)
			admin.HandleFunc("POST /refresh-videos", s.refreshVideosHandler)
			admin.HandleFunc("GET /scheduler-status", s.schedulerStatusHandler)
			admin.HandleFunc("POST /reload-data", s.reloadDataHandler)
			admin.HandleFunc("GET /data-stats", s.dataStatsHandler)
		})
	})
}
