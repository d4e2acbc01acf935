package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/treehi/pogo-tracker/pkg/config"
	"github.com/treehi/pogo-tracker/pkg/crawler"
	"github.com/treehi/pogo-tracker/pkg/notifier"
	"github.com/treehi/pogo-tracker/pkg/pokedex"
	"github.com/treehi/pogo-tracker/pkg/repository"
	"github.com/treehi/pogo-tracker/pkg/scheduler"
	"github.com/treehi/pogo-tracker/pkg/video"
	"github.com/treehi/pogo-tracker/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"config.yml" description:"config file"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		lgr.Printf("[INFO] termination signal received")
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		lgr.Printf("[ERROR] %v", err)
		cancel()
		os.Exit(1)
	}
	cancel()

	lgr.Printf("[INFO] shutdown complete")
}

func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	setupLog(opts.Debug, cfg.Email.SendGrid.APIKey, cfg.Email.SMTP.Password)
	lgr.Printf("[INFO] starting pogo-tracker version %s", revision)

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to init database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			lgr.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	loc := cfg.Location()

	newsCrawler, err := crawler.New(crawler.Params{
		ListURL:     cfg.News.URL,
		PathPrefix:  cfg.News.PathPrefix,
		Category:    cfg.News.Category,
		Timeout:     cfg.News.Timeout,
		UserAgent:   cfg.News.UserAgent,
		MaxParallel: cfg.News.MaxParallel,
		Location:    loc,
	})
	if err != nil {
		return fmt.Errorf("failed to create crawler: %w", err)
	}

	videoFetcher := video.NewFetcher(video.Params{
		Feeds:      cfg.Videos.FeedURLs(),
		Timeout:    cfg.Videos.Timeout,
		UserAgent:  cfg.News.UserAgent,
		Lookback:   cfg.Videos.Lookback,
		MaxResults: cfg.Videos.MaxResults,
	})

	digestNotifier, err := makeNotifier(cfg, loc)
	if err != nil {
		return fmt.Errorf("failed to create notifier: %w", err)
	}

	pokedexData := pokedex.NewService(cfg.Pokedex.DataDir)
	analyzer := pokedex.NewAnalyzer(pokedexData)

	sched := scheduler.NewScheduler(scheduler.Params{
		News:         repos.News,
		Videos:       repos.Video,
		Subscribers:  repos.Subscriber,
		Crawler:      newsCrawler,
		Fetcher:      videoFetcher,
		Notifier:     digestNotifier,
		Hour:         cfg.Schedule.Hour,
		Minute:       cfg.Schedule.Minute,
		Location:     loc,
		MisfireGrace: cfg.Schedule.MisfireGrace,
		Retention:    cfg.Videos.Retention,
		RunOnStart:   cfg.Schedule.RunOnStart,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(server.Params{
		Config:      cfg,
		News:        repos.News,
		Videos:      repos.Video,
		Subscribers: repos.Subscriber,
		Analyses:    repos.Analysis,
		Analyzer:    analyzer,
		Pokedex:     pokedexData,
		Scheduler:   sched,
		Version:     revision,
		Debug:       opts.Debug,
	})

	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeNotifier builds the digest notifier for the configured provider
func makeNotifier(cfg *config.Config, loc *time.Location) (*notifier.Notifier, error) {
	var sender notifier.Sender
	switch cfg.Email.Provider {
	case "sendgrid":
		sender = notifier.NewSendGridSender(cfg.Email.SendGrid.APIKey, cfg.Email.From)
	case "smtp":
		sender = notifier.NewSMTPSender(cfg.Email.SMTP.Host, cfg.Email.SMTP.Port,
			cfg.Email.SMTP.Username, cfg.Email.SMTP.Password, cfg.Email.From)
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.Email.Provider)
	}

	var defaultTo []string
	if cfg.Email.To != "" {
		defaultTo = []string{cfg.Email.To}
	}

	return notifier.New(notifier.Params{
		Sender:    sender,
		From:      cfg.Email.From,
		DefaultTo: defaultTo,
		DryRun:    cfg.Email.DryRun,
		Location:  loc,
	}), nil
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	if dbg {
		logOpts = append(logOpts, lgr.Debug, lgr.CallerFile, lgr.CallerFunc)
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))

	secrets := make([]string, 0, len(secs))
	for _, s := range secs {
		if s != "" {
			secrets = append(secrets, s)
		}
	}
	if len(secrets) > 0 {
		logOpts = append(logOpts, lgr.Secret(secrets...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
