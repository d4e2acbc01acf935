package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:pogo-tracker.db?cache=shared&mode=rwc,description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Schedule ScheduleConfig `yaml:"schedule" json:"schedule" jsonschema:"description=Daily job scheduling"`

	News   NewsConfig   `yaml:"news" json:"news" jsonschema:"description=News crawling configuration"`
	Videos VideosConfig `yaml:"videos" json:"videos" jsonschema:"description=Video feed configuration"`
	Email  EmailConfig  `yaml:"email" json:"email" jsonschema:"description=Digest email configuration"`

	Pokedex struct {
		DataDir string `yaml:"data_dir" json:"data_dir" jsonschema:"default=data,description=Directory with pokedex JSON data files"`
	} `yaml:"pokedex" json:"pokedex" jsonschema:"description=Pokedex reference data"`
}

// ScheduleConfig holds the daily trigger settings shared by both jobs
type ScheduleConfig struct {
	Hour         int           `yaml:"hour" json:"hour" jsonschema:"default=10,minimum=0,maximum=23,description=Local hour of the daily trigger"`
	Minute       int           `yaml:"minute" json:"minute" jsonschema:"default=0,minimum=0,maximum=59,description=Local minute of the daily trigger"`
	Timezone     string        `yaml:"timezone" json:"timezone" jsonschema:"default=Asia/Seoul,description=IANA timezone for the trigger"`
	MisfireGrace time.Duration `yaml:"misfire_grace" json:"misfire_grace" jsonschema:"default=5m,description=How late a trigger may fire and still execute"`
	RunOnStart   bool          `yaml:"run_on_start" json:"run_on_start" jsonschema:"default=true,description=Run both jobs once at startup"`
}

// NewsConfig holds crawler settings for the official news page
type NewsConfig struct {
	URL         string        `yaml:"url" json:"url" jsonschema:"default=https://pokemongo.com/ko/news,description=News list page URL"`
	PathPrefix  string        `yaml:"path_prefix" json:"path_prefix" jsonschema:"default=/ko/news/,description=URL path prefix news links must match"`
	Timeout     time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout per request"`
	UserAgent   string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for HTTP requests"`
	MaxParallel int           `yaml:"max_parallel" json:"max_parallel" jsonschema:"default=5,description=Concurrent detail page fetches"`
	Category    string        `yaml:"category" json:"category" jsonschema:"default=뉴스,description=Default category label for crawled items"`
}

// VideosConfig holds video feed ingestion settings
type VideosConfig struct {
	Feeds      string        `yaml:"feeds" json:"feeds" jsonschema:"description=Comma-separated feed URLs"`
	Timeout    time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP timeout per feed"`
	Lookback   time.Duration `yaml:"lookback" json:"lookback" jsonschema:"default=336h,description=Maximum age of a feed entry to ingest (14 days)"`
	Retention  time.Duration `yaml:"retention" json:"retention" jsonschema:"default=2160h,description=Age after which stored videos are deleted (90 days)"`
	MaxResults int           `yaml:"max_results" json:"max_results" jsonschema:"default=50,description=Maximum videos collected per run"`
}

// EmailConfig holds digest notification settings
type EmailConfig struct {
	Provider string `yaml:"provider" json:"provider" jsonschema:"default=sendgrid,enum=sendgrid,enum=smtp,description=Delivery transport"`
	From     string `yaml:"from" json:"from" jsonschema:"description=Sender address"`
	To       string `yaml:"to" json:"to" jsonschema:"description=Default recipient when no subscribers exist"`
	DryRun   bool   `yaml:"dry_run" json:"dry_run" jsonschema:"default=false,description=Log instead of sending"`

	SendGrid struct {
		APIKey string `yaml:"api_key" json:"api_key" jsonschema:"description=SendGrid API key (can use environment variable)"`
	} `yaml:"sendgrid" json:"sendgrid" jsonschema:"description=SendGrid settings"`

	SMTP struct {
		Host     string `yaml:"host" json:"host" jsonschema:"default=smtp.gmail.com,description=SMTP host"`
		Port     int    `yaml:"port" json:"port" jsonschema:"default=587,description=SMTP port"`
		Username string `yaml:"username" json:"username" jsonschema:"description=SMTP username"`
		Password string `yaml:"password" json:"password" jsonschema:"description=SMTP password (can use environment variable)"`
	} `yaml:"smtp" json:"smtp" jsonschema:"description=SMTP settings"`
}

// FeedURLs returns the configured feed URLs, trimmed, empty entries dropped
func (v VideosConfig) FeedURLs() []string {
	if v.Feeds == "" {
		return nil
	}
	parts := strings.Split(v.Feeds, ",")
	urls := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			urls = append(urls, p)
		}
	}
	return urls
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	// sentinel distinguishes an absent hour from an explicit 0 (midnight)
	cfg.Schedule.Hour = -1
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		fmt.Printf("warning: schema validation failed: %v\n", err)
	}

	return &cfg, nil
}

// setDefaults fills zero values with defaults
func (c *Config) setDefaults() {
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}

	if c.Database.DSN == "" {
		c.Database.DSN = "file:pogo-tracker.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	if c.Schedule.Hour < 0 {
		c.Schedule.Hour = 10
	}
	if c.Schedule.Timezone == "" {
		c.Schedule.Timezone = "Asia/Seoul"
	}
	if c.Schedule.MisfireGrace == 0 {
		c.Schedule.MisfireGrace = 5 * time.Minute
	}

	if c.News.URL == "" {
		c.News.URL = "https://pokemongo.com/ko/news"
	}
	if c.News.PathPrefix == "" {
		c.News.PathPrefix = "/ko/news/"
	}
	if c.News.Timeout == 0 {
		c.News.Timeout = 30 * time.Second
	}
	if c.News.UserAgent == "" {
		c.News.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	}
	if c.News.MaxParallel == 0 {
		c.News.MaxParallel = 5
	}
	if c.News.Category == "" {
		c.News.Category = "뉴스"
	}

	if c.Videos.Timeout == 0 {
		c.Videos.Timeout = 30 * time.Second
	}
	if c.Videos.Lookback == 0 {
		c.Videos.Lookback = 14 * 24 * time.Hour
	}
	if c.Videos.Retention == 0 {
		c.Videos.Retention = 90 * 24 * time.Hour
	}
	if c.Videos.MaxResults == 0 {
		c.Videos.MaxResults = 50
	}

	if c.Email.Provider == "" {
		c.Email.Provider = "sendgrid"
	}
	if c.Email.SMTP.Host == "" {
		c.Email.SMTP.Host = "smtp.gmail.com"
	}
	if c.Email.SMTP.Port == 0 {
		c.Email.SMTP.Port = 587
	}

	if c.Pokedex.DataDir == "" {
		c.Pokedex.DataDir = "data"
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	if cfg.Server.Timeout < time.Second {
		return fmt.Errorf("server timeout must be at least 1 second")
	}

	if cfg.Schedule.Hour < 0 || cfg.Schedule.Hour > 23 {
		return fmt.Errorf("schedule.hour must be between 0 and 23")
	}
	if cfg.Schedule.Minute < 0 || cfg.Schedule.Minute > 59 {
		return fmt.Errorf("schedule.minute must be between 0 and 59")
	}
	if _, err := time.LoadLocation(cfg.Schedule.Timezone); err != nil {
		return fmt.Errorf("schedule.timezone %q: %w", cfg.Schedule.Timezone, err)
	}

	if cfg.News.Timeout < time.Second {
		return fmt.Errorf("news.timeout must be at least 1 second")
	}
	if cfg.Videos.Lookback <= 0 {
		return fmt.Errorf("videos.lookback must be positive")
	}
	if cfg.Videos.Retention <= cfg.Videos.Lookback {
		return fmt.Errorf("videos.retention must exceed videos.lookback")
	}

	switch cfg.Email.Provider {
	case "sendgrid", "smtp":
	default:
		return fmt.Errorf("email.provider must be sendgrid or smtp, got %q", cfg.Email.Provider)
	}

	return nil
}

// Location returns the configured scheduler timezone, validated at load time
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}
