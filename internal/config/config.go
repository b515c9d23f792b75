// Package config loads scroll's settings from defaults, an optional YAML
// file and SCROLL_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/abelbrown/scroll/internal/ledger"
	"github.com/abelbrown/scroll/internal/mix"
	"github.com/abelbrown/scroll/internal/plan"
)

// Config is the full application configuration.
type Config struct {
	Plan   PlanConfig   `koanf:"plan"`
	Ledger LedgerConfig `koanf:"ledger"`
	Mix    MixConfig    `koanf:"mix"`
	Feed   FeedConfig   `koanf:"feed"`
	Wiki   WikiConfig   `koanf:"wiki"`
	News   NewsConfig   `koanf:"news"`
	Store  StoreConfig  `koanf:"store"`
	Log    LogConfig    `koanf:"log"`
}

// PlanConfig holds the bucket split.
type PlanConfig struct {
	NewsRatio    float64 `koanf:"news_ratio" validate:"gte=0,lte=1"`
	RelatedRatio float64 `koanf:"related_ratio" validate:"gte=0,lte=1"`
	FillerRatio  float64 `koanf:"filler_ratio" validate:"gte=0,lte=1"`
	NewsCadence  []int   `koanf:"news_cadence" validate:"dive,gt=0"`
	TopicCadence int     `koanf:"topic_cadence" validate:"gte=0"`
	TopicBurst   int     `koanf:"topic_burst" validate:"gte=0"`
	WikiFloor    float64 `koanf:"wiki_floor" validate:"gte=0,lte=1"`
	NewsFloor    float64 `koanf:"news_floor" validate:"gte=0,lte=1"`
	FactFloor    float64 `koanf:"fact_floor" validate:"gte=0,lte=1"`
}

// LedgerConfig bounds the viewed-content ledger.
type LedgerConfig struct {
	TTL      time.Duration `koanf:"ttl" validate:"gt=0"`
	NewsTTL  time.Duration `koanf:"news_ttl" validate:"gt=0"`
	Capacity int           `koanf:"capacity" validate:"gt=0"`
}

// MixConfig tunes batch interleaving.
type MixConfig struct {
	MinSpacing int `koanf:"min_spacing" validate:"gte=1"`
}

// FeedConfig tunes the composition pipeline.
type FeedConfig struct {
	// Overfetch margins are added to each bucket's planned count.
	NewsMargin    int           `koanf:"news_margin" validate:"gte=0"`
	WikiMargin    int           `koanf:"wiki_margin" validate:"gte=0"`
	RelatedMargin int           `koanf:"related_margin" validate:"gte=0"`
	TopicMargin   int           `koanf:"topic_margin" validate:"gte=0"`
	FillerMargin  int           `koanf:"filler_margin" validate:"gte=0"`
	SearchLimit   int           `koanf:"search_limit" validate:"gte=1,lte=100"`
	FetchTimeout  time.Duration `koanf:"fetch_timeout" validate:"gt=0"`
	ActionTimeout time.Duration `koanf:"action_timeout" validate:"gt=0"`
	DefaultTopics []string      `koanf:"default_topics"`
	Offline       bool          `koanf:"offline"`
}

// WikiConfig configures the Wikipedia client.
type WikiConfig struct {
	BaseURL   string        `koanf:"base_url" validate:"required,url"`
	UserAgent string        `koanf:"user_agent" validate:"required"`
	RateEvery time.Duration `koanf:"rate_every" validate:"gte=0"`
	RateBurst int           `koanf:"rate_burst" validate:"gte=1"`
}

// NewsSource is one RSS/Atom feed.
type NewsSource struct {
	Name string `koanf:"name" validate:"required"`
	URL  string `koanf:"url" validate:"required,url"`
}

// NewsConfig lists the headline feeds.
type NewsConfig struct {
	Sources      []NewsSource  `koanf:"sources" validate:"dive"`
	CacheTTL     time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxAge       time.Duration `koanf:"max_age" validate:"gte=0"`
	MaxPerSource int           `koanf:"max_per_source" validate:"gte=0"`
}

// StoreConfig locates the signal database.
type StoreConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// LogConfig controls the file logger and the event log.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Dir    string `koanf:"dir"`
	Events bool   `koanf:"events"`
}

// Dir returns ~/.scroll, where state lives by default.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scroll")
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	p := plan.DefaultConfig()
	return &Config{
		Plan: PlanConfig{
			NewsRatio:    p.NewsRatio,
			RelatedRatio: p.RelatedRatio,
			FillerRatio:  p.FillerRatio,
			NewsCadence:  p.NewsCadence,
			TopicCadence: p.TopicCadence,
			TopicBurst:   p.TopicBurst,
			WikiFloor:    p.WikiFloor,
			NewsFloor:    p.NewsFloor,
			FactFloor:    p.FactFloor,
		},
		Ledger: LedgerConfig{
			TTL:      ledger.DefaultTTL,
			NewsTTL:  ledger.DefaultNewsTTL,
			Capacity: ledger.DefaultCapacity,
		},
		Mix: MixConfig{MinSpacing: mix.DefaultMinSpacing},
		Feed: FeedConfig{
			NewsMargin:    2,
			WikiMargin:    5,
			RelatedMargin: 2,
			TopicMargin:   1,
			FillerMargin:  1,
			SearchLimit:   20,
			FetchTimeout:  8 * time.Second,
			ActionTimeout: 5 * time.Second,
			DefaultTopics: []string{"science", "history", "space", "nature", "technology"},
		},
		Wiki: WikiConfig{
			BaseURL:   "https://en.wikipedia.org",
			UserAgent: "scroll/0.1 (https://github.com/abelbrown/scroll)",
			RateEvery: 200 * time.Millisecond,
			RateBurst: 5,
		},
		News: NewsConfig{
			Sources: []NewsSource{
				{Name: "BBC World", URL: "https://feeds.bbci.co.uk/news/world/rss.xml"},
				{Name: "NPR", URL: "https://feeds.npr.org/1001/rss.xml"},
				{Name: "The Guardian", URL: "https://www.theguardian.com/world/rss"},
				{Name: "Ars Technica", URL: "https://feeds.arstechnica.com/arstechnica/index"},
			},
			CacheTTL:     5 * time.Minute,
			Timeout:      6 * time.Second,
			MaxAge:       48 * time.Hour,
			MaxPerSource: 15,
		},
		Store: StoreConfig{Path: filepath.Join(Dir(), "scroll.db")},
		Log: LogConfig{
			Level: "info",
			Dir:   filepath.Join(Dir(), "logs"),
		},
	}
}

// PlanSettings converts to the planner's settings.
func (c *Config) PlanSettings() plan.Config {
	return plan.Config{
		NewsRatio:    c.Plan.NewsRatio,
		RelatedRatio: c.Plan.RelatedRatio,
		FillerRatio:  c.Plan.FillerRatio,
		NewsCadence:  c.Plan.NewsCadence,
		TopicCadence: c.Plan.TopicCadence,
		TopicBurst:   c.Plan.TopicBurst,
		WikiFloor:    c.Plan.WikiFloor,
		NewsFloor:    c.Plan.NewsFloor,
		FactFloor:    c.Plan.FactFloor,
	}
}

func (c *Config) LedgerOptions() ledger.Options {
	return ledger.Options{
		TTL:      c.Ledger.TTL,
		NewsTTL:  c.Ledger.NewsTTL,
		Capacity: c.Ledger.Capacity,
	}
}

func (c *Config) MixOptions() mix.Options {
	return mix.Options{MinSpacing: c.Mix.MinSpacing}
}
