// Package config provides configuration management for the snapshot scraper.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingBaseURL          = errors.New("scraper.base_url is required")
	ErrInvalidTargetYear       = errors.New("scraper.target_year must be a four-digit year")
	ErrNoProductSelectors      = errors.New("scraper.selectors.product_cards requires at least one selector")
	ErrMissingReviewSelector   = errors.New("scraper.selectors.review_card is required")
	ErrMissingLoadMoreSelector = errors.New("scraper.selectors.load_more is required")
	ErrMissingTestimonialSel   = errors.New("scraper.selectors.testimonial_cards is required")
	ErrMissingStarMarker       = errors.New("scraper.selectors.star_marker is required")
	ErrNegativeWait            = errors.New("scraper.waits values must be non-negative")
	ErrInvalidStablePasses     = errors.New("scraper.scroll.stable_passes must be at least 1")
	ErrInvalidMaxCycles        = errors.New("scraper.scroll.max_cycles must be at least 1")
	ErrInvalidMinTextLength    = errors.New("scraper.filters.min_text_length must be non-negative")
	ErrMissingOutputPath       = errors.New("scraper.output.path is required")
	ErrInvalidLogLevel         = errors.New("scraper.logging.level must be one of: debug, info, warn, error")
	ErrInvalidWindowSize       = errors.New("browser.window_width and browser.window_height must be positive")
	ErrInvalidNavTimeout       = errors.New("browser.nav_timeout_sec must be at least 1")
)

// Config represents the complete scraper configuration.
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Browser BrowserConfig `yaml:"browser"`
}

// ScraperConfig contains crawl-specific settings.
type ScraperConfig struct {
	BaseURL    string          `yaml:"base_url"`
	TargetYear int             `yaml:"target_year"`
	Selectors  SelectorsConfig `yaml:"selectors"`
	Waits      WaitsConfig     `yaml:"waits"`
	Scroll     ScrollConfig    `yaml:"scroll"`
	Filters    FiltersConfig   `yaml:"filters"`
	Output     OutputConfig    `yaml:"output"`
	Logging    LoggingConfig   `yaml:"logging"`
}

// SelectorsConfig names the structural shapes extracted from rendered pages.
// ProductCards is a synonym set: a node matching any entry counts as a card.
type SelectorsConfig struct {
	ProductCards     []string `yaml:"product_cards"`
	ReviewCard       string   `yaml:"review_card"`
	LoadMore         string   `yaml:"load_more"`
	TestimonialCards string   `yaml:"testimonial_cards"`
	StarMarker       string   `yaml:"star_marker"`
}

// WaitsConfig holds the fixed settle pauses (in milliseconds) that let
// client-side rendering finish after a navigation, click or scroll.
type WaitsConfig struct {
	PageLoadMs     int `yaml:"page_load_ms"`
	ReviewPageMs   int `yaml:"review_page_ms"`
	ClickSettleMs  int `yaml:"click_settle_ms"`
	ScrollSettleMs int `yaml:"scroll_settle_ms"`
}

// ScrollConfig controls infinite-scroll settlement detection. Settlement
// requires StablePasses consecutive no-growth height readings; MaxCycles
// bounds the loop on pages that never stop growing.
type ScrollConfig struct {
	StablePasses int `yaml:"stable_passes"`
	MaxCycles    int `yaml:"max_cycles"`
}

// FiltersConfig defines the noise filters applied to candidate records.
type FiltersConfig struct {
	MinTextLength      int      `yaml:"min_text_length"`
	BoilerplateMarkers []string `yaml:"boilerplate_markers"`
	ExcludedTitles     []string `yaml:"excluded_titles"`
}

// OutputConfig defines snapshot persistence behavior.
type OutputConfig struct {
	Path         string `yaml:"path"`
	PrettyPrint  bool   `yaml:"pretty_print"`
	CreateBackup bool   `yaml:"create_backup"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// BrowserConfig contains browser session settings.
type BrowserConfig struct {
	Headless      bool `yaml:"headless"`
	NoSandbox     bool `yaml:"no_sandbox"`
	DisableGPU    bool `yaml:"disable_gpu"`
	WindowWidth   int  `yaml:"window_width"`
	WindowHeight  int  `yaml:"window_height"`
	NavTimeoutSec int  `yaml:"nav_timeout_sec"`
}

// DefaultConfig returns the configuration matching the target storefront's
// markup; a config file overrides individual fields.
func DefaultConfig() *Config {
	return &Config{
		Scraper: ScraperConfig{
			BaseURL:    "https://web-scraping.dev",
			TargetYear: 2023,
			Selectors: SelectorsConfig{
				ProductCards: []string{
					"div.product-item",
					"div.row.product",
					"div[class*='product-item']",
				},
				ReviewCard:       ".review",
				LoadMore:         "#page-load-more",
				TestimonialCards: "div[class*='testimonial']",
				StarMarker:       "svg path[fill='#ffce31']",
			},
			Waits: WaitsConfig{
				PageLoadMs:     1000,
				ReviewPageMs:   2000,
				ClickSettleMs:  1500,
				ScrollSettleMs: 2000,
			},
			Scroll: ScrollConfig{
				StablePasses: 2,
				MaxCycles:    50,
			},
			Filters: FiltersConfig{
				MinTextLength:      10,
				BoilerplateMarkers: []string{"Take a look", "Reviews"},
				ExcludedTitles:     []string{"Log in"},
			},
			Output: OutputConfig{
				Path:        "data/snapshot.json",
				PrettyPrint: true,
			},
			Logging: LoggingConfig{
				Level: "info",
			},
		},
		Browser: BrowserConfig{
			Headless:      true,
			NoSandbox:     true,
			DisableGPU:    true,
			WindowWidth:   1920,
			WindowHeight:  1080,
			NavTimeoutSec: 30,
		},
	}
}

// LoadConfig loads configuration from a YAML file layered over defaults.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Scraper.BaseURL) == "" {
		return ErrMissingBaseURL
	}

	if c.Scraper.TargetYear < 1000 || c.Scraper.TargetYear > 9999 {
		return ErrInvalidTargetYear
	}

	if len(c.Scraper.Selectors.ProductCards) == 0 {
		return ErrNoProductSelectors
	}

	if c.Scraper.Selectors.ReviewCard == "" {
		return ErrMissingReviewSelector
	}

	if c.Scraper.Selectors.LoadMore == "" {
		return ErrMissingLoadMoreSelector
	}

	if c.Scraper.Selectors.TestimonialCards == "" {
		return ErrMissingTestimonialSel
	}

	if c.Scraper.Selectors.StarMarker == "" {
		return ErrMissingStarMarker
	}

	waits := []int{
		c.Scraper.Waits.PageLoadMs,
		c.Scraper.Waits.ReviewPageMs,
		c.Scraper.Waits.ClickSettleMs,
		c.Scraper.Waits.ScrollSettleMs,
	}
	for _, w := range waits {
		if w < 0 {
			return ErrNegativeWait
		}
	}

	if c.Scraper.Scroll.StablePasses < 1 {
		return ErrInvalidStablePasses
	}

	if c.Scraper.Scroll.MaxCycles < 1 {
		return ErrInvalidMaxCycles
	}

	if c.Scraper.Filters.MinTextLength < 0 {
		return ErrInvalidMinTextLength
	}

	if c.Scraper.Output.Path == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Scraper.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Browser.WindowWidth < 1 || c.Browser.WindowHeight < 1 {
		return ErrInvalidWindowSize
	}

	if c.Browser.NavTimeoutSec < 1 {
		return ErrInvalidNavTimeout
	}

	return nil
}

// PageLoad returns the settle pause after a product page navigation.
func (w *WaitsConfig) PageLoad() time.Duration {
	return time.Duration(w.PageLoadMs) * time.Millisecond
}

// ReviewPage returns the settle pause after the reviews page navigation.
func (w *WaitsConfig) ReviewPage() time.Duration {
	return time.Duration(w.ReviewPageMs) * time.Millisecond
}

// ClickSettle returns the pause after triggering a load-more control.
func (w *WaitsConfig) ClickSettle() time.Duration {
	return time.Duration(w.ClickSettleMs) * time.Millisecond
}

// ScrollSettle returns the pause after a scroll-to-bottom command.
func (w *WaitsConfig) ScrollSettle() time.Duration {
	return time.Duration(w.ScrollSettleMs) * time.Millisecond
}

// NavTimeout returns the per-navigation timeout.
func (b *BrowserConfig) NavTimeout() time.Duration {
	return time.Duration(b.NavTimeoutSec) * time.Second
}

// ProductsURL returns the numbered product listing URL for a page.
func (c *Config) ProductsURL(page int) string {
	return fmt.Sprintf("%s/products?page=%d", strings.TrimRight(c.Scraper.BaseURL, "/"), page)
}

// ReviewsURL returns the click-to-load reviews page URL.
func (c *Config) ReviewsURL() string {
	return strings.TrimRight(c.Scraper.BaseURL, "/") + "/reviews"
}

// TestimonialsURL returns the infinite-scroll testimonials page URL.
func (c *Config) TestimonialsURL() string {
	return strings.TrimRight(c.Scraper.BaseURL, "/") + "/testimonials"
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, TargetYear: %d, Output: %s}",
		c.Scraper.BaseURL,
		c.Scraper.TargetYear,
		c.Scraper.Output.Path,
	)
}
