package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"kaset_news/internal/models"

	"github.com/joho/godotenv"
)

// Config holds the feed list, the proxy and the limits of both call sites.
type Config struct {
	ListenAddr          string              `json:"listen_addr"`
	ProxyURL            string              `json:"proxy_url"`
	Feeds               []models.FeedSource `json:"feeds"`
	PreviewLimit        int                 `json:"preview_limit"`
	PageLimit           int                 `json:"page_limit"`
	MaxLimit            int                 `json:"max_limit"`
	FetchTimeoutSeconds int                 `json:"fetch_timeout_seconds"`
	MaxConcurrency      int                 `json:"max_concurrency"`
	UserAgent           string              `json:"user_agent"`
	Locale              string              `json:"locale"`
	LogLevel            string              `json:"log_level"`
}

// DefaultProxyURL is the public pass-through proxy; feed URLs are appended verbatim.
const DefaultProxyURL = "https://api.codetabs.com/v1/proxy?quest="

// DefaultFeeds are the three agritech news sources.
var DefaultFeeds = []models.FeedSource{
	{Name: "AgFunderNews", URL: "https://agfundernews.com/feed"},
	{Name: "Future Farming", URL: "https://www.futurefarming.com/rss/"},
	{Name: "PrecisionAg", URL: "https://www.precisionag.com/feed/"},
}

// Default returns the built-in configuration.
func Default() *Config {
	feeds := make([]models.FeedSource, len(DefaultFeeds))
	copy(feeds, DefaultFeeds)
	return &Config{
		ListenAddr:          ":8080",
		ProxyURL:            DefaultProxyURL,
		Feeds:               feeds,
		PreviewLimit:        6,
		PageLimit:           24,
		MaxLimit:            100,
		FetchTimeoutSeconds: 20,
		UserAgent:           "kaset-news/1.0",
		Locale:              "th-TH",
		LogLevel:            "info",
	}
}

// FetchTimeout is zero when no timeout should be applied.
func (cfg *Config) FetchTimeout() time.Duration {
	return time.Duration(cfg.FetchTimeoutSeconds) * time.Second
}

// Validate checks the feed list and that the limits are consistent.
func (cfg *Config) Validate() error {
	if len(cfg.Feeds) == 0 {
		return errors.New("at least one feed is required")
	}
	seen := make(map[string]struct{}, len(cfg.Feeds))
	for _, f := range cfg.Feeds {
		if f.Name == "" {
			return fmt.Errorf("feed %q has no name", f.URL)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("duplicate feed name: %s", f.Name)
		}
		seen[f.Name] = struct{}{}
		if u, err := url.ParseRequestURI(f.URL); err != nil || u.Host == "" {
			return fmt.Errorf("invalid RSS URL: %s", f.URL)
		}
	}
	if cfg.ProxyURL != "" {
		if u, err := url.ParseRequestURI(cfg.ProxyURL); err != nil || u.Host == "" {
			return fmt.Errorf("invalid proxy URL: %s", cfg.ProxyURL)
		}
	}
	if cfg.PreviewLimit < 1 || cfg.PageLimit < 1 || cfg.MaxLimit < 1 {
		return errors.New("limits must be ≥ 1")
	}
	if cfg.PreviewLimit > cfg.MaxLimit || cfg.PageLimit > cfg.MaxLimit {
		return fmt.Errorf("limits cannot exceed max_limit (%d)", cfg.MaxLimit)
	}
	if cfg.FetchTimeoutSeconds < 0 {
		return errors.New("fetch timeout cannot be negative")
	}
	if cfg.MaxConcurrency < 0 {
		return errors.New("max concurrency cannot be negative")
	}
	return nil
}

// LoadConfig reads the JSON file at path on top of the defaults.
func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	if err := json.NewDecoder(file).Decode(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads .env (if any), the JSON file named by NEWS_CONFIG (config.json by
// default, optional) and applies environment overrides before validating.
func Load() (*Config, error) {
	_ = godotenv.Load()

	path := getEnv("NEWS_CONFIG", "config.json")
	cfg, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() {
	cfg.ListenAddr = getEnv("LISTEN_ADDR", cfg.ListenAddr)
	cfg.ProxyURL = getEnv("PROXY_URL", cfg.ProxyURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.Locale = getEnv("LOCALE", cfg.Locale)
	cfg.FetchTimeoutSeconds = getInt("FETCH_TIMEOUT_SECONDS", cfg.FetchTimeoutSeconds)
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return fallback
}
