package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pevans/foxscrape/article"
	"github.com/pevans/foxscrape/export"
	"github.com/pevans/foxscrape/fetch"
	"github.com/pevans/foxscrape/forum"
	"github.com/pevans/foxscrape/scraper"
	"gopkg.in/yaml.v3"
)

// HTTPConfig holds settings shared by both scrapers' HTTP clients.
type HTTPConfig struct {
	UserAgent string        `yaml:"user_agent"` // "random" picks a browser string
	Timeout   time.Duration `yaml:"timeout"` // 0 waits until the run is cancelled
	Charset   string        `yaml:"charset"` // used when a page declares none
}

// ArticlesConfig configures the numbered article scraper.
type ArticlesConfig struct {
	BaseURL   string                `yaml:"base_url"`
	First     int                   `yaml:"first"`
	Last      int                   `yaml:"last"`
	OutDir    string                `yaml:"out_dir"`
	Delay     time.Duration         `yaml:"delay"`
	Selectors scraper.ArticleConfig `yaml:"selectors"`
}

// ForumConfig configures the forum scraper and its exports.
type ForumConfig struct {
	StartURL   string               `yaml:"start_url"`
	MaxThreads int                  `yaml:"max_threads"`
	Delay      time.Duration        `yaml:"delay"`
	JSONPath   string               `yaml:"json_path"`
	CSVPath    string               `yaml:"csv_path"`
	SQLitePath string               `yaml:"sqlite_path"` // empty disables the SQLite export
	Listing    scraper.ListConfig   `yaml:"listing"`
	Thread     scraper.ThreadConfig `yaml:"thread"`
}

// FileConfig represents the structure of ~/.foxscrape/config.yaml.
type FileConfig struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Articles ArticlesConfig `yaml:"articles"`
	Forum    ForumConfig    `yaml:"forum"`
}

// Default returns the configuration used when no file is present.
func Default() *FileConfig {
	articles := article.DefaultConfig()
	forumCfg := forum.DefaultConfig()

	return &FileConfig{
		HTTP: HTTPConfig{
			UserAgent: fetch.DefaultUserAgent,
		},
		Articles: ArticlesConfig{
			BaseURL:   articles.BaseURL,
			First:     articles.First,
			Last:      articles.Last,
			OutDir:    articles.OutDir,
			Selectors: articles.Selectors,
		},
		Forum: ForumConfig{
			StartURL:   forumCfg.StartURL,
			MaxThreads: forumCfg.MaxThreads,
			Delay:      time.Second,
			JSONPath:   export.DefaultJSONPath,
			CSVPath:    export.DefaultCSVPath,
			Listing:    forumCfg.List,
			Thread:     forumCfg.Thread,
		},
	}
}

// DefaultPath returns ~/.foxscrape/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".foxscrape", "config.yaml"), nil
}

// LoadConfigFile loads configuration from path, or from DefaultPath when path
// is empty. Values missing from the file keep their defaults, and a missing
// file yields the defaults. Returns an error if the file exists but cannot be
// parsed or holds invalid values.
func LoadConfigFile(path string) (*FileConfig, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil // File doesn't exist -- not an error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks for values neither scraper can run with.
func (c *FileConfig) Validate() error {
	if c.Articles.BaseURL == "" {
		return fmt.Errorf("articles.base_url is required")
	}
	if c.Articles.First < 0 || c.Articles.First > c.Articles.Last {
		return fmt.Errorf("invalid article range %d..%d", c.Articles.First, c.Articles.Last)
	}
	if c.Articles.OutDir == "" {
		return fmt.Errorf("articles.out_dir is required")
	}
	if c.Forum.StartURL == "" {
		return fmt.Errorf("forum.start_url is required")
	}
	if c.Forum.Listing.MaxPages < 0 {
		return fmt.Errorf("forum.listing.max_pages must not be negative")
	}
	if c.Forum.MaxThreads < 0 {
		return fmt.Errorf("forum.max_threads must not be negative")
	}
	if c.Forum.JSONPath == "" || c.Forum.CSVPath == "" {
		return fmt.Errorf("forum.json_path and forum.csv_path are required")
	}
	if c.HTTP.Timeout < 0 || c.Articles.Delay < 0 || c.Forum.Delay < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}

// ArticleConfig returns the article scraper settings.
func (c *FileConfig) ArticleConfig() article.Config {
	return article.Config{
		BaseURL:   c.Articles.BaseURL,
		First:     c.Articles.First,
		Last:      c.Articles.Last,
		OutDir:    c.Articles.OutDir,
		Selectors: c.Articles.Selectors,
	}
}

// ForumConfig returns the forum scraper settings.
func (c *FileConfig) ForumConfig() forum.Config {
	return forum.Config{
		StartURL:   c.Forum.StartURL,
		MaxThreads: c.Forum.MaxThreads,
		List:       c.Forum.Listing,
		Thread:     c.Forum.Thread,
	}
}

// FetchOptions returns HTTP client options with the given request spacing.
func (c *FileConfig) FetchOptions(delay time.Duration) fetch.Options {
	return fetch.Options{
		UserAgent: c.HTTP.UserAgent,
		Timeout:   c.HTTP.Timeout,
		Delay:     delay,
		Charset:   c.HTTP.Charset,
	}
}
