package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pevans/foxscrape/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_NoFile(t *testing.T) {
	cfg, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, Default(), cfg, "should return defaults when config file doesn't exist")
}

func TestLoadConfigFile_DefaultPath(t *testing.T) {
	tmpDir := t.TempDir()
	t.Setenv("HOME", tmpDir)

	dir := filepath.Join(tmpDir, ".foxscrape")
	require.NoError(t, os.MkdirAll(dir, 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("articles:\n  last: 3\n"), 0o600))

	cfg, err := LoadConfigFile("")
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Articles.Last)
}

func TestLoadConfigFile_ValidConfig(t *testing.T) {
	path := writeConfig(t, `http:
  user_agent: "random"
  timeout: 5s
  charset: "windows-1252"
articles:
  base_url: "http://mirror.example/foxst-"
  first: 2
  last: 9
  out_dir: "out"
  selectors:
    container_selector: "div.content"
    skip_nested_code: true
forum:
  start_url: "https://forum.example/f/"
  max_threads: 5
  delay: 250ms
  sqlite_path: "threads.db"
  listing:
    max_pages: 0
  thread:
    message_selector: "div.body"
`)

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, fetch.RandomUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, "windows-1252", cfg.HTTP.Charset)

	articles := cfg.ArticleConfig()
	assert.Equal(t, "http://mirror.example/foxst-", articles.BaseURL)
	assert.Equal(t, 2, articles.First)
	assert.Equal(t, 9, articles.Last)
	assert.Equal(t, "out", articles.OutDir)
	assert.Equal(t, "div.content", articles.Selectors.ContainerSelector)
	assert.Equal(t, "h1", articles.Selectors.TitleSelector, "unset selectors keep defaults")
	assert.True(t, articles.Selectors.SkipNestedCode)

	forumCfg := cfg.ForumConfig()
	assert.Equal(t, "https://forum.example/f/", forumCfg.StartURL)
	assert.Equal(t, 5, forumCfg.MaxThreads)
	assert.Equal(t, 0, forumCfg.List.MaxPages, "explicit zero means unbounded")
	assert.Equal(t, "div.structItem-cell.structItem-cell--main", forumCfg.List.ItemSelector)
	assert.Equal(t, "div.body", forumCfg.Thread.MessageSelector)
	assert.Equal(t, 250*time.Millisecond, cfg.Forum.Delay)
	assert.Equal(t, "threads.db", cfg.Forum.SQLitePath)
	assert.Equal(t, "threads_data.json", cfg.Forum.JSONPath)

	opts := cfg.FetchOptions(cfg.Forum.Delay)
	assert.Equal(t, 250*time.Millisecond, opts.Delay)
	assert.Equal(t, "windows-1252", opts.Charset)
}

func TestLoadConfigFile_Defaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 1, cfg.Articles.First)
	assert.Equal(t, 47, cfg.Articles.Last)
	assert.Equal(t, "scraped_mlarticles", cfg.Articles.OutDir)
	assert.Equal(t, 3, cfg.Forum.Listing.MaxPages)
	assert.Equal(t, time.Second, cfg.Forum.Delay)
	assert.Zero(t, cfg.HTTP.Timeout, "requests wait until the run is cancelled")
	assert.Empty(t, cfg.Forum.SQLitePath, "sqlite export is off by default")
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFile_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "articles: [unclosed\n")

	cfg, err := LoadConfigFile(path)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoadConfigFile_InvalidValues(t *testing.T) {
	tests := map[string]string{
		"inverted range":     "articles:\n  first: 10\n  last: 2\n",
		"negative max pages": "forum:\n  listing:\n    max_pages: -1\n",
		"empty start url":    "forum:\n  start_url: \"\"\n",
		"negative delay":     "forum:\n  delay: -1s\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfigFile(writeConfig(t, content))
			assert.Error(t, err)
		})
	}
}
