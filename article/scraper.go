package article

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/foxscrape/scraper"
)

// ErrWriteFailed marks failures to write an article to disk. These stop a
// run, unlike fetch and extraction failures which only skip the article.
var ErrWriteFailed = errors.New("failed to write article")

// Client fetches pages and downloads images.
type Client interface {
	Downloader
	FetchHTML(ctx context.Context, url string) (*goquery.Document, error)
}

// Config holds the settings for a run over a range of article numbers.
type Config struct {
	BaseURL   string
	First     int
	Last      int // inclusive
	OutDir    string
	Selectors scraper.ArticleConfig
}

// DefaultConfig returns the settings for the ml-consult FoxPro articles.
func DefaultConfig() Config {
	return Config{
		BaseURL:   "http://www.ml-consult.co.uk/foxst-",
		First:     1,
		Last:      47,
		OutDir:    "scraped_mlarticles",
		Selectors: scraper.DefaultArticleConfig(),
	}
}

// Result describes the outcome for one article number.
type Result struct {
	Number int
	URL    string
	Title  string
	Path   string // empty when skipped
	Images int
	Err    error
}

// Summary collects the results of a run.
type Summary struct {
	Saved   int
	Skipped int
	Results []Result
}

// Scraper runs the article pipeline.
type Scraper struct {
	client Client
	config Config
}

// NewScraper creates a scraper. Empty selectors fall back to the defaults.
func NewScraper(client Client, config Config) *Scraper {
	config.Selectors = config.Selectors.WithDefaults()
	return &Scraper{
		client: client,
		config: config,
	}
}

// Run scrapes every article in the configured range. Articles that cannot be
// fetched or have no content are logged and skipped; a failure to write a
// Markdown file ends the run.
func (s *Scraper) Run(ctx context.Context) (*Summary, error) {
	if s.config.First > s.config.Last {
		return nil, fmt.Errorf("invalid article range %d..%d", s.config.First, s.config.Last)
	}

	if err := os.MkdirAll(s.config.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	summary := &Summary{}
	for n := s.config.First; n <= s.config.Last; n++ {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		result := s.ScrapeArticle(ctx, n)
		summary.Results = append(summary.Results, result)

		if result.Err != nil {
			if errors.Is(result.Err, ErrWriteFailed) {
				return summary, result.Err
			}
			summary.Skipped++
			continue
		}

		summary.Saved++
	}

	return summary, nil
}

// ScrapeArticle fetches article n, downloads its images and writes its
// Markdown file. The returned Result carries any error.
func (s *Scraper) ScrapeArticle(ctx context.Context, n int) Result {
	url := BuildURL(s.config.BaseURL, n)
	result := Result{Number: n, URL: url}

	doc, err := s.client.FetchHTML(ctx, url)
	if err != nil {
		log.Printf("WARN: Failed to retrieve %s: %v", url, err)
		result.Err = err
		return result
	}

	article, err := Extract(doc, s.config.Selectors, url, n)
	if err != nil {
		log.Printf("WARN: No article content found for article %d (%s)", n, url)
		result.Err = err
		return result
	}
	result.Title = article.Title

	s.downloadImages(ctx, article)
	result.Images = len(article.Images)

	path := filepath.Join(s.config.OutDir, article.Filename())
	if err := os.WriteFile(path, []byte(article.Markdown()), 0o644); err != nil {
		result.Err = fmt.Errorf("%w %s: %w", ErrWriteFailed, path, err)
		log.Printf("ERROR: %v", result.Err)
		return result
	}

	log.Printf("INFO: Saved: %s", path)
	result.Path = path
	return result
}

// downloadImages saves each image of the article. The sequence number only
// advances on success so saved images are numbered without gaps.
func (s *Scraper) downloadImages(ctx context.Context, article *Article) {
	seq := 1
	for _, imgURL := range article.ImageURLs {
		rel, err := DownloadImage(ctx, s.client, imgURL, article.Title, seq, s.config.OutDir)
		if err != nil {
			log.Printf("WARN: %v", err)
			continue
		}
		article.Images = append(article.Images, ImageRef{SourceURL: imgURL, Path: rel})
		seq++
	}
}
