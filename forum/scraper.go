package forum

import (
	"context"
	"log"

	"github.com/pevans/foxscrape/scraper"
)

// Config holds the settings for a forum crawl.
type Config struct {
	StartURL   string
	MaxThreads int // 0 means every listed thread
	List       scraper.ListConfig
	Thread     scraper.ThreadConfig
}

// DefaultConfig returns the settings for the Tek-Tips FoxPro forum.
func DefaultConfig() Config {
	return Config{
		StartURL: "https://www.tek-tips.com/forums/microsoft-foxpro.184/",
		List:     scraper.DefaultListConfig(),
		Thread:   scraper.DefaultThreadConfig(),
	}
}

// Result holds the threads collected by a run.
type Result struct {
	Records []ThreadRecord
	Listed  int // threads found on the listing pages
	Failed  int // threads whose page could not be fetched
}

// Scraper crawls the listing and then every thread on it.
type Scraper struct {
	fetcher Fetcher
	config  Config
}

// NewScraper creates a forum scraper. Pacing between requests is the
// fetcher's concern.
func NewScraper(fetcher Fetcher, config Config) *Scraper {
	config.List = config.List.WithDefaults()
	config.Thread = config.Thread.WithDefaults()
	return &Scraper{
		fetcher: fetcher,
		config:  config,
	}
}

// Run crawls the listing and collects the posts of each thread in listing
// order. Threads whose page fails to load are logged and left out.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	log.Println("INFO: Scraping the listing pages for threads...")
	threads, err := CrawlListing(ctx, s.fetcher, s.config.StartURL, s.config.List)
	if err != nil {
		return nil, err
	}

	result := &Result{Listed: len(threads)}
	if s.config.MaxThreads > 0 && len(threads) > s.config.MaxThreads {
		threads = threads[:s.config.MaxThreads]
	}

	for _, thread := range threads {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		log.Printf("INFO: Scraping replies for %s...", thread.Title)
		posts, err := ScrapeReplies(ctx, s.fetcher, thread.Link, s.config.Thread)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return result, ctxErr
			}
			log.Printf("WARN: Skipping thread %s (%s): %v", thread.Title, thread.Link, err)
			result.Failed++
			continue
		}

		result.Records = append(result.Records, ThreadRecord{
			ThreadSummary: thread,
			Replies:       posts,
		})
	}

	return result, nil
}
