package forum

import (
	"context"
	"log"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/foxscrape/scraper"
)

// ExtractThreadSummaries returns one summary per listing item in document
// order. Items without a title link are skipped.
func ExtractThreadSummaries(doc *goquery.Document, config scraper.ListConfig, pageURL string) []ThreadSummary {
	config = config.WithDefaults()

	var threads []ThreadSummary
	doc.Find(config.ItemSelector).Each(func(_ int, item *goquery.Selection) {
		titleLink := item.Find(config.TitleLinkSelector).First()
		if titleLink.Length() == 0 {
			return
		}
		href, ok := titleLink.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return
		}
		link, err := scraper.ResolveURL(pageURL, href)
		if err != nil {
			return
		}

		thread := ThreadSummary{
			Title:     scraper.StrippedText(titleLink),
			Author:    UnknownAuthor,
			Timestamp: NoTimestamp,
			Link:      link,
		}

		minor := item.Find(config.MinorSelector).First()
		if minor.Length() > 0 {
			thread.Author = scraper.TextOr(minor, config.AuthorSelector, UnknownAuthor)
			if ts, ok := minor.Find(config.TimeSelector).First().Attr("title"); ok {
				thread.Timestamp = ts
			}
		}

		threads = append(threads, thread)
	})

	return threads
}

// NextPageURL returns the absolute URL of the next listing page, if the page
// links to one.
func NextPageURL(doc *goquery.Document, config scraper.ListConfig, pageURL string) (string, bool) {
	config = config.WithDefaults()

	href, ok := doc.Find(config.PaginationSelector).First().Attr("href")
	if !ok || strings.TrimSpace(href) == "" {
		return "", false
	}

	next, err := scraper.ResolveURL(pageURL, href)
	if err != nil {
		return "", false
	}
	return next, true
}

// CrawlListing follows the listing from startURL through its next-page links,
// visiting at most config.MaxPages pages (no limit when zero or negative). A
// page that cannot be fetched ends the crawl and the threads collected so
// far are returned. Only context cancellation is reported as an error.
func CrawlListing(ctx context.Context, fetcher Fetcher, startURL string, config scraper.ListConfig) ([]ThreadSummary, error) {
	config = config.WithDefaults()

	var threads []ThreadSummary
	current := startURL
	pageCount := 0

	for current != "" && (config.MaxPages <= 0 || pageCount < config.MaxPages) {
		doc, err := fetcher.FetchHTML(ctx, current)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return threads, ctxErr
			}
			log.Printf("ERROR: Failed to fetch listing page %s: %v", current, err)
			break
		}

		threads = append(threads, ExtractThreadSummaries(doc, config, current)...)
		pageCount++

		next, ok := NextPageURL(doc, config, current)
		if !ok {
			break
		}
		log.Printf("INFO: Moving to next page: %s", next)
		current = next
	}

	return threads, nil
}
