package forum

import (
	"context"
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/pevans/foxscrape/scraper"
)

// ExtractPosts returns the posts of a thread page in document order. The
// first post is tagged Question and the rest Reply. A page with no posts
// yields an empty slice.
func ExtractPosts(doc *goquery.Document, config scraper.ThreadConfig) []Post {
	config = config.WithDefaults()

	posts := []Post{}
	doc.Find(config.PostSelector).Each(func(i int, s *goquery.Selection) {
		postType := Reply
		if i == 0 {
			postType = Question
		}

		posts = append(posts, Post{
			PostType:  postType,
			Author:    scraper.TextOr(s, config.AuthorSelector, UnknownAuthor),
			Timestamp: postTimestamp(s.Find(config.TimeSelector).First()),
			Message:   scraper.TextOr(s, config.MessageSelector, NoMessage),
		})
	})

	return posts
}

// postTimestamp combines the machine date and the human readable time of a
// time element as "{date} at {time}".
func postTimestamp(t *goquery.Selection) string {
	date, hasDate := t.Attr("data-date-string")
	clock, hasClock := t.Attr("title")
	if !hasDate || !hasClock {
		return NoTimestamp
	}
	return date + " at " + clock
}

// ScrapeReplies fetches a thread page and extracts its posts.
func ScrapeReplies(ctx context.Context, fetcher Fetcher, threadURL string, config scraper.ThreadConfig) ([]Post, error) {
	doc, err := fetcher.FetchHTML(ctx, threadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch thread: %w", err)
	}
	return ExtractPosts(doc, config), nil
}
