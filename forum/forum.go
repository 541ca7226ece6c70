// Package forum crawls a paginated forum thread listing and collects the
// posts of every thread it finds.
package forum

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// PostType tells the opening post of a thread apart from the replies.
type PostType string

const (
	Question PostType = "Question"
	Reply    PostType = "Reply"
)

// Fallback values used when the page lacks a field.
const (
	UnknownAuthor = "Unknown"
	NoTimestamp   = "No timestamp"
	NoMessage     = "No message"
	NoContent     = "No content"
)

// ThreadSummary is one entry of the thread listing.
type ThreadSummary struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"` // as rendered by the site
	Link      string `json:"link"`
}

// Post is a single message in a thread.
type Post struct {
	PostType  PostType `json:"post_type"`
	Author    string   `json:"author"`
	Timestamp string   `json:"timestamp"`
	Message   string   `json:"message"`
}

// ThreadRecord is a listed thread together with all of its posts. The first
// post, when there is one, is the question.
type ThreadRecord struct {
	ThreadSummary
	Replies []Post `json:"replies"`
}

// First returns the opening post of the thread.
func (r ThreadRecord) First() (Post, bool) {
	if len(r.Replies) == 0 {
		return Post{}, false
	}
	return r.Replies[0], true
}

// FollowUps returns every post after the opening one.
func (r ThreadRecord) FollowUps() []Post {
	if len(r.Replies) <= 1 {
		return nil
	}
	return r.Replies[1:]
}

// Fetcher fetches and parses an HTML page.
type Fetcher interface {
	FetchHTML(ctx context.Context, url string) (*goquery.Document, error)
}
