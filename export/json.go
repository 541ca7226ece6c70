// Package export writes collected forum threads to JSON, CSV and SQLite.
// Every writer replaces its target file.
package export

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pevans/foxscrape/forum"
)

// Default output file names.
const (
	DefaultJSONPath   = "threads_data.json"
	DefaultCSVPath    = "threads_data.csv"
	DefaultSQLitePath = "threads_data.db"
)

// Question is the opening post of a thread as exported: the listing fields
// plus the body of the first post.
type Question struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Timestamp string `json:"timestamp"`
	Link      string `json:"link"`
	Message   string `json:"message"`
}

// Thread is the exported form of a forum.ThreadRecord.
type Thread struct {
	Question Question     `json:"question"`
	Replies  []forum.Post `json:"replies"`
}

// FormatThread builds the exported form of a record. The first post becomes
// the question body and every later post is a reply.
func FormatThread(record forum.ThreadRecord) Thread {
	message := forum.NoContent
	if first, ok := record.First(); ok {
		message = first.Message
	}

	return Thread{
		Question: Question{
			Title:     record.Title,
			Author:    record.Author,
			Timestamp: record.Timestamp,
			Link:      record.Link,
			Message:   message,
		},
		Replies: append([]forum.Post{}, record.FollowUps()...),
	}
}

// WriteJSON writes records to path as an indented JSON array.
func WriteJSON(path string, records []forum.ThreadRecord) error {
	threads := make([]Thread, 0, len(records))
	for _, record := range records {
		threads = append(threads, FormatThread(record))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "    ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(threads); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}

	return file.Close()
}
