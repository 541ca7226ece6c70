package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/pevans/foxscrape/forum"
)

// CSVHeader is the first row of the CSV export.
var CSVHeader = []string{"Post Type", "Title", "Author", "Timestamp", "Thread Link", "Reply Author", "Reply Message"}

// CSVRows returns the data rows for one thread: a Question row carrying the
// first post, then a Reply row for each later post. A thread with no posts
// gets a Question row with the thread author and NoContent.
func CSVRows(record forum.ThreadRecord) [][]string {
	first, ok := record.First()
	if !ok {
		first = forum.Post{Author: record.Author, Message: forum.NoContent}
	}

	rows := [][]string{
		threadRow(forum.Question, record, first),
	}
	for _, reply := range record.FollowUps() {
		rows = append(rows, threadRow(forum.Reply, record, reply))
	}
	return rows
}

func threadRow(postType forum.PostType, record forum.ThreadRecord, post forum.Post) []string {
	return []string{
		string(postType),
		record.Title,
		record.Author,
		record.Timestamp,
		record.Link,
		post.Author,
		post.Message,
	}
}

// WriteCSV writes records to path with CRLF line endings.
func WriteCSV(path string, records []forum.ThreadRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	w.UseCRLF = true

	if err := w.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, record := range records {
		if err := w.WriteAll(CSVRows(record)); err != nil {
			return fmt.Errorf("failed to write CSV rows: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	return file.Close()
}
