package export

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pevans/foxscrape/forum"
)

const sqliteSchema = `
CREATE TABLE threads (
	thread_id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	author TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	link TEXT NOT NULL
);

CREATE TABLE posts (
	thread_id TEXT NOT NULL REFERENCES threads(thread_id),
	position INTEGER NOT NULL,
	post_type TEXT NOT NULL,
	author TEXT NOT NULL,
	timestamp TEXT NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (thread_id, position)
);
`

// WriteSQLite writes records to a fresh SQLite database at path. Any
// existing file is removed first. Each thread gets a random UUID and its
// listing position; posts keep their position within the thread, so
// position 0 is the question.
func WriteSQLite(path string, records []forum.ThreadRecord) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove old database: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if _, err := db.Exec(sqliteSchema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, record := range records {
		threadID := uuid.New().String()

		_, err := tx.Exec(
			"INSERT INTO threads (thread_id, position, title, author, timestamp, link) VALUES (?, ?, ?, ?, ?, ?)",
			threadID, i, record.Title, record.Author, record.Timestamp, record.Link,
		)
		if err != nil {
			return fmt.Errorf("failed to insert thread %q: %w", record.Title, err)
		}

		for j, post := range record.Replies {
			_, err := tx.Exec(
				"INSERT INTO posts (thread_id, position, post_type, author, timestamp, message) VALUES (?, ?, ?, ?, ?, ?)",
				threadID, j, string(post.PostType), post.Author, post.Timestamp, post.Message,
			)
			if err != nil {
				return fmt.Errorf("failed to insert post %d of %q: %w", j, record.Title, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}
