// Package archive persists captured records and threads to SQLite. It is
// a downstream consumer of the extraction engine: the engine's working set
// stays in memory, the archive only receives finished values the user
// asked to keep.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/unspool/unspool/internal/types"
)

// Store handles all archive database operations.
type Store struct {
	db *sql.DB
}

// Open creates or opens an archive at dbPath.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS captures (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		tags TEXT,
		category TEXT,
		captured_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS threads (
		group_id TEXT PRIMARY KEY,
		capture_id TEXT NOT NULL REFERENCES captures(id),
		author_handle TEXT NOT NULL,
		author_name TEXT,
		started_at DATETIME,
		declared_count INTEGER,
		is_complete BOOLEAN
	);

	CREATE TABLE IF NOT EXISTS posts (
		id TEXT PRIMARY KEY,
		capture_id TEXT NOT NULL REFERENCES captures(id),
		group_id TEXT,
		thread_position INTEGER,
		author_handle TEXT NOT NULL,
		author_name TEXT,
		content TEXT NOT NULL,
		posted_at DATETIME,
		likes INTEGER,
		reposts INTEGER,
		replies INTEGER,
		media TEXT,
		source_url TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_posts_group ON posts(group_id);
	CREATE INDEX IF NOT EXISTS idx_posts_author ON posts(author_handle);
	CREATE INDEX IF NOT EXISTS idx_threads_author ON threads(author_handle);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveThread stores a whole thread plus its records under one capture.
// Tags and category come from the caller; re-capturing a thread updates
// it in place.
func (s *Store) SaveThread(td *types.ThreadData, tags []string, category string) (string, error) {
	captureID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO captures (id, kind, tags, category, captured_at)
		VALUES (?, 'thread', ?, ?, ?)
	`, captureID, strings.Join(tags, ","), category, time.Now())
	if err != nil {
		return "", err
	}

	_, err = tx.Exec(`
		INSERT INTO threads (group_id, capture_id, author_handle, author_name, started_at, declared_count, is_complete)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(group_id) DO UPDATE SET
			capture_id = excluded.capture_id,
			declared_count = excluded.declared_count,
			is_complete = excluded.is_complete
	`, td.GroupID, captureID, td.Author.Handle, td.Author.DisplayName,
		td.StartedAt, td.DeclaredCount, td.IsComplete)
	if err != nil {
		return "", err
	}

	for _, rec := range td.Records {
		if err := saveRecordTx(tx, rec, captureID, td.GroupID); err != nil {
			return "", fmt.Errorf("failed to save post %s: %w", rec.ID, err)
		}
	}

	return captureID, tx.Commit()
}

// SaveRecords stores standalone records (a feed capture) under one capture.
func (s *Store) SaveRecords(records []types.Record, tags []string, category string) (string, error) {
	captureID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO captures (id, kind, tags, category, captured_at)
		VALUES (?, 'feed', ?, ?, ?)
	`, captureID, strings.Join(tags, ","), category, time.Now())
	if err != nil {
		return "", err
	}

	for _, rec := range records {
		if err := saveRecordTx(tx, rec, captureID, rec.ThreadGroupID); err != nil {
			return "", fmt.Errorf("failed to save post %s: %w", rec.ID, err)
		}
	}

	return captureID, tx.Commit()
}

func saveRecordTx(tx *sql.Tx, rec types.Record, captureID, groupID string) error {
	mediaJSON, _ := json.Marshal(rec.Media)

	_, err := tx.Exec(`
		INSERT INTO posts (id, capture_id, group_id, thread_position,
			author_handle, author_name, content, posted_at,
			likes, reposts, replies, media, source_url)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			capture_id = excluded.capture_id,
			group_id = excluded.group_id,
			thread_position = excluded.thread_position,
			likes = excluded.likes,
			reposts = excluded.reposts,
			replies = excluded.replies
	`, rec.ID, captureID, groupID, rec.ThreadPosition,
		rec.Author.Handle, rec.Author.DisplayName, rec.Content, rec.Timestamp,
		rec.Metrics.Likes, rec.Metrics.Reposts, rec.Metrics.Replies,
		string(mediaJSON), rec.SourceURL)
	return err
}

// ThreadSummary is one archived thread row.
type ThreadSummary struct {
	GroupID       string
	AuthorHandle  string
	AuthorName    string
	StartedAt     time.Time
	DeclaredCount int
	IsComplete    bool
}

// ListThreads returns archived threads, newest first.
func (s *Store) ListThreads(limit int) ([]ThreadSummary, error) {
	rows, err := s.db.Query(`
		SELECT group_id, author_handle, author_name, started_at, declared_count, is_complete
		FROM threads
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ThreadSummary
	for rows.Next() {
		var t ThreadSummary
		if err := rows.Scan(&t.GroupID, &t.AuthorHandle, &t.AuthorName,
			&t.StartedAt, &t.DeclaredCount, &t.IsComplete); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// ThreadRecords returns the archived posts of one thread in stored order.
func (s *Store) ThreadRecords(groupID string) ([]types.Record, error) {
	rows, err := s.db.Query(`
		SELECT id, author_handle, author_name, content, posted_at,
			likes, reposts, replies, media, source_url, thread_position
		FROM posts
		WHERE group_id = ?
		ORDER BY CASE WHEN thread_position > 0 THEN thread_position ELSE 999999 END, posted_at
	`, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []types.Record
	for rows.Next() {
		var rec types.Record
		var mediaJSON string
		if err := rows.Scan(&rec.ID, &rec.Author.Handle, &rec.Author.DisplayName,
			&rec.Content, &rec.Timestamp,
			&rec.Metrics.Likes, &rec.Metrics.Reposts, &rec.Metrics.Replies,
			&mediaJSON, &rec.SourceURL, &rec.ThreadPosition); err != nil {
			return nil, err
		}
		json.Unmarshal([]byte(mediaJSON), &rec.Media)
		rec.ThreadGroupID = groupID
		out = append(out, rec)
	}
	return out, rows.Err()
}
