package feedback

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/spigell/ai-tool-advisor/internal/survey"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// timeLayout has a fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLiteStore keeps records in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, fmt.Errorf("feedback: database path is required")
	}

	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("feedback: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("feedback: pragma %q: %w", p, err)
		}
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("feedback: migration: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS feedback (
			id         TEXT    PRIMARY KEY,
			session_id TEXT,
			tool       TEXT    NOT NULL,
			rating     INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
			comment    TEXT,
			survey     TEXT,
			archetype  TEXT,
			created_at TEXT    NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_feedback_created ON feedback(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_feedback_tool    ON feedback(tool);
	`)
	return err
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(ctx context.Context, r Record) error {
	if err := r.Validate(); err != nil {
		return err
	}
	r = r.Normalize()

	var surveyJSON []byte
	if len(r.Survey) > 0 {
		var err error
		surveyJSON, err = json.Marshal(r.Survey)
		if err != nil {
			return fmt.Errorf("feedback: marshal survey: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO feedback (id, session_id, tool, rating, comment, survey, archetype, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.SessionID, r.Tool, r.Rating, r.Comment, string(surveyJSON), r.Archetype, r.CreatedAt.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("feedback: insert: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = -1
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, tool, rating, comment, survey, archetype, created_at
		FROM feedback
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("feedback: list: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := []Record{}
	for rows.Next() {
		var (
			r                                    Record
			sessionID, comment, surveyJSON, kind sql.NullString
			createdAt                            string
		)
		if err := rows.Scan(&r.ID, &sessionID, &r.Tool, &r.Rating, &comment, &surveyJSON, &kind, &createdAt); err != nil {
			return nil, fmt.Errorf("feedback: scan: %w", err)
		}
		r.SessionID = sessionID.String
		r.Comment = comment.String
		r.Archetype = kind.String

		if surveyJSON.String != "" {
			var responses survey.Responses
			if err := json.Unmarshal([]byte(surveyJSON.String), &responses); err != nil {
				return nil, fmt.Errorf("feedback: decode survey of %s: %w", r.ID, err)
			}
			r.Survey = responses
		}

		r.CreatedAt, err = time.Parse(timeLayout, createdAt)
		if err != nil {
			return nil, fmt.Errorf("feedback: parse created_at of %s: %w", r.ID, err)
		}

		records = append(records, r)
	}

	return records, rows.Err()
}
