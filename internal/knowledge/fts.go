package knowledge

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// FTSIndex is a full-text index over documents backed by SQLite FTS5.
type FTSIndex struct {
	db *sql.DB
}

// OpenFTS opens or creates the index at path. An empty path keeps the index in memory.
func OpenFTS(path string) (*FTSIndex, error) {
	dsn := strings.TrimSpace(path)
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("knowledge: open database: %w", err)
	}
	// every pooled connection to :memory: would be a separate database
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("knowledge: pragma %q: %w", p, err)
		}
	}

	idx := &FTSIndex{db: db}
	if err := idx.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("knowledge: migration: %w", err)
	}

	return idx, nil
}

func (i *FTSIndex) migrate() error {
	_, err := i.db.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS documents USING fts5(
			doc_id UNINDEXED,
			title,
			body,
			tokenize = 'unicode61'
		);
	`)
	return err
}

// Close closes the underlying database connection.
func (i *FTSIndex) Close() error {
	return i.db.Close()
}

// Add indexes docs, replacing documents with the same id.
func (i *FTSIndex) Add(ctx context.Context, docs ...Document) error {
	tx, err := i.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("knowledge: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, doc := range docs {
		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE doc_id = ?`, doc.ID); err != nil {
			return fmt.Errorf("knowledge: replace %s: %w", doc.ID, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (doc_id, title, body) VALUES (?, ?, ?)`,
			doc.ID, doc.Title, doc.Body,
		); err != nil {
			return fmt.Errorf("knowledge: insert %s: %w", doc.ID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of indexed documents.
func (i *FTSIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := i.db.QueryRowContext(ctx, `SELECT count(*) FROM documents`).Scan(&n); err != nil {
		return 0, fmt.Errorf("knowledge: count: %w", err)
	}
	return n, nil
}

// Search returns up to k documents matching any query term, best first.
func (i *FTSIndex) Search(ctx context.Context, query string, k int) ([]Result, error) {
	if k <= 0 {
		k = defaultTopK
	}

	match := sanitizeFTS(query)
	if match == "" {
		return nil, nil
	}

	rows, err := i.db.QueryContext(ctx, `
		SELECT doc_id, title, body, bm25(documents)
		FROM documents
		WHERE documents MATCH ?
		ORDER BY bm25(documents)
		LIMIT ?
	`, match, k)
	if err != nil {
		return nil, fmt.Errorf("knowledge: search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []Result
	for rows.Next() {
		var r Result
		var rank float64
		if err := rows.Scan(&r.ID, &r.Title, &r.Body, &rank); err != nil {
			return nil, fmt.Errorf("knowledge: scan: %w", err)
		}
		// bm25 is lower for better matches
		r.Score = -rank
		results = append(results, r)
	}

	return results, rows.Err()
}

// sanitizeFTS quotes every word as a prefix term and ORs them together.
// "코드 생성" → `"코드"* OR "생성"*`
func sanitizeFTS(query string) string {
	words := strings.FieldsFunc(query, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == ',' || r == '/' || r == '"' || r == '(' || r == ')'
	})
	terms := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		terms = append(terms, `"`+w+`"*`)
	}
	return strings.Join(terms, " OR ")
}
