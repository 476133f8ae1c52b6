// Package store persists completed reports in SQLite so the HTTP API
// can list and re-serve them.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/claimlens/claimlens/internal/model"
)

// ErrNotFound is returned when no report exists for the requested id.
var ErrNotFound = errors.New("report not found")

const schema = `
CREATE TABLE IF NOT EXISTS reports (
	id            TEXT PRIMARY KEY,
	original_text TEXT NOT NULL,
	verdict       TEXT NOT NULL,
	score         INTEGER NOT NULL,
	created_at    TIMESTAMP NOT NULL,
	body          TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at DESC);
`

// ReportSummary is the listing row: everything but the full body.
type ReportSummary struct {
	ID           string        `json:"id"`
	OriginalText string        `json:"original_text"`
	Verdict      model.Verdict `json:"verdict"`
	Score        int           `json:"score"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Store is a SQLite-backed report archive.
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary creates) the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// modernc sqlite serializes writes itself; a single connection
	// avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Save persists one report. Saving the same id twice replaces the row.
func (s *Store) Save(ctx context.Context, report *model.FactCheckReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO reports (id, original_text, verdict, score, created_at, body)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		report.ID, report.OriginalText, string(report.FinalVerdict), report.FinalScore,
		time.Now().UTC(), string(body))
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Get returns the full report for id.
func (s *Store) Get(ctx context.Context, id string) (*model.FactCheckReport, error) {
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var report model.FactCheckReport
	if err := json.Unmarshal([]byte(body), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report %s: %w", id, err)
	}
	return &report, nil
}

// List returns the newest reports first, at most limit rows.
func (s *Store) List(ctx context.Context, limit int) ([]ReportSummary, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, original_text, verdict, score, created_at
		 FROM reports ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := make([]ReportSummary, 0, limit)
	for rows.Next() {
		var s ReportSummary
		var verdict string
		if err := rows.Scan(&s.ID, &s.OriginalText, &verdict, &s.Score, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		s.Verdict = model.Verdict(verdict)
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// Delete removes the report for id.
func (s *Store) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
