// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reports

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// SQLStore keeps the catalog in an in-memory SQLite database. Nothing is
// written to disk; the catalog lives as long as the store.
type SQLStore struct {
	db        *sql.DB
	loadDelay time.Duration
}

// NewSQLStore opens a private in-memory database, creates the schema, and
// inserts seed in order.
func NewSQLStore(ctx context.Context, seed []types.Report, loadDelay time.Duration) (*SQLStore, error) {
	if err := CheckUnique(seed); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	s := &SQLStore{db: db, loadDelay: loadDelay}
	if err := s.createSchema(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	if err := s.seed(ctx, seed); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the database; the catalog is discarded.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) createSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			topic TEXT NOT NULL,
			created_date TEXT NOT NULL,
			paper_count INTEGER NOT NULL CHECK (paper_count >= 0),
			status TEXT NOT NULL,
			summary TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_reports_status ON reports(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

func (s *SQLStore) seed(ctx context.Context, reports []types.Report) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO reports (id, title, topic, created_date, paper_count, status, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range reports {
		if _, err := stmt.ExecContext(ctx,
			r.ID, r.Title, r.Topic, r.CreatedDate.String(),
			r.PaperCount, string(r.Status), r.Summary,
		); err != nil {
			return fmt.Errorf("inserting report %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

// List returns the catalog in insertion order.
func (s *SQLStore) List(ctx context.Context) ([]types.Report, error) {
	if err := sleep(ctx, s.loadDelay); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, topic, created_date, paper_count, status, summary
		 FROM reports ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying reports: %w", err)
	}
	defer rows.Close()

	reports := []types.Report{}
	for rows.Next() {
		var (
			r       types.Report
			created string
			status  string
		)
		if err := rows.Scan(&r.ID, &r.Title, &r.Topic, &created, &r.PaperCount, &status, &r.Summary); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := r.CreatedDate.UnmarshalText([]byte(created)); err != nil {
			return nil, fmt.Errorf("report %s: %w", r.ID, err)
		}
		r.Status = types.ReportStatus(status)
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Add inserts r at the end of the catalog.
func (s *SQLStore) Add(ctx context.Context, r types.Report) error {
	if err := checkReport(r); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx,
		`SELECT count(*) FROM reports WHERE id = ?`, r.ID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("checking report %s: %w", r.ID, err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrDuplicateID, r.ID)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO reports (id, title, topic, created_date, paper_count, status, summary)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Topic, r.CreatedDate.String(),
		r.PaperCount, string(r.Status), r.Summary,
	); err != nil {
		return fmt.Errorf("inserting report %s: %w", r.ID, err)
	}
	return tx.Commit()
}

// Delete removes the report with the given id.
func (s *SQLStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting report %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}
